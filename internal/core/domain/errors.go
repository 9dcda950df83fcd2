package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrSearchUnavailable    = errors.New("legislation search unavailable")
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	ErrCatalogInvalid       = errors.New("legal domain catalog invalid")
	ErrTemporary            = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
