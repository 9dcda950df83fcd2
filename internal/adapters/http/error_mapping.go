package httpadapter

import (
	"net/http"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	case domain.IsKind(err, domain.ErrEmbeddingUnavailable), domain.IsKind(err, domain.ErrSearchUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
