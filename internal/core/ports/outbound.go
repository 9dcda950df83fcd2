package ports

import (
	"context"
	"time"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

// SearchOptions tune a single call to the external legislation search service.
type SearchOptions struct {
	Strategy domain.SearchStrategy
	Types    []domain.DocumentType
	PageSize int
}

// LegislationSearcher is the outbound contract to the external full-text
// legislation search service. The service is a black box; candidates come
// back unscored.
type LegislationSearcher interface {
	Search(ctx context.Context, term string, opts SearchOptions) ([]domain.SearchDocument, int, error)
}

// LegislationDetailReader reads a document's article tree and per-article
// content. Used only by the deep content matching path.
type LegislationDetailReader interface {
	ArticleTree(ctx context.Context, documentID string) ([]domain.ArticleNode, error)
	ArticleContent(ctx context.Context, documentID, articleID string) (string, error)
}

// Embedder builds vectors for queries and document text. Implementations must
// handle Turkish text natively, without transliteration.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Chunker splits article content into embeddable pieces.
type Chunker interface {
	Split(text string) []string
}

// HistoryProvider supplies read-only historical performance data. A nil
// provider, or a provider returning (nil, nil), means no history is known and
// neutral values apply throughout the pipeline.
type HistoryProvider interface {
	DomainHistory(ctx context.Context, domainName string) (*domain.DomainHistory, error)
	DocumentHistory(ctx context.Context, documentID string) (*domain.DocumentHistory, error)
}

// SearchEvent is the analytics event emitted after each completed search.
type SearchEvent struct {
	EventID         string                 `json:"eventId"`
	QueryHash       string                 `json:"queryHash"`
	LegalDomain     string                 `json:"legalDomain"`
	ConfidenceLevel domain.ConfidenceLevel `json:"confidenceLevel"`
	ResultCount     int                    `json:"resultCount"`
	Failed          bool                   `json:"failed"`
	Duration        time.Duration          `json:"durationMs"`
}

// EventPublisher publishes search analytics events. Publishing is
// fire-and-forget: failures are logged by implementations, never surfaced to
// the pipeline.
type EventPublisher interface {
	PublishSearchCompleted(ctx context.Context, event SearchEvent) error
}
