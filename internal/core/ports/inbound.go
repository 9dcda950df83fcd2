package ports

import (
	"context"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

// SearchRequest is the inbound request handled by the pipeline orchestrator.
type SearchRequest struct {
	Query      string
	SearchType domain.SearchStrategy
	MaxResults int
}

// LegalSearchService is the inbound contract for the full query-understanding
// and ranking pipeline. Pipeline faults are reported in the response's
// Stats.Error field; the returned error is reserved for caller mistakes such
// as a nil context and is nil in normal operation.
type LegalSearchService interface {
	EnhancedSearch(ctx context.Context, req SearchRequest) *domain.SearchResponse
}

// ArticleMatch is one scored article from the deep content matching path.
type ArticleMatch struct {
	DocumentID string
	ArticleID  string
	Title      string
	Score      float64
	Excerpt    string
}

// ContentMatchService is the inbound contract for the optional per-article
// semantic matching path.
type ContentMatchService interface {
	MatchArticles(ctx context.Context, documentID, query string, limit int) ([]ArticleMatch, error)
}
