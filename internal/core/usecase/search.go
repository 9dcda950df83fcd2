package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
)

const (
	defaultMaxResults = 10
	maxSearchCalls    = 2
	maxRawPageSize    = 25
)

// SearchUseCase sequences the full pipeline: classification, expansion,
// confidence scoring, external search, filtering and ranking. It never
// surfaces a pipeline failure as an error; callers must check Stats.Error.
type SearchUseCase struct {
	catalog    *domain.Catalog
	classifier *Classifier
	expander   *Expander
	confidence *ConfidenceScorer
	filter     *Filter
	ranker     *Ranker

	searcher  ports.LegislationSearcher
	history   ports.HistoryProvider
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewSearchUseCase wires the pipeline. history and publisher may be nil.
func NewSearchUseCase(
	catalog *domain.Catalog,
	classifier *Classifier,
	expander *Expander,
	confidence *ConfidenceScorer,
	filter *Filter,
	ranker *Ranker,
	searcher ports.LegislationSearcher,
	history ports.HistoryProvider,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *SearchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchUseCase{
		catalog:    catalog,
		classifier: classifier,
		expander:   expander,
		confidence: confidence,
		filter:     filter,
		ranker:     ranker,
		searcher:   searcher,
		history:    history,
		publisher:  publisher,
		logger:     logger,
	}
}

// EnhancedSearch runs the pipeline for one query.
func (uc *SearchUseCase) EnhancedSearch(ctx context.Context, req ports.SearchRequest) (response *domain.SearchResponse) {
	start := time.Now()
	query := strings.TrimSpace(req.Query)
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("pipeline_panic", "panic", fmt.Sprint(r))
			response = failureResponse(fmt.Sprintf("beklenmeyen işlem hatası: %v", r))
		}
		uc.publishEvent(ctx, query, response, time.Since(start))
	}()

	intent := uc.classifier.Classify(ctx, query)
	expansion := uc.expander.Expand(query, ExpansionContext{
		LegalDomain:      intent.LegalDomain,
		DetectedKeywords: intent.Keywords,
		UserIntent:       intent.PrimaryIntent,
	})

	var domainHistory *domain.DomainHistory
	if uc.history != nil {
		h, err := uc.history.DomainHistory(ctx, intent.LegalDomain)
		if err != nil {
			uc.logger.Warn("domain_history_unavailable", "domain", intent.LegalDomain, "error", err)
		} else {
			domainHistory = h
		}
	}

	strategy := req.SearchType
	if strategy == "" {
		strategy = intent.SearchStrategy
	}

	merged, failed := uc.collectCandidates(ctx, query, expansion, strategy, maxResults)
	if failed {
		return failureResponse("mevzuat arama servisi yanıt vermedi")
	}

	filtered := uc.filter.Apply(merged, query, intent.LegalDomain, maxResults*2)

	// Confidence is scored against the filtered set so the result-dependent
	// factors reflect what the caller actually receives.
	confidence := uc.confidence.Score(ConfidenceContext{
		UserQuery:       query,
		DetectedDomain:  intent.LegalDomain,
		SearchResults:   filtered,
		QueryComplexity: intent.ComplexityScore,
		History:         domainHistory,
	})

	ranking := uc.ranker.Rank(filtered, RankingContext{
		UserQuery:       query,
		DetectedDomain:  intent.LegalDomain,
		UserIntent:      intent.PrimaryIntent,
		Urgency:         intent.Urgency,
		QueryComplexity: intent.ComplexityScore,
		DocumentHistory: uc.lookupDocumentHistory(ctx, filtered),
	})

	ranked := ranking.RankedResults
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	results := make([]domain.SearchResult, 0, len(ranked))
	byID := make(map[string]domain.FilteredResult, len(filtered))
	for _, fr := range filtered {
		byID[fr.Document.ID] = fr
	}
	for _, doc := range ranked {
		fr := byID[doc.Document.ID]
		results = append(results, domain.SearchResult{
			MevzuatID:        doc.Document.ID,
			MevzuatAdi:       doc.Document.Title,
			MevzuatTur:       domain.DocumentTypeInfo{Name: string(doc.Document.Type)},
			RelevanceScore:   doc.FinalScore,
			MatchingKeywords: fr.MatchingKeywords,
			FilterReason:     fr.FilterReason,
		})
	}

	stats := domain.SearchStats{
		OriginalCount:             len(merged),
		FilteredCount:             len(filtered),
		FinalCount:                len(results),
		QueryExpansionApplied:     true,
		ConfidenceScoreCalculated: true,
		IntentClassified:          true,
		ResultRankingApplied:      true,
		Details: &domain.PipelineDetails{
			IntentResult:       intent,
			QueryExpansion:     expansion,
			ConfidenceAnalysis: confidence,
			RankingMetrics:     ranking.Metrics,
		},
	}
	if len(results) > 0 {
		var sum float64
		for _, r := range results {
			sum += r.RelevanceScore
		}
		stats.AverageRelevance = sum / float64(len(results))
		stats.TopScore = results[0].RelevanceScore
		stats.BottomScore = results[len(results)-1].RelevanceScore
	}

	uc.logger.Info("enhanced_search_completed",
		"domain", intent.LegalDomain,
		"method", intent.Method,
		"confidence_level", confidence.Level,
		"raw", len(merged),
		"filtered", len(filtered),
		"final", len(results),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	return &domain.SearchResponse{
		Results:  results,
		Stats:    stats,
		RawCount: len(merged),
	}
}

// collectCandidates issues up to two sequential external searches (original
// query plus the top expansion term) and merges by document ID, first
// occurrence winning. Sequential calls are deliberate: the legislation
// service rate-limits aggressively.
func (uc *SearchUseCase) collectCandidates(
	ctx context.Context,
	query string,
	expansion domain.QueryExpansion,
	strategy domain.SearchStrategy,
	maxResults int,
) ([]domain.SearchDocument, bool) {
	terms := []string{query}
	if len(expansion.ExpandedTerms) > 0 && len(terms) < maxSearchCalls {
		terms = append(terms, expansion.ExpandedTerms[0])
	}

	pageSize := maxResults * 2
	if pageSize > maxRawPageSize {
		pageSize = maxRawPageSize
	}

	merged := make([]domain.SearchDocument, 0, pageSize*len(terms))
	seen := make(map[string]struct{}, pageSize*len(terms))
	failures := 0
	for _, term := range terms {
		docs, _, err := uc.searcher.Search(ctx, term, ports.SearchOptions{
			Strategy: strategy,
			PageSize: pageSize,
		})
		if err != nil {
			failures++
			uc.logger.Warn("legislation_search_failed", "term", term, "error", err)
			continue
		}
		for _, doc := range docs {
			if _, dup := seen[doc.ID]; dup {
				continue
			}
			seen[doc.ID] = struct{}{}
			merged = append(merged, doc)
		}
	}
	return merged, failures == len(terms) && len(merged) == 0
}

func (uc *SearchUseCase) lookupDocumentHistory(ctx context.Context, filtered []domain.FilteredResult) map[string]domain.DocumentHistory {
	if uc.history == nil || len(filtered) == 0 {
		return nil
	}
	out := make(map[string]domain.DocumentHistory, len(filtered))
	for _, fr := range filtered {
		h, err := uc.history.DocumentHistory(ctx, fr.Document.ID)
		if err != nil || h == nil {
			continue
		}
		out[fr.Document.ID] = *h
	}
	return out
}

func (uc *SearchUseCase) publishEvent(ctx context.Context, query string, response *domain.SearchResponse, duration time.Duration) {
	if uc.publisher == nil || response == nil {
		return
	}
	event := ports.SearchEvent{
		EventID:     uuid.NewString(),
		QueryHash:   hashQuery(query),
		ResultCount: len(response.Results),
		Failed:      response.Stats.Error != "",
		Duration:    duration,
	}
	if response.Stats.Details != nil {
		event.LegalDomain = response.Stats.Details.IntentResult.LegalDomain
		event.ConfidenceLevel = response.Stats.Details.ConfidenceAnalysis.Level
	}
	if err := uc.publisher.PublishSearchCompleted(ctx, event); err != nil {
		uc.logger.Warn("search_event_publish_failed", "error", err)
	}
}

func hashQuery(query string) string {
	sum := sha256.Sum256([]byte(turkishLower(query)))
	return hex.EncodeToString(sum[:8])
}

// failureResponse is the single user-visible failure shape: empty results,
// all feature flags false and the cause in Stats.Error. Distinguishable from
// a legitimate zero-result response, which carries no error and a populated
// details block.
func failureResponse(message string) *domain.SearchResponse {
	return &domain.SearchResponse{
		Results: []domain.SearchResult{},
		Stats: domain.SearchStats{
			Error: message,
		},
		RawCount: 0,
	}
}
