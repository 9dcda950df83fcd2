package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
)

type searcherFake struct {
	docs    []domain.SearchDocument
	err     error
	panicOn bool
	calls   []string
	opts    []ports.SearchOptions
}

func (f *searcherFake) Search(_ context.Context, term string, opts ports.SearchOptions) ([]domain.SearchDocument, int, error) {
	if f.panicOn {
		panic("searcher exploded")
	}
	f.calls = append(f.calls, term)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.docs, len(f.docs), nil
}

type historyFake struct {
	domainHistory *domain.DomainHistory
	docHistory    map[string]domain.DocumentHistory
	err           error
}

func (f *historyFake) DomainHistory(_ context.Context, _ string) (*domain.DomainHistory, error) {
	return f.domainHistory, f.err
}

func (f *historyFake) DocumentHistory(_ context.Context, id string) (*domain.DocumentHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	h, ok := f.docHistory[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

type publisherFake struct {
	events []ports.SearchEvent
	err    error
}

func (f *publisherFake) PublishSearchCompleted(_ context.Context, event ports.SearchEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func newTestSearchUseCase(t *testing.T, searcher ports.LegislationSearcher, history ports.HistoryProvider, publisher ports.EventPublisher) *SearchUseCase {
	t.Helper()
	catalog := testCatalog(t)
	return NewSearchUseCase(
		catalog,
		NewClassifier(catalog, nil, nil),
		NewExpander(),
		NewConfidenceScorer(catalog),
		NewFilter(catalog, DefaultFilterConfig()),
		NewRanker(catalog),
		searcher,
		history,
		publisher,
		nil,
	)
}

func laborCandidates(n int) []domain.SearchDocument {
	docs := make([]domain.SearchDocument, n)
	for i := range docs {
		docs[i] = domain.SearchDocument{
			ID:          fmt.Sprintf("doc-%d", i),
			Title:       fmt.Sprintf("Kıdem Tazminatı Tebliği No %d", i),
			Type:        domain.DocTypeCircular,
			LegalDomain: "İş Hukuku",
			Content:     "Madde 1: Kıdem tazminatı hesaplaması.",
		}
	}
	return docs
}

func TestEnhancedSearchHappyPath(t *testing.T) {
	searcher := &searcherFake{docs: laborCandidates(6)}
	publisher := &publisherFake{}
	uc := newTestSearchUseCase(t, searcher, nil, publisher)

	resp := uc.EnhancedSearch(context.Background(), ports.SearchRequest{
		Query:      "kıdem tazminatı nasıl hesaplanır",
		MaxResults: 5,
	})

	if resp.Stats.Error != "" {
		t.Fatalf("unexpected pipeline error: %s", resp.Stats.Error)
	}
	if len(resp.Results) == 0 || len(resp.Results) > 5 {
		t.Fatalf("expected 1..5 results, got %d", len(resp.Results))
	}
	if !resp.Stats.IntentClassified || !resp.Stats.QueryExpansionApplied ||
		!resp.Stats.ConfidenceScoreCalculated || !resp.Stats.ResultRankingApplied {
		t.Fatalf("expected all pipeline stage flags set: %+v", resp.Stats)
	}
	if resp.Stats.Details == nil {
		t.Fatalf("expected pipeline details block")
	}
	if resp.Stats.Details.IntentResult.LegalDomain != "İş Hukuku" {
		t.Fatalf("expected İş Hukuku, got %s", resp.Stats.Details.IntentResult.LegalDomain)
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].RelevanceScore > resp.Results[i-1].RelevanceScore {
			t.Fatalf("results must be sorted by relevance, broken at index %d", i)
		}
	}
	if resp.Stats.TopScore != resp.Results[0].RelevanceScore {
		t.Fatalf("top score mismatch: %.2f vs %.2f", resp.Stats.TopScore, resp.Results[0].RelevanceScore)
	}

	if len(searcher.calls) != 2 {
		t.Fatalf("expected primary plus one expansion search, got %d", len(searcher.calls))
	}
	if searcher.calls[0] != "kıdem tazminatı nasıl hesaplanır" {
		t.Fatalf("first search must use the raw query, got %q", searcher.calls[0])
	}
	if searcher.opts[0].PageSize != 10 {
		t.Fatalf("expected page size maxResults*2=10, got %d", searcher.opts[0].PageSize)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Failed || event.ResultCount != len(resp.Results) || event.LegalDomain != "İş Hukuku" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.EventID == "" || event.QueryHash == "" {
		t.Fatalf("event must carry identifiers: %+v", event)
	}
}

func TestEnhancedSearchDeduplicatesAcrossCalls(t *testing.T) {
	searcher := &searcherFake{docs: laborCandidates(3)}
	uc := newTestSearchUseCase(t, searcher, nil, nil)

	resp := uc.EnhancedSearch(context.Background(), ports.SearchRequest{Query: "kıdem tazminatı"})
	if resp.RawCount != 3 {
		t.Fatalf("expected both calls deduplicated to 3 raw documents, got %d", resp.RawCount)
	}
}

func TestEnhancedSearchAllCallsFail(t *testing.T) {
	searcher := &searcherFake{err: errors.New("upstream 503")}
	publisher := &publisherFake{}
	uc := newTestSearchUseCase(t, searcher, nil, publisher)

	resp := uc.EnhancedSearch(context.Background(), ports.SearchRequest{Query: "kıdem tazminatı"})
	if resp.Stats.Error == "" {
		t.Fatalf("expected failure recorded in stats")
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected no results on failure, got %d", len(resp.Results))
	}
	if resp.Stats.IntentClassified {
		t.Fatalf("failure response must not claim pipeline stages")
	}
	if len(publisher.events) != 1 || !publisher.events[0].Failed {
		t.Fatalf("expected a failed event, got %+v", publisher.events)
	}
}

func TestEnhancedSearchRecoversFromPanic(t *testing.T) {
	searcher := &searcherFake{panicOn: true}
	uc := newTestSearchUseCase(t, searcher, nil, nil)

	resp := uc.EnhancedSearch(context.Background(), ports.SearchRequest{Query: "kıdem tazminatı"})
	if resp == nil {
		t.Fatalf("expected a response after panic recovery")
	}
	if resp.Stats.Error == "" {
		t.Fatalf("expected panic captured in stats error")
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected empty results after panic, got %d", len(resp.Results))
	}
}

func TestEnhancedSearchEmptyCandidatesIsNotFailure(t *testing.T) {
	searcher := &searcherFake{docs: nil}
	uc := newTestSearchUseCase(t, searcher, nil, nil)

	resp := uc.EnhancedSearch(context.Background(), ports.SearchRequest{Query: "kıdem tazminatı"})
	if resp.Stats.Error != "" {
		t.Fatalf("zero candidates is a legitimate outcome, got error %s", resp.Stats.Error)
	}
	if resp.Stats.Details == nil {
		t.Fatalf("zero-result response still carries details")
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected no results, got %d", len(resp.Results))
	}
}

func TestEnhancedSearchHistoryFailureIsTolerated(t *testing.T) {
	searcher := &searcherFake{docs: laborCandidates(2)}
	history := &historyFake{err: errors.New("db down")}
	uc := newTestSearchUseCase(t, searcher, history, nil)

	resp := uc.EnhancedSearch(context.Background(), ports.SearchRequest{Query: "kıdem tazminatı"})
	if resp.Stats.Error != "" {
		t.Fatalf("history failure must not fail the pipeline: %s", resp.Stats.Error)
	}
	if len(resp.Results) == 0 {
		t.Fatalf("expected results despite history failure")
	}
}

func TestEnhancedSearchExplicitStrategyOverridesIntent(t *testing.T) {
	searcher := &searcherFake{docs: laborCandidates(1)}
	uc := newTestSearchUseCase(t, searcher, nil, nil)

	uc.EnhancedSearch(context.Background(), ports.SearchRequest{
		Query:      "kıdem tazminatı",
		SearchType: domain.StrategyTitle,
	})
	for _, opts := range searcher.opts {
		if opts.Strategy != domain.StrategyTitle {
			t.Fatalf("expected title strategy on every call, got %s", opts.Strategy)
		}
	}
}

func TestEnhancedSearchPublisherFailureIsSwallowed(t *testing.T) {
	searcher := &searcherFake{docs: laborCandidates(1)}
	publisher := &publisherFake{err: errors.New("broker down")}
	uc := newTestSearchUseCase(t, searcher, nil, publisher)

	resp := uc.EnhancedSearch(context.Background(), ports.SearchRequest{Query: "kıdem tazminatı"})
	if resp.Stats.Error != "" {
		t.Fatalf("publish failure must not surface: %s", resp.Stats.Error)
	}
}

func TestHashQueryNormalizesCase(t *testing.T) {
	if hashQuery("KIDEM Tazminatı") != hashQuery("kıdem tazminatı") {
		t.Fatalf("hash must be case-insensitive with Turkish casing")
	}
	if hashQuery("kıdem") == hashQuery("tazminat") {
		t.Fatalf("different queries must hash differently")
	}
}
