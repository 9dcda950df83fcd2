package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

func testRanker(t *testing.T) *Ranker {
	t.Helper()
	r := NewRanker(testCatalog(t))
	r.now = fixedNow
	return r
}

func TestRankEmptyInputNamesDomain(t *testing.T) {
	r := testRanker(t)

	result := r.Rank(nil, RankingContext{DetectedDomain: "İş Hukuku"})
	if len(result.RankedResults) != 0 {
		t.Fatalf("expected empty ranked results, got %d", len(result.RankedResults))
	}
	if !strings.Contains(result.Explanation, "İş Hukuku") {
		t.Fatalf("explanation must name the domain: %s", result.Explanation)
	}
}

func TestRankOrdersByCombinedScore(t *testing.T) {
	r := testRanker(t)

	strong := domain.FilteredResult{
		RelevanceScore: 0.8,
		Document: domain.SearchDocument{
			ID:          "strong",
			Title:       "Kıdem Tazminatı Hakkında Kanun",
			Type:        domain.DocTypeLaw,
			LegalDomain: "İş Hukuku",
			Authority:   "Resmî Gazete",
			GazetteDate: fixedNow().AddDate(0, -6, 0),
			Content: "Madde 1: İşçinin kıdem tazminatı hakkı. Madde 2: Hesaplama usulü. " +
				strings.Repeat("Kıdem tazminatı hesaplamasında son brüt ücret esas alınır. ", 12),
		},
	}
	weak := domain.FilteredResult{
		RelevanceScore: 0.3,
		Document: domain.SearchDocument{
			ID:          "weak",
			Title:       "Balıkçılık Rehberi",
			Type:        domain.DocTypeGuidance,
			GazetteDate: fixedNow().AddDate(-20, 0, 0),
			Content:     "Genel bilgiler.",
		},
	}

	result := r.Rank([]domain.FilteredResult{weak, strong}, RankingContext{
		UserQuery:       "kıdem tazminatı",
		DetectedDomain:  "İş Hukuku",
		UserIntent:      domain.IntentRights,
		Urgency:         domain.UrgencyMedium,
		QueryComplexity: 3,
	})

	if len(result.RankedResults) != 2 {
		t.Fatalf("expected 2 ranked documents, got %d", len(result.RankedResults))
	}
	if result.RankedResults[0].Document.ID != "strong" {
		t.Fatalf("expected strong document first, got %s", result.RankedResults[0].Document.ID)
	}
	for i, doc := range result.RankedResults {
		if doc.Rank != i+1 {
			t.Fatalf("rank must be position+1, got %d at index %d", doc.Rank, i)
		}
		if doc.FinalScore < 0 || doc.FinalScore > 1 {
			t.Fatalf("final score out of range: %.2f", doc.FinalScore)
		}
		if i > 0 && doc.FinalScore > result.RankedResults[i-1].FinalScore {
			t.Fatalf("scores must be non-increasing at index %d", i)
		}
	}
	if len(result.RankedResults[0].RelevanceReasons) == 0 {
		t.Fatalf("expected relevance reasons for the strong document")
	}
}

func TestRankStableForEqualDocuments(t *testing.T) {
	r := testRanker(t)

	doc := domain.SearchDocument{
		Title:       "Kıdem Tazminatı Tebliği",
		Type:        domain.DocTypeCircular,
		LegalDomain: "İş Hukuku",
	}
	first, second := doc, doc
	first.ID = "first"
	second.ID = "second"

	result := r.Rank([]domain.FilteredResult{
		{Document: first, RelevanceScore: 0.5},
		{Document: second, RelevanceScore: 0.5},
	}, RankingContext{UserQuery: "kıdem", DetectedDomain: "İş Hukuku"})

	if result.RankedResults[0].Document.ID != "first" {
		t.Fatalf("equal documents must keep input order, got %s first",
			result.RankedResults[0].Document.ID)
	}
}

func TestRankDocumentHistoryBeatsNeutral(t *testing.T) {
	r := testRanker(t)

	doc := domain.SearchDocument{
		Title:       "Kıdem Tazminatı Tebliği",
		Type:        domain.DocTypeCircular,
		LegalDomain: "İş Hukuku",
	}
	liked, unknown := doc, doc
	liked.ID = "liked"
	unknown.ID = "unknown"

	result := r.Rank([]domain.FilteredResult{
		{Document: unknown, RelevanceScore: 0.5},
		{Document: liked, RelevanceScore: 0.5},
	}, RankingContext{
		UserQuery:      "kıdem",
		DetectedDomain: "İş Hukuku",
		DocumentHistory: map[string]domain.DocumentHistory{
			"liked": {FeedbackScore: 0.9, ClickThroughRate: 0.8, SuccessRate: 0.9},
		},
	})

	if result.RankedResults[0].Document.ID != "liked" {
		t.Fatalf("expected positive history to outrank neutral, got %s first",
			result.RankedResults[0].Document.ID)
	}
	unknownFactors := result.RankedResults[1].Factors
	if unknownFactors.UserFeedbackScore != domain.NeutralHistoryScore {
		t.Fatalf("expected neutral feedback for unknown document, got %.2f",
			unknownFactors.UserFeedbackScore)
	}
}

func TestRankUrgencyFavorsPracticalSources(t *testing.T) {
	if got := urgencyAlignment(domain.DocTypeGuidance, domain.UrgencyCritical); got != 1.0 {
		t.Fatalf("expected 1.0 for urgent practical source, got %.2f", got)
	}
	if got := urgencyAlignment(domain.DocTypeLaw, domain.UrgencyCritical); got != 0.7 {
		t.Fatalf("expected 0.7 for urgent formal source, got %.2f", got)
	}
	if got := urgencyAlignment(domain.DocTypeGuidance, domain.UrgencyLow); got != 0.7 {
		t.Fatalf("expected 0.7 for non-urgent query, got %.2f", got)
	}
}

func TestRankInfersDocumentDomainFromTitle(t *testing.T) {
	r := testRanker(t)

	score := r.domainSpecificity(domain.SearchDocument{
		Title: "Kıdem Tazminatı ve İşçi Ücretleri Tebliği",
	}, "İş Hukuku")
	if score != 1.0 {
		t.Fatalf("expected inferred domain to match, got %.2f", score)
	}

	score = r.domainSpecificity(domain.SearchDocument{
		Title:       "Trafik Sigortası Genel Şartları",
		LegalDomain: "Sigorta Hukuku",
	}, "İş Hukuku")
	if score != 0.7 {
		t.Fatalf("expected related-domain score 0.7, got %.2f", score)
	}
}

func TestRankMetricsDiversityAndDistribution(t *testing.T) {
	r := testRanker(t)

	docs := []domain.FilteredResult{
		{Document: domain.SearchDocument{ID: "a", Title: "Kıdem Tazminatı Kanunu", Type: domain.DocTypeLaw, LegalDomain: "İş Hukuku"}, RelevanceScore: 0.8},
		{Document: domain.SearchDocument{ID: "b", Title: "Kıdem Tazminatı Tebliği", Type: domain.DocTypeCircular, LegalDomain: "İş Hukuku"}, RelevanceScore: 0.6},
	}
	result := r.Rank(docs, RankingContext{UserQuery: "kıdem tazminatı", DetectedDomain: "İş Hukuku"})

	metrics := result.Metrics
	if metrics.TotalDocuments != 2 {
		t.Fatalf("expected 2 total documents, got %d", metrics.TotalDocuments)
	}
	want := 2.0 / float64(len(domain.KnownDocumentTypes))
	if metrics.DiversityScore != want {
		t.Fatalf("expected diversity %.3f, got %.3f", want, metrics.DiversityScore)
	}
	bucketSum := metrics.Distribution.Excellent + metrics.Distribution.Good +
		metrics.Distribution.Fair + metrics.Distribution.Poor + metrics.Distribution.VeryPoor
	if bucketSum != 2 {
		t.Fatalf("distribution buckets must cover every document, got %d", bucketSum)
	}
	if metrics.CoverageScore > 1 {
		t.Fatalf("coverage must cap at 1, got %.2f", metrics.CoverageScore)
	}
}

func TestFreshnessScoreBuckets(t *testing.T) {
	r := testRanker(t)

	cases := []struct {
		age  int
		want float64
	}{
		{0, 1.0},
		{3, 0.8},
		{7, 0.6},
		{15, 0.4},
	}
	for _, tc := range cases {
		got := r.freshnessScore(fixedNow().AddDate(-tc.age, 0, -1))
		if got != tc.want {
			t.Fatalf("age %d years: expected %.1f, got %.1f", tc.age, tc.want, got)
		}
	}
	if got := r.freshnessScore(time.Time{}); got != 0.5 {
		t.Fatalf("expected 0.5 for unknown date, got %.1f", got)
	}
}
