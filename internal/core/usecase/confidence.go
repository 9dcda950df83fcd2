package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

// Fixed factor weights: domain match, term coverage, semantic similarity,
// query complexity, result relevance, historical accuracy.
var confidenceWeights = [6]float64{0.25, 0.20, 0.20, 0.15, 0.15, 0.05}

const (
	baseThreshold        = 0.6
	thresholdFloor       = 0.3
	thresholdCeil        = 0.9
	detailedContentChars = 100
	recentDocumentAge    = 2 * 365 * 24 * time.Hour
)

// ConfidenceContext is the input to query-interpretation confidence scoring.
// History may be nil.
type ConfidenceContext struct {
	UserQuery       string
	DetectedDomain  string
	SearchResults   []domain.FilteredResult
	QueryComplexity float64
	History         *domain.DomainHistory
}

// ConfidenceScorer estimates how much to trust the pipeline's interpretation
// of a query, independent of any per-document score.
type ConfidenceScorer struct {
	catalog *domain.Catalog
	now     func() time.Time
}

func NewConfidenceScorer(catalog *domain.Catalog) *ConfidenceScorer {
	return &ConfidenceScorer{catalog: catalog, now: time.Now}
}

// Score computes the six factors, combines them with the fixed weights and
// applies the domain's complexity modifier.
func (s *ConfidenceScorer) Score(cctx ConfidenceContext) domain.ConfidenceResult {
	queryLower := turkishLower(cctx.UserQuery)
	terms := ExtractMeaningfulTerms(cctx.UserQuery)

	detected, ok := s.catalog.Get(cctx.DetectedDomain)
	if !ok {
		detected = s.catalog.Fallback()
	}

	factors := domain.ConfidenceFactors{
		DomainMatch:        s.domainMatchFactor(detected, queryLower, terms),
		TermCoverage:       s.termCoverageFactor(queryLower, terms),
		SemanticSimilarity: semanticSimilarityFactor(cctx.SearchResults),
		QueryComplexity:    queryComplexityFactor(queryLower, cctx.QueryComplexity),
		ResultRelevance:    s.resultRelevanceFactor(cctx.SearchResults),
		HistoricalAccuracy: historicalAccuracyFactor(cctx.History),
	}

	values := [6]float64{
		factors.DomainMatch,
		factors.TermCoverage,
		factors.SemanticSimilarity,
		factors.QueryComplexity,
		factors.ResultRelevance,
		factors.HistoricalAccuracy,
	}
	var weighted, weightSum float64
	for i, v := range values {
		weighted += confidenceWeights[i] * v
		weightSum += confidenceWeights[i]
	}
	overall := clamp01(weighted / weightSum * detected.ComplexityModifier)

	indicators, actions := uncertaintySignals(factors, queryLower, terms, cctx.QueryComplexity)

	return domain.ConfidenceResult{
		OverallConfidence:     overall,
		Level:                 domain.LevelForConfidence(overall),
		Factors:               factors,
		UncertaintyIndicators: indicators,
		RecommendedActions:    actions,
		Threshold:             dynamicThreshold(detected, cctx.QueryComplexity, len(cctx.SearchResults)),
		Reasoning:             confidenceReasoning(detected.Name, overall, len(cctx.SearchResults)),
	}
}

var genericLegalQueryWords = []string{"hukuk", "kanun", "madde", "yasa"}

func (s *ConfidenceScorer) domainMatchFactor(detected *domain.LegalDomain, queryLower string, terms []string) float64 {
	factor := detected.BaseModifier

	hits := 0
	for _, kw := range detected.Keywords {
		if strings.Contains(queryLower, turkishLower(kw)) {
			hits++
		}
	}
	if len(detected.Keywords) > 0 {
		factor += float64(hits) / float64(len(detected.Keywords)) * 0.2
	}

	// Generic-only queries carry no domain evidence at all.
	if hits == 0 && onlyGenericLegalTerms(terms) {
		factor -= 0.3
	}
	return clamp01(factor)
}

func onlyGenericLegalTerms(terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, t := range terms {
		if !containsAny(t, genericLegalQueryWords) {
			return false
		}
	}
	return true
}

func (s *ConfidenceScorer) termCoverageFactor(queryLower string, terms []string) float64 {
	factor := 0.7
	if s.hasRecognizedLegalNoun(queryLower) {
		factor += 0.2
	}
	if len(terms) < 2 {
		factor -= 0.3
	}
	if len(terms) > 10 {
		factor -= 0.1
	}
	return clamp01(factor)
}

func (s *ConfidenceScorer) hasRecognizedLegalNoun(queryLower string) bool {
	for _, d := range s.catalog.Domains() {
		for _, kw := range d.Keywords {
			if strings.Contains(queryLower, turkishLower(kw)) {
				return true
			}
		}
	}
	return false
}

func semanticSimilarityFactor(results []domain.FilteredResult) float64 {
	if len(results) == 0 {
		return 0.1
	}
	factor := 0.5
	if len(results) >= 3 {
		factor += 0.2
	}
	for _, r := range results {
		if r.RelevanceScore > 0.7 {
			factor += 0.3
			break
		}
	}
	return clamp01(factor)
}

func queryComplexityFactor(queryLower string, complexity float64) float64 {
	factor := 1 - complexity/10
	if containsAny(queryLower, questionWords) {
		factor += 0.1
	}
	if len(strings.Fields(queryLower)) > 5 {
		factor -= 0.2
	}
	return clamp01(factor)
}

func (s *ConfidenceScorer) resultRelevanceFactor(results []domain.FilteredResult) float64 {
	if len(results) == 0 {
		return 0
	}
	factor := 0.3
	if len(results) >= 3 {
		factor += 0.2
	}
	if len(results) >= 5 {
		factor += 0.1
	}
	now := s.now()
	detailed, recent := false, false
	for _, r := range results {
		if len(r.Document.Content) > detailedContentChars {
			detailed = true
		}
		if !r.Document.GazetteDate.IsZero() && now.Sub(r.Document.GazetteDate) < recentDocumentAge {
			recent = true
		}
	}
	if detailed {
		factor += 0.2
	}
	if recent {
		factor += 0.1
	}
	if len(results) > 20 {
		factor -= 0.2
	}
	return clamp01(factor)
}

func historicalAccuracyFactor(history *domain.DomainHistory) float64 {
	if history == nil {
		return domain.NeutralHistoryScore
	}
	factor := history.AverageAccuracy
	if history.SimilarQueryCount > 10 {
		factor += 0.1
	}
	if history.SimilarQueryCount > 50 {
		factor += 0.1
	}
	switch {
	case history.FeedbackScore > 0:
		factor += 0.2
	case history.FeedbackScore < 0:
		factor -= 0.2
	}
	return clamp01(factor)
}

func dynamicThreshold(detected *domain.LegalDomain, complexity float64, resultCount int) float64 {
	threshold := baseThreshold * detected.BaseModifier
	if complexity > 7 {
		threshold -= 0.1
	}
	if resultCount < 3 {
		threshold -= 0.15
	}
	return math.Max(thresholdFloor, math.Min(thresholdCeil, threshold))
}

// uncertaintySignals runs each indicator rule independently so every entry
// remains individually actionable.
func uncertaintySignals(factors domain.ConfidenceFactors, queryLower string, terms []string, complexity float64) ([]string, []string) {
	var indicators, actions []string
	add := func(indicator, action string) {
		indicators = append(indicators, indicator)
		actions = append(actions, action)
	}

	if len([]rune(queryLower)) < 10 || len(terms) < 2 {
		add("Çok kısa sorgu", "Sorgunuzu birkaç kelime daha ekleyerek genişletin")
	}
	if factors.DomainMatch < 0.6 {
		add("Belirsiz hukuk alanı", "Sorgunuzda ilgili hukuk alanını açıkça belirtin")
	}
	if factors.TermCoverage < 0.5 {
		add("Eksik terim kapsamı", "Daha fazla hukuki anahtar kelime kullanın")
	}
	if factors.SemanticSimilarity < 0.3 {
		add("Zayıf anlamsal eşleşme", "Sorgunuzu farklı terimlerle yeniden ifade edin")
	}
	if factors.ResultRelevance < 0.3 {
		add("Düşük sonuç uygunluğu", "Arama terimlerini değiştirerek tekrar deneyin")
	}
	if complexity > 7 {
		add("Yüksek sorgu karmaşıklığı", "Sorgunuzu daha küçük sorulara bölün")
	}
	return indicators, actions
}

func confidenceReasoning(domainName string, overall float64, resultCount int) string {
	return fmt.Sprintf("%s alanı için genel güven %.2f (%d sonuç üzerinden)", domainName, overall, resultCount)
}
