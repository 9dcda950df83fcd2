package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

// Category weights: content relevance, document quality, user context,
// historical performance.
const (
	weightContentRelevance = 0.40
	weightDocumentQuality  = 0.25
	weightUserContext      = 0.20
	weightHistorical       = 0.15
)

// Within-category sub-weights.
const (
	subSemanticRelevance = 0.5
	subKeywordMatch      = 0.3
	subDomainSpecificity = 0.2

	subAuthority    = 0.4
	subFreshness    = 0.3
	subCompleteness = 0.3

	subIntentAlignment = 0.5
	subComplexityMatch = 0.3
	subUrgencyMatch    = 0.2

	subFeedback     = 0.4
	subClickThrough = 0.3
	subSuccess      = 0.3
)

// authorityByType ranks document types by formal authority.
var authorityByType = map[domain.DocumentType]float64{
	domain.DocTypeLaw:            1.0,
	domain.DocTypeRegulation:     0.9,
	domain.DocTypeDecree:         0.85,
	domain.DocTypeCourtDecision:  0.8,
	domain.DocTypeCircular:       0.7,
	domain.DocTypeInterpretation: 0.6,
	domain.DocTypeGuidance:       0.5,
}

var officialAuthorityMarkers = []string{"resmî gazete", "resmi gazete", "tbmm", "meclis"}

// intentAlignmentWords is the fixed per-intent keyword set the aligner checks
// against document text.
var intentAlignmentWords = map[domain.Intent][]string{
	domain.IntentDefinition:  {"tanım", "kapsam", "amaç"},
	domain.IntentProcedure:   {"başvuru", "usul", "işlem"},
	domain.IntentRights:      {"hak", "talep"},
	domain.IntentObligation:  {"yükümlülük", "zorunlu"},
	domain.IntentPenalty:     {"ceza", "yaptırım"},
	domain.IntentDocument:    {"belge", "evrak"},
	domain.IntentTimeline:    {"süre", "zamanaşımı"},
	domain.IntentCost:        {"harç", "ücret"},
	domain.IntentLegislation: {"madde", "fıkra"},
}

var complexConnectives = []string{"bununla birlikte", "bu kapsamda", "hükümleri saklıdır", "mezkûr"}

// RankingContext carries query-side inputs to ranking. DocumentHistory may be
// nil or sparse; missing entries fall back to the neutral score.
type RankingContext struct {
	UserQuery       string
	DetectedDomain  string
	UserIntent      domain.Intent
	Urgency         domain.UrgencyLevel
	QueryComplexity float64
	DocumentHistory map[string]domain.DocumentHistory
}

// Ranker computes the final multi-factor score per document and orders the
// result set.
type Ranker struct {
	catalog *domain.Catalog
	now     func() time.Time
}

func NewRanker(catalog *domain.Catalog) *Ranker {
	return &Ranker{catalog: catalog, now: time.Now}
}

// Rank scores, sorts (stable, ties keep input order) and annotates the
// filtered candidates.
func (r *Ranker) Rank(docs []domain.FilteredResult, rctx RankingContext) domain.RankingResult {
	start := r.now()

	if len(docs) == 0 {
		return domain.RankingResult{
			RankedResults: []domain.RankedDocument{},
			Metrics:       domain.RankingMetrics{},
			Explanation: fmt.Sprintf(
				"%s alanı için filtre sonrası sıralanacak sonuç kalmadı", rctx.DetectedDomain),
			ProcessingTime: r.now().Sub(start),
		}
	}

	queryLower := turkishLower(rctx.UserQuery)
	queryTerms := ExtractMeaningfulTerms(rctx.UserQuery)

	ranked := make([]domain.RankedDocument, 0, len(docs))
	for _, fr := range docs {
		factors := r.scoreFactors(fr.Document, queryLower, queryTerms, rctx)
		final := clamp01(combineFactors(factors))
		ranked = append(ranked, domain.RankedDocument{
			Document:         fr.Document,
			OriginalScore:    fr.RelevanceScore,
			FinalScore:       final,
			Factors:          factors,
			RelevanceReasons: relevanceReasons(factors),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	metrics := computeMetrics(ranked)
	return domain.RankingResult{
		RankedResults:  ranked,
		Metrics:        metrics,
		Explanation:    rankingExplanation(rctx.DetectedDomain, metrics),
		Confidence:     metrics.CoverageScore,
		ProcessingTime: r.now().Sub(start),
	}
}

func (r *Ranker) scoreFactors(doc domain.SearchDocument, queryLower string, queryTerms []string, rctx RankingContext) domain.RankingFactors {
	docText := turkishLower(doc.Title + " " + doc.Content)

	factors := domain.RankingFactors{
		SemanticRelevance: semanticRelevance(docText, queryLower, queryTerms),
		KeywordMatch:      r.keywordMatch(docText, rctx.DetectedDomain),
		DomainSpecificity: r.domainSpecificity(doc, rctx.DetectedDomain),

		AuthorityScore:    authorityScore(doc),
		FreshnessScore:    r.freshnessScore(doc.GazetteDate),
		CompletenessScore: completenessScore(doc.Content),

		IntentAlignment:  intentAlignment(docText, rctx.UserIntent),
		ComplexityMatch:  complexityMatch(doc.Content, rctx.QueryComplexity),
		UrgencyAlignment: urgencyAlignment(doc.Type, rctx.Urgency),
	}

	history, ok := rctx.DocumentHistory[doc.ID]
	if ok {
		factors.UserFeedbackScore = clamp01(history.FeedbackScore)
		factors.ClickThroughRate = clamp01(history.ClickThroughRate)
		factors.SuccessRate = clamp01(history.SuccessRate)
	} else {
		factors.UserFeedbackScore = domain.NeutralHistoryScore
		factors.ClickThroughRate = domain.NeutralHistoryScore
		factors.SuccessRate = domain.NeutralHistoryScore
	}
	return factors
}

func combineFactors(f domain.RankingFactors) float64 {
	content := subSemanticRelevance*f.SemanticRelevance +
		subKeywordMatch*f.KeywordMatch +
		subDomainSpecificity*f.DomainSpecificity
	quality := subAuthority*f.AuthorityScore +
		subFreshness*f.FreshnessScore +
		subCompleteness*f.CompletenessScore
	userCtx := subIntentAlignment*f.IntentAlignment +
		subComplexityMatch*f.ComplexityMatch +
		subUrgencyMatch*f.UrgencyAlignment
	historical := subFeedback*f.UserFeedbackScore +
		subClickThrough*f.ClickThroughRate +
		subSuccess*f.SuccessRate

	return weightContentRelevance*content +
		weightDocumentQuality*quality +
		weightUserContext*userCtx +
		weightHistorical*historical
}

func semanticRelevance(docText, queryLower string, queryTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}
	found := 0
	for _, t := range queryTerms {
		if strings.Contains(docText, t) {
			found++
		}
	}
	score := float64(found) / float64(len(queryTerms))
	if queryLower != "" && strings.Contains(docText, queryLower) {
		score += 0.3
	}
	return math.Min(1, score)
}

func (r *Ranker) keywordMatch(docText, domainName string) float64 {
	d, ok := r.catalog.Get(domainName)
	if !ok || len(d.Keywords) == 0 {
		return 0
	}
	found := 0
	for _, kw := range d.Keywords {
		if strings.Contains(docText, turkishLower(kw)) {
			found++
		}
	}
	return float64(found) / float64(len(d.Keywords))
}

func (r *Ranker) domainSpecificity(doc domain.SearchDocument, detected string) float64 {
	docDomain := doc.LegalDomain
	if docDomain == "" {
		docDomain = r.inferDocumentDomain(doc)
	}
	switch {
	case docDomain == detected:
		return 1.0
	case r.catalog.IsRelated(detected, docDomain):
		return 0.7
	default:
		return 0.3
	}
}

// inferDocumentDomain picks the catalogue domain with the most keyword hits
// in the title; ties resolve in catalogue order.
func (r *Ranker) inferDocumentDomain(doc domain.SearchDocument) string {
	titleLower := turkishLower(doc.Title)
	best := ""
	bestHits := 0
	for _, d := range r.catalog.Domains() {
		hits := 0
		for _, kw := range d.Keywords {
			if strings.Contains(titleLower, turkishLower(kw)) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = d.Name
		}
	}
	return best
}

func authorityScore(doc domain.SearchDocument) float64 {
	score, ok := authorityByType[doc.Type]
	if !ok {
		score = domain.NeutralHistoryScore
	}
	authorityLower := turkishLower(doc.Authority)
	for _, marker := range officialAuthorityMarkers {
		if strings.Contains(authorityLower, marker) {
			score += 0.2
			break
		}
	}
	return math.Min(1, score)
}

func (r *Ranker) freshnessScore(gazetteDate time.Time) float64 {
	if gazetteDate.IsZero() {
		return 0.5
	}
	age := r.now().Sub(gazetteDate)
	yearHours := 365 * 24 * time.Hour
	switch {
	case age < yearHours:
		return 1.0
	case age < 5*yearHours:
		return 0.8
	case age < 10*yearHours:
		return 0.6
	default:
		return 0.4
	}
}

func completenessScore(content string) float64 {
	score := 0.5
	if len(content) > 100 {
		score += 0.2
	}
	if len(content) > 500 {
		score += 0.2
	}
	contentLower := turkishLower(content)
	if strings.Contains(contentLower, "madde") || strings.Contains(contentLower, "fıkra") {
		score += 0.1
	}
	return math.Min(1, score)
}

func intentAlignment(docText string, intent domain.Intent) float64 {
	words, ok := intentAlignmentWords[intent]
	if !ok || len(words) == 0 {
		return domain.NeutralHistoryScore
	}
	found := 0
	for _, w := range words {
		if strings.Contains(docText, w) {
			found++
		}
	}
	return float64(found) / float64(len(words))
}

// complexityMatch compares the document's estimated complexity with the
// query's on the shared 0-10 scale.
func complexityMatch(content string, queryComplexity float64) float64 {
	docComplexity := estimateDocumentComplexity(content)
	match := 1 - math.Abs(docComplexity-queryComplexity)/10
	if match < 0 {
		return 0
	}
	return match
}

func estimateDocumentComplexity(content string) float64 {
	contentLower := turkishLower(content)
	maddeCount := strings.Count(contentLower, "madde")

	score := 4 * math.Min(1, float64(len([]rune(content)))/2000)
	score += 3 * math.Min(1, float64(maddeCount)/20)
	if containsAny(contentLower, complexConnectives) {
		score += 3
	}
	return math.Min(10, score)
}

// urgencyAlignment favors practical, actionable source types for urgent
// queries; everything else is neutral.
func urgencyAlignment(docType domain.DocumentType, urgency domain.UrgencyLevel) float64 {
	urgent := urgency == domain.UrgencyCritical || urgency == domain.UrgencyHigh
	practical := docType == domain.DocTypeGuidance || docType == domain.DocTypeCircular
	if urgent && practical {
		return 1.0
	}
	return 0.7
}

func computeMetrics(ranked []domain.RankedDocument) domain.RankingMetrics {
	metrics := domain.RankingMetrics{TotalDocuments: len(ranked)}
	if len(ranked) == 0 {
		return metrics
	}

	var sum float64
	types := make(map[domain.DocumentType]struct{})
	for _, doc := range ranked {
		sum += doc.FinalScore
		types[doc.Document.Type] = struct{}{}
		switch {
		case doc.FinalScore >= 0.8:
			metrics.Distribution.Excellent++
		case doc.FinalScore >= 0.6:
			metrics.Distribution.Good++
		case doc.FinalScore >= 0.4:
			metrics.Distribution.Fair++
		case doc.FinalScore >= 0.2:
			metrics.Distribution.Poor++
		default:
			metrics.Distribution.VeryPoor++
		}
	}
	metrics.AverageScore = sum / float64(len(ranked))
	metrics.DiversityScore = float64(len(types)) / float64(len(domain.KnownDocumentTypes))
	metrics.CoverageScore = math.Min(1, metrics.AverageScore*1.2)
	return metrics
}

// relevanceReasons derives the human-readable notes from fixed notable
// thresholds; never independently authored data.
func relevanceReasons(f domain.RankingFactors) []string {
	var reasons []string
	if f.SemanticRelevance > 0.8 {
		reasons = append(reasons, "Sorguyla yüksek anlamsal benzerlik")
	}
	if f.KeywordMatch > 0.6 {
		reasons = append(reasons, "Alan anahtar kelimeleriyle güçlü eşleşme")
	}
	if f.DomainSpecificity >= 1.0 {
		reasons = append(reasons, "Tespit edilen hukuk alanıyla birebir uyumlu")
	}
	if f.AuthorityScore > 0.9 {
		reasons = append(reasons, "Yüksek otoriteli kaynak")
	}
	if f.FreshnessScore >= 1.0 {
		reasons = append(reasons, "Güncel mevzuat")
	}
	if f.CompletenessScore > 0.8 {
		reasons = append(reasons, "Kapsamlı içerik")
	}
	if f.IntentAlignment > 0.7 {
		reasons = append(reasons, "Soru amacıyla uyumlu içerik")
	}
	return reasons
}

func rankingExplanation(domainName string, metrics domain.RankingMetrics) string {
	return fmt.Sprintf(
		"%s alanında %d belge çok faktörlü puanlamayla sıralandı (ortalama %.2f, çeşitlilik %.2f)",
		domainName, metrics.TotalDocuments, metrics.AverageScore, metrics.DiversityScore)
}
