package usecase

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
)

const (
	fallbackConfidence = 0.3

	// Keyword classification is authoritative above this confidence; legal
	// terminology is lexical enough that embeddings only serve as tiebreakers.
	keywordAuthorityThreshold = 0.4
	blendMinConfidence        = 0.3
	keywordBlendWeight        = 0.7
	semanticBlendWeight       = 0.3
	agreementBoost            = 1.2
	blendConfidenceCap        = 0.95
)

// Classifier resolves a free-form Turkish legal query to a domain, intent and
// interpretation metadata. It never fails: every degenerate input collapses
// to the catch-all domain with low confidence.
type Classifier struct {
	catalog  *domain.Catalog
	embedder ports.Embedder
	logger   *slog.Logger
}

// NewClassifier builds a classifier. embedder may be nil; the keyword path is
// fully standalone.
func NewClassifier(catalog *domain.Catalog, embedder ports.Embedder, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{catalog: catalog, embedder: embedder, logger: logger}
}

type domainScore struct {
	name       string
	confidence float64
}

// Classify runs the keyword path first and consults the embedding path only
// when keyword confidence is moderate at best.
func (c *Classifier) Classify(ctx context.Context, query string) domain.IntentResult {
	queryLower := turkishLower(strings.TrimSpace(query))
	terms := ExtractMeaningfulTerms(query)

	keyword := c.scoreByKeywords(queryLower, terms)
	method := domain.MethodKeyword
	chosen := keyword

	if keyword.confidence <= keywordAuthorityThreshold && c.embedder != nil {
		if semantic, ok := c.scoreBySemantics(ctx, queryLower); ok {
			chosen, method = combineClassifications(keyword, semantic)
		}
	}

	result := domain.IntentResult{
		LegalDomain:      chosen.name,
		DomainConfidence: chosen.confidence,
		Method:           method,
		Keywords:         terms,
		ComplexityScore:  complexityScore(queryLower),
		QueryType:        classifyQueryType(queryLower),
		UserGoal:         classifyUserGoal(queryLower),
		Urgency:          classifyUrgency(queryLower),
	}
	result.PrimaryIntent, result.SecondaryIntents, result.IntentConfidence = classifyIntent(queryLower)
	result.SearchStrategy = searchStrategyFor(result.PrimaryIntent, result.QueryType)
	result.PrioritizedTerms = c.prioritizeTerms(chosen.name, terms)
	result.Reasoning = classificationReasoning(chosen, method, len(terms))
	return result
}

// scoreByKeywords applies the weighted phrase/term matching over the whole
// catalogue and picks the best domain, ties broken by catalogue order.
// Selection compares raw scores; only the reported confidence is clamped.
func (c *Classifier) scoreByKeywords(queryLower string, terms []string) domainScore {
	bestName := ""
	bestRaw := 0.0

	for _, d := range c.catalog.Domains() {
		raw := c.scoreDomain(&d, queryLower, terms)
		if raw > bestRaw {
			bestRaw = raw
			bestName = d.Name
		}
	}
	if bestName == "" || bestRaw <= 0 {
		return domainScore{name: domain.FallbackDomainName, confidence: fallbackConfidence}
	}
	return domainScore{name: bestName, confidence: clamp01(bestRaw)}
}

func (c *Classifier) scoreDomain(d *domain.LegalDomain, queryLower string, terms []string) float64 {
	score := 0.0
	matches := 0

	for _, example := range d.Examples {
		term, negative := domain.IsNegativeExample(example)
		exLower := turkishLower(term)
		if negative {
			if strings.Contains(queryLower, exLower) {
				score -= 1.0
			}
			continue
		}

		if strings.Contains(exLower, " ") {
			words := strings.Fields(exLower)
			matched := 0
			total := 0
			for _, w := range words {
				if len([]rune(w)) <= 2 {
					continue
				}
				total++
				if strings.Contains(queryLower, w) {
					matched++
				}
			}
			if total > 0 && float64(matched)/float64(total) >= 0.7 {
				score += 2.5
				matches++
				if matched == total {
					score += 1.0
				}
			}
			continue
		}

		if strings.Contains(queryLower, exLower) {
			score += 2.0
			matches++
		}
	}

	// Partial overlaps between query terms and examples carry a deliberately
	// lower weight than phrase hits.
	for _, t := range terms {
		if len([]rune(t)) <= 3 {
			continue
		}
		for _, example := range d.Examples {
			term, negative := domain.IsNegativeExample(example)
			if negative {
				continue
			}
			exLower := turkishLower(term)
			if strings.Contains(exLower, t) || strings.Contains(t, exLower) {
				score += 0.8
				matches++
			}
		}
	}

	for _, rule := range domainContextRules[d.Name] {
		delta, n := rule(queryLower)
		score += delta
		matches += n
	}

	termSet := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		termSet[t] = struct{}{}
	}
	for _, w := range splitTurkishAlpha(turkishLower(d.Description)) {
		if len([]rune(w)) <= 3 {
			continue
		}
		if _, ok := termSet[w]; ok {
			score += 0.2
		}
	}

	if matches > 2 {
		score *= 1.2
	}
	if score < 0 {
		score = 0
	}
	return score
}

// scoreBySemantics embeds the query and every domain's context text, scores
// by cosine similarity, then remaps raw similarity to a confidence bucket.
// The remap compensates for the embedding model reporting misleadingly high
// baseline similarity between any two pieces of Turkish legal text.
func (c *Classifier) scoreBySemantics(ctx context.Context, queryLower string) (domainScore, bool) {
	queryVec, err := c.embedder.EmbedQuery(ctx, queryLower)
	if err != nil {
		c.logger.Warn("semantic_classification_unavailable", "error", err)
		return domainScore{}, false
	}

	domains := c.catalog.Domains()
	texts := make([]string, len(domains))
	for i := range domains {
		texts[i] = domains[i].ContextText()
	}
	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil || len(vectors) != len(domains) {
		c.logger.Warn("semantic_classification_unavailable", "error", err)
		return domainScore{}, false
	}

	best := domainScore{}
	bestSim := -1.0
	for i := range domains {
		sim := cosineSimilarity(queryVec, vectors[i])
		if sim > bestSim {
			bestSim = sim
			best.name = domains[i].Name
		}
	}
	if best.name == "" {
		return domainScore{}, false
	}
	best.confidence = remapSimilarity(bestSim)
	return best, true
}

func remapSimilarity(sim float64) float64 {
	switch {
	case sim > 0.8:
		return 0.95
	case sim > 0.6:
		return 0.85
	case sim > 0.4:
		return 0.7
	default:
		return 0.4
	}
}

// combineClassifications applies the asymmetric keyword-first trust model.
func combineClassifications(keyword, semantic domainScore) (domainScore, domain.ClassificationMethod) {
	if keyword.confidence > blendMinConfidence && semantic.confidence > blendMinConfidence {
		if keyword.name == semantic.name {
			blended := keywordBlendWeight*keyword.confidence + semanticBlendWeight*semantic.confidence
			blended = math.Min(blendConfidenceCap, blended*agreementBoost)
			return domainScore{name: keyword.name, confidence: blended}, domain.MethodHybrid
		}
		if semantic.confidence > keyword.confidence {
			return semantic, domain.MethodSemantic
		}
		return keyword, domain.MethodKeyword
	}
	if semantic.confidence > keyword.confidence {
		return semantic, domain.MethodSemantic
	}
	return keyword, domain.MethodKeyword
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// classifyIntent scores the fixed intent pattern table against the query and
// returns the winner plus up to two runner-ups.
func classifyIntent(queryLower string) (domain.Intent, []domain.Intent, float64) {
	type scored struct {
		intent domain.Intent
		score  int
	}
	results := make([]scored, 0, len(intentOrder))
	for _, intent := range intentOrder {
		n := 0
		for _, p := range intentPatterns[intent] {
			if p.MatchString(queryLower) {
				n++
			}
		}
		if n > 0 {
			results = append(results, scored{intent: intent, score: n})
		}
	}
	if len(results) == 0 {
		return domain.IntentDefinition, nil, fallbackConfidence
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	secondary := make([]domain.Intent, 0, 2)
	for _, r := range results[1:] {
		secondary = append(secondary, r.intent)
		if len(secondary) == 2 {
			break
		}
	}
	confidence := math.Min(1, float64(results[0].score)/3.0)
	return results[0].intent, secondary, confidence
}

func classifyQueryType(queryLower string) domain.QueryType {
	switch {
	case containsAny(queryLower, lookupWords):
		return domain.QueryTypeNavigational
	case containsAny(queryLower, analyticalWords):
		return domain.QueryTypeAnalytical
	case containsAny(queryLower, procedureWords):
		return domain.QueryTypeProcedural
	default:
		return domain.QueryTypeInformational
	}
}

func classifyUserGoal(queryLower string) domain.UserGoal {
	switch {
	case containsAny(queryLower, problemWords):
		return domain.GoalSolveProblem
	case containsAny(queryLower, documentWords):
		return domain.GoalPrepareDocument
	case containsAny(queryLower, verifyWords):
		return domain.GoalVerify
	default:
		return domain.GoalLearn
	}
}

func classifyUrgency(queryLower string) domain.UrgencyLevel {
	switch {
	case containsAny(queryLower, criticalWords):
		return domain.UrgencyCritical
	case containsAny(queryLower, highWords):
		return domain.UrgencyHigh
	case containsAny(queryLower, lowWords):
		return domain.UrgencyLow
	default:
		return domain.UrgencyMedium
	}
}

// complexityScore estimates query complexity on a 0-10 scale from length,
// word count, concept connectors, question-word density and analysis
// vocabulary.
func complexityScore(queryLower string) float64 {
	runeLen := len([]rune(queryLower))
	wordCount := len(strings.Fields(queryLower))

	score := 3 * math.Min(1, float64(runeLen)/50)
	score += 2 * math.Min(1, float64(wordCount)/10)
	if containsAny(queryLower, conceptConnectors) {
		score += 2
	}
	if countContained(queryLower, questionWords) > 1 {
		score++
	}
	if containsAny(queryLower, advancedWords) {
		score += 2
	}
	if score > 10 {
		score = 10
	}
	return score
}

func searchStrategyFor(intent domain.Intent, queryType domain.QueryType) domain.SearchStrategy {
	if intent == domain.IntentLegislation || queryType == domain.QueryTypeNavigational {
		return domain.StrategyTitle
	}
	return domain.StrategyPhrase
}

// prioritizeTerms orders meaningful terms by domain keyword hits first, then
// by length, and keeps the top four.
func (c *Classifier) prioritizeTerms(domainName string, terms []string) []string {
	d, ok := c.catalog.Get(domainName)
	keywordSet := map[string]struct{}{}
	if ok {
		for _, k := range d.Keywords {
			keywordSet[turkishLower(k)] = struct{}{}
		}
	}

	ranked := make([]string, len(terms))
	copy(ranked, terms)
	sort.SliceStable(ranked, func(i, j int) bool {
		_, iKey := keywordSet[ranked[i]]
		_, jKey := keywordSet[ranked[j]]
		if iKey != jKey {
			return iKey
		}
		return len([]rune(ranked[i])) > len([]rune(ranked[j]))
	})
	if len(ranked) > 4 {
		ranked = ranked[:4]
	}
	return ranked
}

func classificationReasoning(chosen domainScore, method domain.ClassificationMethod, termCount int) string {
	var b strings.Builder
	b.WriteString(chosen.name)
	b.WriteString(" alanı ")
	switch method {
	case domain.MethodKeyword:
		b.WriteString("anahtar kelime eşleşmesiyle")
	case domain.MethodSemantic:
		b.WriteString("anlamsal benzerlikle")
	default:
		b.WriteString("karma yöntemle")
	}
	b.WriteString(" belirlendi")
	if termCount == 0 {
		b.WriteString("; sorguda anlamlı terim bulunamadı")
	}
	return b.String()
}
