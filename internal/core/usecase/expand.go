package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

// ExpansionContext carries the classification outputs the expander keys its
// tables on.
type ExpansionContext struct {
	LegalDomain      string
	DetectedKeywords []string
	UserIntent       domain.Intent
	FormalityLevel   string
}

// Expander generates synonym, contextual, intent and morphological variants
// of a query's base terms. Pure synchronous logic; it does not fail.
type Expander struct{}

func NewExpander() *Expander {
	return &Expander{}
}

// Expand produces the ranked, deduplicated, capped expansion term set.
func (e *Expander) Expand(query string, ectx ExpansionContext) domain.QueryExpansion {
	baseTerms := expansionBaseTerms(query)

	synonyms := collectSynonyms(baseTerms)
	contextual := collectContextualTerms(ectx.LegalDomain, baseTerms, ectx.DetectedKeywords)
	related := intentBoilerplateTerms[ectx.UserIntent]
	variations := collectLegalVariations(baseTerms, ectx.UserIntent)

	candidates := dedupeTerms(synonyms, contextual, related, variations)
	ranked := rankExpansionTerms(candidates, ectx.LegalDomain)
	if len(ranked) > domain.MaxExpandedTerms {
		ranked = ranked[:domain.MaxExpandedTerms]
	}

	return domain.QueryExpansion{
		OriginalQuery:   query,
		ExpandedTerms:   ranked,
		Synonyms:        synonyms,
		RelatedConcepts: append([]string(nil), related...),
		ContextualTerms: contextual,
		LegalVariations: variations,
		Confidence:      expansionConfidence(len(ranked), len(baseTerms), ranked, ectx.LegalDomain),
		Reasoning:       expansionReasoning(len(baseTerms), len(ranked), ectx.LegalDomain),
	}
}

// expansionBaseTerms keeps meaningful terms that are either longer than
// three runes or carry a Turkish-specific letter.
func expansionBaseTerms(query string) []string {
	terms := ExtractMeaningfulTerms(query)
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if len([]rune(t)) > 3 || hasTurkishSpecificLetter(t) {
			out = append(out, t)
		}
	}
	return out
}

// collectSynonyms matches the dictionary exactly and by containment in both
// directions.
func collectSynonyms(baseTerms []string) []string {
	out := make([]string, 0, len(baseTerms)*2)
	for _, t := range baseTerms {
		for key, values := range legalSynonyms {
			if t == key || strings.Contains(t, key) || strings.Contains(key, t) {
				out = append(out, values...)
			}
		}
	}
	sort.Strings(out)
	return dedupeTerms(out)
}

func collectContextualTerms(domainName string, baseTerms, detectedKeywords []string) []string {
	table := domainContextualTerms[domainName]
	if table == nil {
		return nil
	}
	seedTerms := append(append([]string(nil), baseTerms...), detectedKeywords...)
	out := make([]string, 0, 8)
	for concept, values := range table {
		for _, t := range seedTerms {
			if strings.Contains(turkishLower(t), concept) || strings.Contains(concept, turkishLower(t)) {
				out = append(out, values...)
				break
			}
		}
	}
	sort.Strings(out)
	return dedupeTerms(out)
}

// collectLegalVariations builds formal templates and blind morphological
// suffix forms for every base term.
func collectLegalVariations(baseTerms []string, intent domain.Intent) []string {
	out := make([]string, 0, len(baseTerms)*(3+len(morphSuffixes)))
	for _, t := range baseTerms {
		out = append(out,
			fmt.Sprintf("%s kanunu", t),
			fmt.Sprintf("%s mevzuatı", t),
			fmt.Sprintf("%s yönetmeliği", t),
		)
		if intent == domain.IntentDefinition {
			out = append(out, fmt.Sprintf("%s tanımı", t), fmt.Sprintf("%s nedir", t))
		}
		for _, suffix := range morphSuffixes {
			out = append(out, t+suffix)
		}
	}
	return dedupeTerms(out)
}

func dedupeTerms(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, t := range list {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, stop := turkishStopWords[t]; stop {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// rankExpansionTerms scores candidates and sorts them descending; ties keep
// insertion order.
func rankExpansionTerms(candidates []string, domainName string) []string {
	type scored struct {
		term  string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, term := range candidates {
		ranked = append(ranked, scored{term: term, score: scoreExpansionTerm(term, domainName)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.term
	}
	return out
}

func scoreExpansionTerm(term, domainName string) float64 {
	score := math.Min(1.5, float64(len([]rune(term)))/8.0)
	boosted := false

	if table := domainContextualTerms[domainName]; table != nil {
	domainLoop:
		for _, values := range table {
			for _, v := range values {
				if v == term {
					score += 2
					boosted = true
					break domainLoop
				}
			}
		}
	}

synonymLoop:
	for key, values := range legalSynonyms {
		if key == term {
			score += 1.5
			boosted = true
			break
		}
		for _, v := range values {
			if v == term {
				score += 1.5
				boosted = true
				break synonymLoop
			}
		}
	}

	if !boosted && containsAny(term, genericLegalWords) {
		score -= 0.5
	}
	return score
}

func expansionConfidence(expanded, baseCount int, terms []string, domainName string) float64 {
	confidence := 0.5
	if baseCount > 0 {
		confidence += math.Min(0.3, float64(expanded)/float64(baseCount)/10)
	}
	if len(terms) > 0 {
		domainSpecific := 0
		table := domainContextualTerms[domainName]
		for _, t := range terms {
			for _, values := range table {
				for _, v := range values {
					if v == t {
						domainSpecific++
					}
				}
			}
		}
		confidence += float64(domainSpecific) / float64(len(terms)) * 0.2
	}
	return math.Min(1, confidence)
}

func expansionReasoning(baseCount, expanded int, domainName string) string {
	return fmt.Sprintf("%d temel terimden %s alanına özgü %d genişletme üretildi", baseCount, domainName, expanded)
}
