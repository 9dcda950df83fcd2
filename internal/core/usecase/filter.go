package usecase

import (
	"sort"
	"strings"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

// FilterConfig tunes the relevance filter.
type FilterConfig struct {
	MinRelevanceScore float64
	MaxResults        int
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinRelevanceScore: 0.15,
		MaxResults:        10,
	}
}

// legalStructureWords signal a well-formed legislative title. "yönetmeliği"
// covers the possessive surface form, where the final k softens to ğ and the
// bare stem no longer appears as a substring.
var legalStructureWords = []string{"kanun", "yönetmelik", "yönetmeliği", "tebliğ", "karar", "genelge"}

const longTitleRunes = 120

// Filter drops raw candidates that score below the relevance threshold.
// Scoring is purely lexical and deterministic: the same input always yields
// the same output.
type Filter struct {
	catalog *domain.Catalog
	cfg     FilterConfig
}

func NewFilter(catalog *domain.Catalog, cfg FilterConfig) *Filter {
	if cfg.MinRelevanceScore <= 0 {
		cfg.MinRelevanceScore = DefaultFilterConfig().MinRelevanceScore
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultFilterConfig().MaxResults
	}
	return &Filter{catalog: catalog, cfg: cfg}
}

// Apply scores every raw document against the query and detected domain,
// drops those under the threshold, sorts descending and truncates to limit
// (the configured maximum when limit <= 0). FilterReason records every rule
// that fired so a reviewer can audit why a document was kept or dropped.
func (f *Filter) Apply(raw []domain.SearchDocument, query, domainName string, limit int) []domain.FilteredResult {
	if limit <= 0 {
		limit = f.cfg.MaxResults
	}
	queryWords := filterQueryWords(query)
	legalDomain, _ := f.catalog.Get(domainName)

	kept := make([]domain.FilteredResult, 0, len(raw))
	for _, doc := range raw {
		scored := f.scoreDocument(doc, queryWords, legalDomain)
		if scored.RelevanceScore < f.cfg.MinRelevanceScore {
			continue
		}
		kept = append(kept, scored)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func filterQueryWords(query string) []string {
	tokens := splitTurkishAlpha(turkishLower(query))
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len([]rune(t)) <= 2 {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (f *Filter) scoreDocument(doc domain.SearchDocument, queryWords []string, legalDomain *domain.LegalDomain) domain.FilteredResult {
	titleLower := turkishLower(doc.Title)
	score := 0.0
	var trace []string
	var matching []string

	directMatches := 0
	for _, w := range queryWords {
		if strings.Contains(titleLower, w) {
			score += 0.3
			directMatches++
			matching = append(matching, w)
			trace = append(trace, "direct:"+w)
		}
	}

	if legalDomain != nil {
		for _, kw := range legalDomain.Keywords {
			kwLower := turkishLower(kw)
			if strings.Contains(titleLower, kwLower) {
				score += 0.25
				matching = append(matching, kwLower)
				trace = append(trace, "domain:"+kwLower)
			}
		}
	}

	for _, w := range legalStructureWords {
		if strings.Contains(titleLower, w) {
			score += 0.1
			trace = append(trace, "legal:"+w)
		}
	}

	if legalDomain != nil && legalDomain.Boost != 1.0 {
		score *= legalDomain.Boost
		trace = append(trace, "boost")
	}

	if legalDomain != nil {
		for _, penalty := range legalDomain.PenaltyTerms {
			pLower := turkishLower(penalty)
			if strings.Contains(titleLower, pLower) {
				score -= 0.4
				trace = append(trace, "penalty:"+pLower)
			}
		}
	}

	if len([]rune(doc.Title)) > longTitleRunes {
		score -= 0.1
		trace = append(trace, "long-title")
	}

	if directMatches > 1 {
		score += 0.2
		trace = append(trace, "multi-match")
	}

	return domain.FilteredResult{
		Document:         doc,
		RelevanceScore:   clamp01(score),
		MatchingKeywords: dedupeTerms(matching),
		FilterReason:     strings.Join(trace, ", "),
	}
}
