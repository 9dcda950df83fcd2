package usecase

import (
	"strings"
	"unicode"
)

// turkishStopWords is the fixed function-word set removed from every query
// before term analysis.
var turkishStopWords = map[string]struct{}{
	"bir": {}, "bu": {}, "şu": {}, "ve": {}, "ile": {}, "için": {},
	"gibi": {}, "kadar": {}, "daha": {}, "çok": {}, "az": {}, "olan": {},
	"olur": {}, "nasıl": {}, "nedir": {}, "ne": {}, "hangi": {},
	"mi": {}, "mı": {}, "mu": {}, "mü": {}, "da": {}, "de": {},
	"ki": {}, "ya": {}, "veya": {}, "ama": {}, "fakat": {}, "ancak": {},
	"her": {}, "hem": {}, "ise": {}, "yani": {},
}

// turkishLower lowercases with Turkish casing rules (İ→i, I→ı). The semantic
// model expects native Turkish text, so diacritics are never transliterated.
func turkishLower(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, s)
}

func isTurkishLetter(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	switch r {
	case 'ç', 'ğ', 'ı', 'ö', 'ş', 'ü', 'â', 'î', 'û':
		return true
	}
	return false
}

func hasTurkishSpecificLetter(s string) bool {
	return strings.ContainsAny(s, "çğıöşüÇĞİÖŞÜ")
}

// NormalizeText lowercases, strips punctuation and collapses whitespace while
// preserving Turkish letters. Always returns, possibly the empty string.
func NormalizeText(text string) string {
	lowered := turkishLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		switch {
		case isTurkishLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// ExtractMeaningfulTerms returns the query's alphabetic tokens longer than
// two runes with stop-words removed, preserving order and uniqueness.
func ExtractMeaningfulTerms(text string) []string {
	tokens := splitTurkishAlpha(turkishLower(text))
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len([]rune(token)) <= 2 {
			continue
		}
		if _, stop := turkishStopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// splitTurkishAlpha extracts maximal runs of Turkish letters.
func splitTurkishAlpha(s string) []string {
	if s == "" {
		return nil
	}
	tokens := make([]string, 0, 16)
	var b strings.Builder
	for _, r := range s {
		if isTurkishLetter(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
