package usecase

import (
	"reflect"
	"testing"
)

func TestNormalizeTextStripsPunctuationKeepsTurkishLetters(t *testing.T) {
	got := NormalizeText("Kıdem Tazminatı (4857 sayılı İş Kanunu)!")
	want := "kıdem tazminatı 4857 sayılı iş kanunu"
	if got != want {
		t.Fatalf("NormalizeText() = %q, want %q", got, want)
	}
}

func TestNormalizeTextTurkishCasing(t *testing.T) {
	if got := NormalizeText("İŞÇİ HAKLARI"); got != "işçi hakları" {
		t.Fatalf("expected Turkish dotted/dotless casing, got %q", got)
	}
	if got := NormalizeText("ISPARTA"); got != "ısparta" {
		t.Fatalf("expected I to lower to ı, got %q", got)
	}
}

func TestNormalizeTextEmpty(t *testing.T) {
	if got := NormalizeText("  ...  "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestExtractMeaningfulTermsDropsStopWordsAndShortTokens(t *testing.T) {
	got := ExtractMeaningfulTerms("Bu bir kıdem ve tazminat sorusu mu?")
	want := []string{"kıdem", "tazminat", "sorusu"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractMeaningfulTerms() = %v, want %v", got, want)
	}
}

func TestExtractMeaningfulTermsPreservesOrderAndUniqueness(t *testing.T) {
	got := ExtractMeaningfulTerms("tazminat davası tazminat miktarı")
	want := []string{"tazminat", "davası", "miktarı"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractMeaningfulTerms() = %v, want %v", got, want)
	}
}

func TestExtractMeaningfulTermsEmptyInput(t *testing.T) {
	if got := ExtractMeaningfulTerms(""); len(got) != 0 {
		t.Fatalf("expected no terms, got %v", got)
	}
}
