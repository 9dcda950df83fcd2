package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadCatalogEmbedded(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog.Domains()) == 0 {
		t.Fatalf("expected embedded domains")
	}
	if catalog.Fallback() == nil {
		t.Fatalf("expected fallback domain %q", FallbackDomainName)
	}
	if _, ok := catalog.Get("İş Hukuku"); !ok {
		t.Fatalf("expected İş Hukuku in catalogue")
	}
}

const validCatalogYAML = `
domains:
  - name: "İş Hukuku"
    description: "işçi ve işveren"
    examples: ["kıdem tazminatı", "NOT_otel"]
    keywords: [kıdem, tazminat]
    boost: 1.2
    base_modifier: 0.9
    complexity_modifier: 1.0
    related_domains: ["Genel Hukuk"]
  - name: "Genel Hukuk"
    description: "genel"
    examples: ["mevzuat"]
    keywords: [hukuk]
    boost: 1.0
    base_modifier: 0.6
    complexity_modifier: 0.9
`

func TestParseCatalogValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "missing fallback",
			mutate:  func(s string) string { return strings.ReplaceAll(s, "Genel Hukuk", "Başka Hukuk") },
			wantErr: "fallback",
		},
		{
			name:    "duplicate name",
			mutate:  func(s string) string { return strings.ReplaceAll(s, "İş Hukuku", "Genel Hukuk") },
			wantErr: "duplicate",
		},
		{
			name:    "non-positive boost",
			mutate:  func(s string) string { return strings.Replace(s, "boost: 1.2", "boost: 0", 1) },
			wantErr: "boost",
		},
		{
			name:    "base modifier out of range",
			mutate:  func(s string) string { return strings.Replace(s, "base_modifier: 0.9", "base_modifier: 1.5", 1) },
			wantErr: "base modifier",
		},
		{
			name: "unknown related domain",
			mutate: func(s string) string {
				return strings.Replace(s, `related_domains: ["Genel Hukuk"]`, `related_domains: ["Uzay Hukuku"]`, 1)
			},
			wantErr: "related",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.mutate(validCatalogYAML)))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.Is(err, ErrCatalogInvalid) {
				t.Fatalf("expected ErrCatalogInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParseCatalogValid(t *testing.T) {
	catalog, err := ParseCatalog([]byte(validCatalogYAML))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	if !catalog.IsRelated("İş Hukuku", "Genel Hukuk") {
		t.Fatalf("expected configured relation")
	}
	if catalog.IsRelated("Genel Hukuk", "İş Hukuku") {
		t.Fatalf("relations are directional")
	}
}

func TestParseCatalogRejectsEmpty(t *testing.T) {
	if _, err := ParseCatalog([]byte("domains: []")); err == nil {
		t.Fatalf("expected error for empty catalogue")
	}
	if _, err := ParseCatalog([]byte(":::")); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestIsNegativeExample(t *testing.T) {
	if term, negative := IsNegativeExample("NOT_otel"); !negative || term != "otel" {
		t.Fatalf("expected negative otel, got %q/%v", term, negative)
	}
	if term, negative := IsNegativeExample("kıdem tazminatı"); negative || term != "kıdem tazminatı" {
		t.Fatalf("expected positive passthrough, got %q/%v", term, negative)
	}
}

func TestContextTextExcludesNegativeExamples(t *testing.T) {
	catalog, err := ParseCatalog([]byte(validCatalogYAML))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	d, _ := catalog.Get("İş Hukuku")
	text := d.ContextText()
	if !strings.Contains(text, "kıdem tazminatı") {
		t.Fatalf("context text must include positive examples: %s", text)
	}
	if strings.Contains(text, "otel") {
		t.Fatalf("context text must exclude negative examples: %s", text)
	}
}
