package domain

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NegativeExamplePrefix marks a catalogue example whose presence in a query
// counts against the domain instead of for it.
const NegativeExamplePrefix = "NOT_"

// FallbackDomainName is used when no domain scores above zero.
const FallbackDomainName = "Genel Hukuk"

// LegalDomain is one immutable entry of the legal domain catalogue.
type LegalDomain struct {
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description"`
	Examples           []string `yaml:"examples"`
	Keywords           []string `yaml:"keywords"`
	Boost              float64  `yaml:"boost"`
	PenaltyTerms       []string `yaml:"penalty_terms"`
	BaseModifier       float64  `yaml:"base_modifier"`
	ComplexityModifier float64  `yaml:"complexity_modifier"`
	RelatedDomains     []string `yaml:"related_domains"`
}

// IsNegativeExample reports whether example carries the negative marker and
// returns the underlying term.
func IsNegativeExample(example string) (string, bool) {
	if strings.HasPrefix(example, NegativeExamplePrefix) {
		return strings.TrimPrefix(example, NegativeExamplePrefix), true
	}
	return example, false
}

// Catalog is the ordered, read-only legal domain catalogue. Loaded once at
// startup and shared by all concurrent query pipelines.
type Catalog struct {
	domains []LegalDomain
	byName  map[string]int
}

//go:embed catalog.yaml
var catalogYAML []byte

// LoadCatalog parses and validates the embedded catalogue.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog builds a catalogue from YAML. Exposed for fixture catalogues
// in tests.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var file struct {
		Domains []LegalDomain `yaml:"domains"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, WrapError(ErrCatalogInvalid, "parse catalog", err)
	}
	if len(file.Domains) == 0 {
		return nil, fmt.Errorf("%w: no domains defined", ErrCatalogInvalid)
	}

	byName := make(map[string]int, len(file.Domains))
	for i, d := range file.Domains {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("%w: domain %d has empty name", ErrCatalogInvalid, i)
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate domain %q", ErrCatalogInvalid, d.Name)
		}
		byName[d.Name] = i
	}

	cat := &Catalog{domains: file.Domains, byName: byName}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *Catalog) validate() error {
	if _, ok := c.byName[FallbackDomainName]; !ok {
		return fmt.Errorf("%w: fallback domain %q missing", ErrCatalogInvalid, FallbackDomainName)
	}
	for _, d := range c.domains {
		if d.Boost <= 0 {
			return fmt.Errorf("%w: domain %q has non-positive boost", ErrCatalogInvalid, d.Name)
		}
		if d.BaseModifier <= 0 || d.BaseModifier > 1 {
			return fmt.Errorf("%w: domain %q base modifier out of range", ErrCatalogInvalid, d.Name)
		}
		if d.ComplexityModifier <= 0 {
			return fmt.Errorf("%w: domain %q complexity modifier out of range", ErrCatalogInvalid, d.Name)
		}
		for _, related := range d.RelatedDomains {
			if _, ok := c.byName[related]; !ok {
				return fmt.Errorf("%w: domain %q references unknown related domain %q", ErrCatalogInvalid, d.Name, related)
			}
		}
	}
	return nil
}

// Domains returns the catalogue entries in declaration order.
func (c *Catalog) Domains() []LegalDomain {
	return c.domains
}

// Get looks a domain up by exact name.
func (c *Catalog) Get(name string) (*LegalDomain, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return &c.domains[i], true
}

// Fallback returns the catch-all domain entry.
func (c *Catalog) Fallback() *LegalDomain {
	d, _ := c.Get(FallbackDomainName)
	return d
}

// IsRelated reports whether other is in name's configured related-domain list.
func (c *Catalog) IsRelated(name, other string) bool {
	d, ok := c.Get(name)
	if !ok {
		return false
	}
	for _, related := range d.RelatedDomains {
		if related == other {
			return true
		}
	}
	return false
}

// ContextText assembles the text embedded for semantic domain matching:
// name, description and positive examples joined together.
func (d *LegalDomain) ContextText() string {
	parts := make([]string, 0, len(d.Examples)+2)
	parts = append(parts, d.Name, d.Description)
	for _, ex := range d.Examples {
		if term, negative := IsNegativeExample(ex); !negative {
			parts = append(parts, term)
		}
	}
	return strings.Join(parts, " ")
}
