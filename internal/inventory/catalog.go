package inventory

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// Item names recognized by the default catalog.
const (
	DexterityVest    = "+5 Dexterity Vest"
	ElixirMongoose   = "Elixir of the Mongoose"
	AgedBrie         = "Aged Brie"
	Sulfuras         = "Sulfuras, Hand of Ragnaros"
	BackstagePasses  = "Backstage passes to a TAFKAL80ETC concert"
	ConjuredManaCake = "Conjured Mana Cake"
)

// CatalogEntry is one name-to-category mapping.
type CatalogEntry struct {
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
}

// Catalog is the lookup table of recognized item names.
//
// Names match exactly. The only normalization is NFC, so a name spelled with
// combining accents matches its precomposed form; case and surrounding
// whitespace are part of the name. A strict catalog refuses names it does not
// know; a lenient one classifies them as decay.
//
// A Catalog is built once and must not be mutated after it is handed to an
// engine.
type Catalog struct {
	Strict  bool
	entries map[string]Category
	order   []string
}

// NewCatalog creates an empty catalog.
func NewCatalog(strict bool) *Catalog {
	return &Catalog{
		Strict:  strict,
		entries: make(map[string]Category),
	}
}

// DefaultCatalog returns the reference name table (lenient).
func DefaultCatalog() *Catalog {
	c := NewCatalog(false)
	for _, e := range []CatalogEntry{
		{DexterityVest, CategoryDecay},
		{ElixirMongoose, CategoryDecay},
		{AgedBrie, CategoryGrowth},
		{Sulfuras, CategoryInvariant},
		{BackstagePasses, CategoryTiered},
		{ConjuredManaCake, CategoryConjured},
	} {
		if err := c.Add(e.Name, e.Category); err != nil {
			panic(err)
		}
	}
	return c
}

// NormalizeName returns the lookup key for an item name: its NFC form.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// Add registers a name. Registering the same name twice with different
// categories is an error; re-registering with the same category is a no-op.
func (c *Catalog) Add(name string, category Category) error {
	key := NormalizeName(name)
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("catalog: item name must not be empty")
	}
	if category == CategoryUnclassified {
		return fmt.Errorf("catalog: %q: category is required", key)
	}
	if existing, ok := c.entries[key]; ok {
		if existing != category {
			return fmt.Errorf("catalog: %q already registered as %s, cannot register as %s", key, existing, category)
		}
		return nil
	}
	c.entries[key] = category
	c.order = append(c.order, key)
	return nil
}

// Lookup returns the category registered for name.
func (c *Catalog) Lookup(name string) (Category, bool) {
	category, ok := c.entries[NormalizeName(name)]
	return category, ok
}

// Classify returns the category for name. Unknown names fall through to
// decay with known set to false; strictness is enforced by the engine.
func (c *Catalog) Classify(name string) (category Category, known bool) {
	if category, ok := c.Lookup(name); ok {
		return category, true
	}
	return CategoryDecay, false
}

// Len returns the number of registered names.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Entries returns the registered names in registration order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, CatalogEntry{Name: name, Category: c.entries[name]})
	}
	return out
}

// Suggest returns the registered name closest to name, if one is close
// enough to be a plausible typo.
func (c *Catalog) Suggest(name string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(NormalizeName(name)))
	if token == "" {
		return "", false
	}

	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	for _, known := range c.order {
		cand := strings.ToLower(known)
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > levenshteinLimit(utf8.RuneCountInString(cand)) {
			continue
		}
		candidates = append(candidates, scored{name: known, dist: dist})
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	return candidates[0].name, true
}

// levenshteinLimit returns the largest edit distance accepted for a name of
// the given length in runes.
func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
