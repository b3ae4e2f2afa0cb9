package inventory

import (
	"fmt"
	"strings"
)

// Item is a single stock entry advanced by the engine once per day.
type Item struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	SellIn   int      `json:"sell_in" yaml:"sell_in" toml:"sell_in"`
	Quality  int      `json:"quality" yaml:"quality" toml:"quality"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
}

// String renders the item the way the legacy inventory printout did.
func (i Item) String() string {
	return fmt.Sprintf("%s, %d, %d", i.Name, i.SellIn, i.Quality)
}

// Category is the behavior tag that selects a quality rule.
type Category int

const (
	// CategoryUnclassified marks an item the engine has not classified yet.
	CategoryUnclassified Category = iota

	// CategoryDecay loses quality every day, twice as fast after expiry.
	CategoryDecay

	// CategoryGrowth gains quality every day, twice as fast after expiry.
	CategoryGrowth

	// CategoryTiered gains quality faster as expiry nears, then drops to the floor.
	CategoryTiered

	// CategoryInvariant never changes quality or sellIn.
	CategoryInvariant

	// CategoryConjured decays at the conjured rate.
	CategoryConjured
)

var categoryNames = map[Category]string{
	CategoryUnclassified: "unclassified",
	CategoryDecay:        "decay",
	CategoryGrowth:       "growth",
	CategoryTiered:       "tiered",
	CategoryInvariant:    "invariant",
	CategoryConjured:     "conjured",
}

// Categories lists the classifiable categories in declaration order.
func Categories() []Category {
	return []Category{CategoryDecay, CategoryGrowth, CategoryTiered, CategoryInvariant, CategoryConjured}
}

// String returns the lowercase category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory parses a lowercase category name.
// The empty string parses to CategoryUnclassified.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryUnclassified, nil
	}
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return CategoryUnclassified, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if _, ok := categoryNames[c]; !ok {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	if c == CategoryUnclassified {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
