package compiler

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/gildedrose/internal/inventory"
)

//go:embed schema.cue
var schemaSource []byte

//go:embed default.cue
var defaultSource []byte

// DefaultFilename is the filename reported in positions of the embedded
// reference rules.
const DefaultFilename = "default.cue"

// Rules is a compiled rules file: the engine configuration and the item
// catalog.
type Rules struct {
	Config  inventory.Config
	Catalog *inventory.Catalog
}

// DefaultSource returns a copy of the embedded reference rules file.
func DefaultSource() []byte {
	return bytes.Clone(defaultSource)
}

// Default compiles the embedded reference rules.
// Panics if they do not compile; the embedded file is covered by tests.
func Default() *Rules {
	rules, err := CompileBytes(DefaultFilename, defaultSource)
	if err != nil {
		panic(fmt.Sprintf("compile embedded rules: %v", err))
	}
	return rules
}

// CompileFile reads and compiles a rules file.
func CompileFile(path string) (*Rules, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	return CompileBytes(path, src)
}

// CompileBytes compiles rules source. filename is only used for positions.
func CompileBytes(filename string, src []byte) (*Rules, error) {
	ctx := cuecontext.New()
	return Compile(ctx.CompileBytes(src, cue.Filename(filename)))
}

// Compile parses a CUE value into Rules.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The value is checked against the rules schema first, so unknown fields
// and unknown categories are reported with their source position. Absent
// fields keep their reference defaults; an absent items table keeps the
// reference catalog.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`maximum_quality: 60`)
//	rules, err := Compile(v)
func Compile(v cue.Value) (*Rules, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := v.Context().CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile rules schema: %w", err)
	}
	if err := schema.LookupPath(cue.ParsePath("#Rules")).Unify(v).Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	cfg := inventory.DefaultConfig()
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"minimum_quality", &cfg.MinimumQuality},
		{"maximum_quality", &cfg.MaximumQuality},
		{"legendary_quality", &cfg.LegendaryQuality},
		{"normal_modifier", &cfg.NormalModifier},
		{"conjured_modifier", &cfg.ConjuredModifier},
	} {
		if err := lookupInt(v, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	if modVal := v.LookupPath(cue.ParsePath("tiered_modifiers")); modVal.Exists() {
		mods, err := parseModifiers(modVal)
		if err != nil {
			return nil, err
		}
		cfg.TieredModifiers = mods
	}

	if err := cfg.Validate(); err != nil {
		return nil, &CompileError{
			Field:   "rules",
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}

	strict := false
	if strictVal := v.LookupPath(cue.ParsePath("strict")); strictVal.Exists() {
		b, err := strictVal.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		strict = b
	}

	catalog, err := parseCatalog(v, strict)
	if err != nil {
		return nil, err
	}

	return &Rules{Config: cfg, Catalog: catalog}, nil
}

func lookupInt(v cue.Value, field string, dst *int) error {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil
	}
	n, err := fv.Int64()
	if err != nil {
		return formatCUEError(err)
	}
	*dst = int(n)
	return nil
}

// parseModifiers parses the tiered_modifiers list in declaration order.
func parseModifiers(v cue.Value) ([]inventory.QualityModifier, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	mods := []inventory.QualityModifier{}
	for i := 0; iter.Next(); i++ {
		m := iter.Value()
		field := fmt.Sprintf("tiered_modifiers[%d]", i)

		days, err := m.LookupPath(cue.ParsePath("days_left")).Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		amount, err := m.LookupPath(cue.ParsePath("amount")).Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}

		mod, err := inventory.NewQualityModifier(int(days), int(amount))
		if err != nil {
			return nil, &CompileError{Field: field, Message: err.Error(), Pos: m.Pos()}
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

// parseCatalog builds the catalog from the items table, or from the
// reference names when the table is absent.
func parseCatalog(v cue.Value, strict bool) (*inventory.Catalog, error) {
	catalog := inventory.NewCatalog(strict)

	itemsVal := v.LookupPath(cue.ParsePath("items"))
	if !itemsVal.Exists() {
		for _, e := range inventory.DefaultCatalog().Entries() {
			if err := catalog.Add(e.Name, e.Category); err != nil {
				return nil, err
			}
		}
		return catalog, nil
	}

	iter, err := itemsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Selector().Unquoted()
		field := fmt.Sprintf("items[%q]", name)

		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		category, err := inventory.ParseCategory(s)
		if err != nil {
			return nil, &CompileError{Field: field, Message: err.Error(), Pos: iter.Value().Pos()}
		}
		if err := catalog.Add(name, category); err != nil {
			return nil, &CompileError{Field: field, Message: err.Error(), Pos: iter.Value().Pos()}
		}
	}
	return catalog, nil
}
