// Package stock reads and writes inventory files.
//
// An inventory file holds a single "items" list. The encoding is chosen by
// file extension: .yaml/.yml, .toml or .json. The same document shape is
// used for every encoding:
//
//	items:
//	  - name: Aged Brie
//	    sell_in: 2
//	    quality: 0
//	    category: growth   # optional; must agree with the catalog when present
package stock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Format identifies an inventory file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
func Formats() []Format {
	return []Format{FormatYAML, FormatTOML, FormatJSON}
}

// ParseFormat parses a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported inventory format %q (want yaml, toml or json)", s)
	}
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("inventory file %s has no extension", path)
	}
	return ParseFormat(ext)
}

// document is the on-disk shape shared by every encoding.
type document struct {
	Items []inventory.Item `json:"items" yaml:"items" toml:"items"`
}

// Load reads an inventory file, choosing the decoder by extension.
func Load(path string) ([]inventory.Item, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer f.Close()

	items, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Decode reads an inventory document. Unknown fields are rejected so that a
// misspelled sell_in does not silently become zero. An empty document is an
// empty inventory.
func Decode(r io.Reader, format Format) ([]inventory.Item, error) {
	var doc document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, tomlError(err)
		}
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read JSON: %w", err)
		}
		if len(bytes.TrimSpace(data)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&doc); err != nil {
				return nil, fmt.Errorf("parse JSON: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported inventory format %q", format)
	}

	if err := validate(doc.Items); err != nil {
		return nil, err
	}
	if doc.Items == nil {
		doc.Items = []inventory.Item{}
	}
	return doc.Items, nil
}

// Encode writes items as an inventory document.
func Encode(w io.Writer, format Format, items []inventory.Item) error {
	doc := document{Items: items}
	if doc.Items == nil {
		doc.Items = []inventory.Item{}
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode TOML: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported inventory format %q", format)
	}
}

// tomlError names the offending keys; go-toml's strict mode error does not.
func tomlError(err error) error {
	var sme *toml.StrictMissingError
	if !errors.As(err, &sme) {
		return fmt.Errorf("parse TOML: %w", err)
	}
	fields := make([]string, 0, len(sme.Errors))
	for _, e := range sme.Errors {
		row, _ := e.Position()
		fields = append(fields, fmt.Sprintf("%s (line %d)", strings.Join(e.Key(), "."), row))
	}
	return fmt.Errorf("parse TOML: unknown fields %s", strings.Join(fields, ", "))
}

func validate(items []inventory.Item) error {
	var errs []error
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Errorf("items[%d]: name is required", i))
		}
	}
	return errors.Join(errs...)
}
