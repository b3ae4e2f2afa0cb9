package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/inventory"
)

// CatalogResult is the effective configuration and name table.
type CatalogResult struct {
	Source  string                   `json:"source"`
	Strict  bool                     `json:"strict"`
	Config  inventory.Config         `json:"config"`
	Entries []inventory.CatalogEntry `json:"entries"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the effective rules and item catalog",
		Long: `Print the configuration and the name-to-category table that tick would use.

The rules come from --catalog (or GILDEDROSE_CATALOG); without either the
reference rules apply.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd)
		},
	}

	return cmd
}

func runCatalog(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	rules, err := LoadRules(opts.Catalog)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	source := opts.Catalog
	if source == "" {
		source = "reference"
	}

	result := CatalogResult{
		Source:  source,
		Strict:  rules.Catalog.Strict,
		Config:  rules.Config,
		Entries: rules.Catalog.Entries(),
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	mode := "lenient: unknown names decay"
	if result.Strict {
		mode = "strict: unknown names are rejected"
	}
	fmt.Fprintf(w, "Rules: %s (%s)\n\n", result.Source, mode)
	fmt.Fprintln(w, renderConfigTable(w, result.Config, opts.NoColor))
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderCatalogTable(w, result.Entries, opts.NoColor))
	return nil
}
