package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/logging"
	"github.com/roach88/gildedrose/internal/stock"
)

// TickOptions holds flags for the tick command.
type TickOptions struct {
	*RootOptions
	OutputFormat string // text | json | yaml | toml; empty follows --format
}

// TickResult is the JSON payload of a completed tick.
type TickResult struct {
	RunID   string           `json:"run_id"`
	Day     int64            `json:"day"`
	Items   []inventory.Item `json:"items"`
	Changes []engine.Change  `json:"changes"`
}

// tickOutputFormats lists the accepted --output-format values.
var tickOutputFormats = []string{"text", "json", "yaml", "toml"}

// NewTickCommand creates the tick command.
func NewTickCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TickOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tick <inventory-file>",
		Short: "Advance an inventory by one day",
		Long: `Load an inventory file, advance every item by one day and print the
updated inventory.

The inventory format follows the file extension (.yaml, .yml, .toml, .json).
The yaml and toml output formats write an inventory document that can be fed
back into tick.

Exit codes:
  0 - Tick completed
  1 - Tick aborted (invariant violation, unknown item in a strict catalog)
  2 - Command error (missing file, malformed inventory, bad rules file)

Examples:
  gildedrose tick inventory.yaml
  gildedrose tick inventory.toml --catalog rules.cue
  gildedrose tick inventory.yaml --output-format yaml > tomorrow.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTick(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputFormat, "output-format", "o", "", "output format (text|json|yaml|toml)")

	return cmd
}

func runTick(opts *TickOptions, path string, cmd *cobra.Command) error {
	format := opts.OutputFormat
	if format == "" {
		format = opts.Format
	}
	if !isTickOutputFormat(format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid output format %q: must be one of %v", format, tickOutputFormats))
	}

	formatter := newFormatter(opts.RootOptions, cmd)
	if format == "json" {
		formatter.Format = "json"
	} else {
		formatter.Format = "text"
	}

	logger := logging.Component(opts.Logger, "tick")
	done := logging.LogOperationStart(logger, "tick")
	defer done()

	rules, err := LoadRules(opts.Catalog)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	items, err := LoadInventory(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d item(s) from %s", len(items), path)

	eng, err := engine.New(items,
		engine.WithConfig(rules.Config),
		engine.WithCatalog(rules.Catalog),
		engine.WithLogger(logging.Component(opts.Logger, "engine")),
	)
	if err != nil {
		return outputTickError(formatter, err)
	}

	report, err := eng.TickReport()
	if err != nil {
		return outputTickError(formatter, err)
	}
	logger.Info().
		Str("run_id", report.RunID).
		Int64("day", report.Day).
		Int("items", len(report.Changes)).
		Msg("tick complete")

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(w, CLIResponse{
			Status: StatusOK,
			Data: TickResult{
				RunID:   report.RunID,
				Day:     report.Day,
				Items:   eng.Items(),
				Changes: report.Changes,
			},
			RunID: report.RunID,
		})
	case "yaml", "toml":
		docFormat, err := stock.ParseFormat(format)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		if err := stock.Encode(w, docFormat, eng.Items()); err != nil {
			return WrapExitError(ExitCommandError, "failed to write inventory", err)
		}
		return nil
	default:
		fmt.Fprintln(w, renderChanges(w, report.Changes, opts.NoColor))
		fmt.Fprintf(w, "Day %d complete: %d item(s) advanced (run %s)\n", report.Day, len(report.Changes), report.RunID)
		return nil
	}
}

// outputCommandError reports a load failure (exit code 2).
func outputCommandError(formatter *OutputFormatter, err error) error {
	code := loadErrorCode(err)
	message := loadErrorMessage(err)
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputTickError reports an aborted tick (exit code 1). Runtime error codes
// are passed through unchanged.
func outputTickError(formatter *OutputFormatter, err error) error {
	_ = formatter.Fail(runtimeCLIError(err), nil)
	return WrapExitError(ExitFailure, "tick aborted", err)
}

func isTickOutputFormat(format string) bool {
	for _, f := range tickOutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
