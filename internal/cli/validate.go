package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Items  int                        `json:"items"`
	Strict bool                       `json:"strict"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rules.cue>",
		Short: "Validate a rules file",
		Long: `Compile a CUE rules file and check it for mistakes.

Reports compile errors with their source position, then runs the consistency
checks: inverted bounds, unreachable tiers, a legendary quality inside the
ordinary range, catalogs without a legendary item.

Exit codes:
  0 - Rules valid
  1 - Rules compile but have findings, or do not compile
  2 - Command error (file not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	rules, err := LoadRules(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Code == ErrCodeBuildFailed {
			// A rules file that does not compile is a validation failure.
			return outputValidationErrors(formatter, []compiler.ValidationError{{
				Field:   "rules",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    getLineFromLoadError(loadErr),
			}})
		}
		return outputValidateError(formatter, loadErrorCode(err), loadErrorMessage(err), nil)
	}

	formatter.VerboseLog("Compiled %s: %d catalog item(s), strict=%t", path, rules.Catalog.Len(), rules.Catalog.Strict)

	if errs := compiler.Validate(rules); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	return outputValidateSuccess(formatter, rules)
}

// getLineFromLoadError extracts the line number of a load error, if any.
func getLineFromLoadError(err *LoadError) int {
	if err.Pos.IsValid() {
		return err.Pos.Line()
	}
	return 0
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, rules *compiler.Rules) error {
	if formatter.JSON() {
		result := ValidationResult{
			Valid:  true,
			Items:  rules.Catalog.Len(),
			Strict: rules.Catalog.Strict,
		}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Rules valid (%d catalog item(s))\n", rules.Catalog.Len())
	return nil
}

// outputValidateError outputs a single command error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Missing files are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors reports rules findings (exit code 1).
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	failure := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.JSON() {
		first := &CLIError{Code: errs[0].Code, Message: errs[0].Message}
		if err := formatter.Fail(first, ValidationResult{Valid: false, Errors: errs}); err != nil {
			return err
		}
		return failure
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(w, "line %d\n", err.Line)
		}
		fmt.Fprintf(w, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}
	return failure
}
