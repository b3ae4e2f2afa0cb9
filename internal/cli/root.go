package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  int
	Format   string // "json" | "text"
	Catalog  string // rules file; empty selects the reference rules
	LogLevel string
	NoColor  bool

	// Logger is built by the root command before any subcommand runs.
	Logger zerolog.Logger
}

// EnvConfig holds the defaults read from the environment. Flags override it.
type EnvConfig struct {
	Catalog  string `env:"GILDEDROSE_CATALOG"`
	Format   string `env:"GILDEDROSE_FORMAT"    envDefault:"text"`
	LogLevel string `env:"GILDEDROSE_LOG_LEVEL"`
	NoColor  bool   `env:"GILDEDROSE_NO_COLOR"`
}

// LoadEnv parses the GILDEDROSE_* environment variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gildedrose CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Logger: zerolog.Nop()}

	envCfg, envErr := LoadEnv()
	if envErr != nil {
		envCfg = EnvConfig{Format: "text"}
	}

	cmd := &cobra.Command{
		Use:   "gildedrose",
		Short: "Gilded Rose inventory tick engine",
		Long: `Advance a Gilded Rose inventory by one day at a time.

Items are classified by name against a catalog, and each category has its
own quality rule. Rules and the catalog come from a CUE rules file; without
one the reference rules apply.

Environment:
  GILDEDROSE_CATALOG    default rules file (--catalog)
  GILDEDROSE_FORMAT     default output format (--format)
  GILDEDROSE_LOG_LEVEL  log level, overrides -v
  GILDEDROSE_NO_COLOR   disable colors`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return NewExitError(ExitCommandError, envErr.Error())
			}
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			logger, err := logging.Setup(cmd.ErrOrStderr(), logging.Options{
				Verbosity: opts.Verbose,
				Level:     opts.LogLevel,
				NoColor:   opts.NoColor,
			})
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			opts.Logger = logger
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v", "verbose output (repeat for more)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", envCfg.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", envCfg.Catalog, "CUE rules file (default: reference rules)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", envCfg.LogLevel, "log level (overrides -v)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", envCfg.NoColor, "disable colors")

	// Add subcommands
	cmd.AddCommand(NewTickCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds the output formatter for a command.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose > 0,
	}
}

// Execute runs the root command with args and returns the process exit code.
// Errors are reported on stderr; commands have already written any structured
// output to stdout.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "gildedrose: %v\n", err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		// Cobra usage errors (unknown flag, wrong argument count)
		return ExitCommandError
	}
	return ExitSuccess
}
