package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/gildedrose/internal/engine"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // a tick aborted, rules failed validation or scenarios failed
	ExitCommandError = 2 // bad arguments, missing or unreadable files
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ExitError carries the process exit code for a command failure.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError returns an ExitError without an underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError wrapping err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, or ExitFailure for any
// other error.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return ExitFailure
	}
	return exitErr.Code
}

// CLIResponse is the envelope of every JSON document written to stdout.
type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
	RunID  string      `json:"run_id,omitempty"`
}

// CLIError describes a failure inside a CLIResponse. Code is either a
// command code (E001...), a rules finding (E1xx) or an engine runtime code.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// runtimeCLIError converts an engine failure into a CLIError, keeping the
// runtime code and its details.
func runtimeCLIError(err error) *CLIError {
	cliErr := &CLIError{Code: string(engine.CodeOf(err)), Message: err.Error()}
	if cliErr.Code == "" {
		cliErr.Code = ErrCodeGeneric
	}

	var runtimeErr *engine.RuntimeError
	if errors.As(err, &runtimeErr) && len(runtimeErr.Details) > 0 {
		cliErr.Details = runtimeErr.Details
	}
	return cliErr
}

// writeJSON writes resp as indented JSON.
func writeJSON(w io.Writer, resp CLIResponse) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

// OutputFormatter writes command results as text or JSON.
//
// Diagnostics go to ErrWriter so that stdout stays machine readable.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// JSON reports whether the formatter writes JSON.
func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Success writes data. Text output prints data with fmt.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.JSON() {
		return writeJSON(f.Writer, CLIResponse{Status: StatusOK, Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error writes a single failure.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	return f.Fail(&CLIError{Code: code, Message: message, Details: details}, nil)
}

// Fail writes cliErr, with an optional payload in JSON mode.
func (f *OutputFormatter) Fail(cliErr *CLIError, data interface{}) error {
	if f.JSON() {
		return writeJSON(f.Writer, CLIResponse{Status: StatusError, Data: data, Error: cliErr})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", cliErr.Code, cliErr.Message)
	if f.Verbose && cliErr.Details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", cliErr.Details)
	}
	return nil
}

// VerboseLog writes a diagnostic line when verbose output is on.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if f.Verbose {
		fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
	}
}

// GetErrWriter returns the diagnostic writer, falling back to Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter == nil {
		return f.Writer
	}
	return f.ErrWriter
}
