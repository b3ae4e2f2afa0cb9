package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/gildedrose/internal/compiler"
	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/stock"
)

// LoadError represents an error that occurred while loading a rules or
// inventory file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadRules compiles the rules file at path. An empty path selects the
// embedded reference rules.
func LoadRules(path string) (*compiler.Rules, error) {
	if path == "" {
		return compiler.Default(), nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("rules file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing rules file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	rules, err := compiler.CompileFile(path)
	if err != nil {
		return nil, convertCompileError(err)
	}
	return rules, nil
}

// LoadInventory reads an inventory file; the format follows the extension.
func LoadInventory(path string) ([]inventory.Item, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("inventory file not found: %s", path)}
	}

	items, err := stock.Load(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}
	return items, nil
}

// convertCompileError converts a compiler error to a LoadError.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeBuildFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
}

// Error codes for CLI operations.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeLoadFailed  = "E004" // Inventory file could not be decoded
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Rules file did not compile
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeTestFailed  = "E008" // One or more scenarios failed
)

// loadErrorCode returns the code carried by a LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}

// loadErrorMessage returns the message carried by a LoadError, or err's text.
func loadErrorMessage(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		if loadErr.Pos.IsValid() {
			return fmt.Sprintf("%s:%d:%d: %s", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column(), loadErr.Message)
		}
		return loadErr.Message
	}
	return err.Error()
}
