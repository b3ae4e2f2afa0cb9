package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/gildedrose/internal/inventory"
)

// RuntimeError represents an error detected while advancing the inventory.
//
// Runtime errors include:
//   - Invalid item: a rule was requested for an absent item, or an item's
//     category disagrees with the catalog
//   - Invariant violation: a legendary item does not carry the legendary quality
//   - Unknown item: a strict catalog does not recognize an item name
//   - Out of bounds: a rule left an ordinary item outside the quality bounds
//   - Invalid config: the configuration failed validation
//
// RuntimeError includes structured fields for diagnostics.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Item is the offending item name, if any.
	Item string

	// Quality is the offending quality value, if relevant.
	Quality int

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidItem indicates a nil item was handed to the selector.
	ErrCodeInvalidItem RuntimeErrorCode = "INVALID_ITEM"

	// ErrCodeInvariantViolation indicates a legendary item with the wrong quality.
	ErrCodeInvariantViolation RuntimeErrorCode = "INVARIANT_VIOLATION"

	// ErrCodeUnknownItem indicates a strict catalog rejected an item name.
	ErrCodeUnknownItem RuntimeErrorCode = "UNKNOWN_ITEM"

	// ErrCodeOutOfBounds indicates an ordinary item left the quality bounds.
	ErrCodeOutOfBounds RuntimeErrorCode = "QUALITY_OUT_OF_BOUNDS"

	// ErrCodeInvalidConfig indicates the configuration failed validation.
	ErrCodeInvalidConfig RuntimeErrorCode = "INVALID_CONFIG"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("%s: %s (item=%q)", e.Code, e.Message, e.Item)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the RuntimeErrorCode carried by err, or "" if err is not a
// RuntimeError. Uses errors.As to handle wrapped errors.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsInvalidItem returns true if the error is an invalid item error.
func IsInvalidItem(err error) bool {
	return CodeOf(err) == ErrCodeInvalidItem
}

// IsInvariantViolation returns true if the error is an invariant violation.
func IsInvariantViolation(err error) bool {
	return CodeOf(err) == ErrCodeInvariantViolation
}

// IsUnknownItem returns true if a strict catalog rejected the item.
func IsUnknownItem(err error) bool {
	return CodeOf(err) == ErrCodeUnknownItem
}

// NewInvalidItemError creates a RuntimeError for an absent item.
func NewInvalidItemError(reason string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidItem,
		Message: reason,
	}
}

// NewInvariantError creates a RuntimeError for a legendary item whose quality
// differs from the fixed legendary quality.
func NewInvariantError(name string, quality, expected int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvariantViolation,
		Message: fmt.Sprintf("invalid legendary item quality %d, expected %d", quality, expected),
		Item:    name,
		Quality: quality,
		Details: map[string]string{
			"quality":  fmt.Sprintf("%d", quality),
			"expected": fmt.Sprintf("%d", expected),
		},
	}
}

// NewCategoryMismatchError creates a RuntimeError for an item whose supplied
// category disagrees with the catalog.
func NewCategoryMismatchError(name string, got, want inventory.Category) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidItem,
		Message: fmt.Sprintf("item is labelled %s, the catalog classifies it as %s", got, want),
		Item:    name,
		Details: map[string]string{
			"category": got.String(),
			"expected": want.String(),
		},
	}
}

// NewUnknownItemError creates a RuntimeError for a name a strict catalog does
// not recognize. suggestion may be empty.
func NewUnknownItemError(name, suggestion string) *RuntimeError {
	msg := "item is not in the catalog"
	details := map[string]string{}
	if suggestion != "" {
		msg = fmt.Sprintf("item is not in the catalog, did you mean %q?", suggestion)
		details["suggestion"] = suggestion
	}
	return &RuntimeError{
		Code:    ErrCodeUnknownItem,
		Message: msg,
		Item:    name,
		Details: details,
	}
}

// NewOutOfBoundsError creates a RuntimeError for an ordinary item whose
// quality left [lower, upper] after its rule was applied.
func NewOutOfBoundsError(name string, quality, lower, upper int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeOutOfBounds,
		Message: fmt.Sprintf("quality %d outside [%d, %d]", quality, lower, upper),
		Item:    name,
		Quality: quality,
		Details: map[string]string{
			"lower": fmt.Sprintf("%d", lower),
			"upper": fmt.Sprintf("%d", upper),
		},
	}
}

// NewConfigError wraps a configuration validation failure.
func NewConfigError(err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidConfig,
		Message: err.Error(),
	}
}
