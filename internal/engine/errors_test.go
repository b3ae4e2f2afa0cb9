package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeError_Error(t *testing.T) {
	err := NewInvariantError("Sulfuras, Hand of Ragnaros", 79, 80)
	assert.Equal(t,
		`INVARIANT_VIOLATION: invalid legendary item quality 79, expected 80 (item="Sulfuras, Hand of Ragnaros")`,
		err.Error())
	assert.Equal(t, 79, err.Quality)
	assert.Equal(t, "80", err.Details["expected"])

	err = NewInvalidItemError("nil item")
	assert.Equal(t, "INVALID_ITEM: nil item", err.Error())
}

func TestRuntimeError_PredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("tick day 3: %w", NewInvariantError("x", 1, 80))

	assert.True(t, IsInvariantViolation(wrapped))
	assert.False(t, IsInvalidItem(wrapped))
	assert.False(t, IsUnknownItem(wrapped))
	assert.Equal(t, ErrCodeInvariantViolation, CodeOf(wrapped))

	assert.True(t, IsInvalidItem(fmt.Errorf("select: %w", NewInvalidItemError("nil"))))
	assert.True(t, IsUnknownItem(NewUnknownItemError("Aged Bri", "Aged Brie")))
	assert.Equal(t, RuntimeErrorCode(""), CodeOf(errors.New("plain")))
}

func TestNewUnknownItemError_Suggestion(t *testing.T) {
	err := NewUnknownItemError("Aged Bri", "Aged Brie")
	assert.Contains(t, err.Error(), `did you mean "Aged Brie"?`)
	assert.Equal(t, "Aged Brie", err.Details["suggestion"])

	err = NewUnknownItemError("Mystery", "")
	assert.Equal(t, `UNKNOWN_ITEM: item is not in the catalog (item="Mystery")`, err.Error())
}

func TestNewOutOfBoundsError(t *testing.T) {
	err := NewOutOfBoundsError("Widget", 55, 0, 50)
	assert.Equal(t, ErrCodeOutOfBounds, err.Code)
	assert.Contains(t, err.Error(), "quality 55 outside [0, 50]")
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(errors.New("minimum_quality 60 exceeds maximum_quality 50"))
	assert.Equal(t, "INVALID_CONFIG: minimum_quality 60 exceeds maximum_quality 50", err.Error())
}
