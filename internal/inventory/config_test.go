package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQualityModifier(t *testing.T) {
	m, err := NewQualityModifier(10, 2)
	require.NoError(t, err)
	assert.Equal(t, QualityModifier{DaysLeft: 10, Amount: 2}, m)

	// Direction belongs to the rule; the magnitude is stored unsigned.
	m, err = NewQualityModifier(5, -3)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Amount)

	m, err = NewQualityModifier(0, 0)
	require.NoError(t, err)
	assert.Equal(t, QualityModifier{}, m)

	_, err = NewQualityModifier(-1, 2)
	require.ErrorIs(t, err, ErrNegativeDaysLeft)
}

func TestMustQualityModifier_Panics(t *testing.T) {
	assert.Panics(t, func() { MustQualityModifier(-5, 1) })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.MinimumQuality)
	assert.Equal(t, 50, cfg.MaximumQuality)
	assert.Equal(t, 80, cfg.LegendaryQuality)
	assert.Equal(t, 1, cfg.NormalModifier)
	assert.Equal(t, 2, cfg.ConjuredModifier)
	assert.Equal(t, []QualityModifier{{DaysLeft: 10, Amount: 2}, {DaysLeft: 5, Amount: 3}}, cfg.TieredModifiers)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_CloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.TieredModifiers[0].Amount = 99

	assert.Equal(t, 2, cfg.TieredModifiers[0].Amount)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "min above max",
			mutate:  func(c *Config) { c.MinimumQuality = 60 },
			wantErr: "minimum_quality 60 exceeds maximum_quality 50",
		},
		{
			name:    "negative normal modifier",
			mutate:  func(c *Config) { c.NormalModifier = -1 },
			wantErr: "normal_modifier must be non-negative",
		},
		{
			name:    "negative conjured modifier",
			mutate:  func(c *Config) { c.ConjuredModifier = -2 },
			wantErr: "conjured_modifier must be non-negative",
		},
		{
			name:    "negative threshold",
			mutate:  func(c *Config) { c.TieredModifiers = append(c.TieredModifiers, QualityModifier{DaysLeft: -1, Amount: 1}) },
			wantErr: "tiered_modifiers[2]",
		},
		{
			name:    "negative tier amount",
			mutate:  func(c *Config) { c.TieredModifiers[1].Amount = -3 },
			wantErr: "tiered_modifiers[1]: amount must be non-negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinimumQuality = 100
	cfg.NormalModifier = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum_quality")
	assert.Contains(t, err.Error(), "normal_modifier")
}
