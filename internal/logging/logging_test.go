package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
		{"negative treated as default", -1, zerolog.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, LevelFor(tt.verbosity))
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Verbosity: 1, JSON: true})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("item", "Aged Brie").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"item":"Aged Brie"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestNewLevelOverridesVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Verbosity: 0, Level: "DEBUG", JSON: true})
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	logger.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), `"caller"`)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{NoColor: true})
	require.NoError(t, err)

	logger.Warn().Str("item", "Sulfuras").Msg("legendary item")
	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "legendary item")
	assert.Contains(t, out, "item=Sulfuras")
	assert.NotContains(t, out, "\x1b[")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{JSON: true})
	require.NoError(t, err)

	componentLogger := Component(logger, "engine")
	componentLogger.Warn().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"engine"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Verbosity: 2, JSON: true})
	require.NoError(t, err)

	done := LogOperationStart(logger, "tick")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"operation":"tick"`)
}

func TestSetupInstallsGlobal(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	var buf bytes.Buffer
	logger, err := Setup(&buf, Options{Verbosity: 2, JSON: true})
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "Logger initialized")

	log.Info().Msg("through the global")
	assert.Contains(t, buf.String(), "through the global")
}
