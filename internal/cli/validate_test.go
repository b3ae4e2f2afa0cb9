package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/compiler"
)

// validateResponse mirrors CLIResponse with a typed payload.
type validateResponse struct {
	Status string           `json:"status"`
	Data   ValidationResult `json:"data"`
	Error  *CLIError        `json:"error"`
}

func TestValidateValidRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", strictRules)

	out, _, err := executeRoot(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Rules valid (2 catalog item(s))")
}

func TestValidateValidRulesJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", strictRules)

	out, _, err := executeRoot(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp validateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.True(t, resp.Data.Strict)
	assert.Equal(t, 2, resp.Data.Items)
}

func TestValidateReferenceRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, compiler.DefaultFilename, string(compiler.DefaultSource()))

	out, _, err := executeRoot(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Rules valid (6 catalog item(s))")
}

func TestValidateNonExistentFile(t *testing.T) {
	out, _, err := executeRoot(t, "validate", filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
	assert.Contains(t, out, "rules file not found")
}

func TestValidateCompileError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", "normal_modifier: 1\nmaximum_quality: 50 50\n")

	out, _, err := executeRoot(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "line 2")
	assert.Contains(t, out, ErrCodeBuildFailed)
}

func TestValidateFindings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", `legendary_quality: 40
tiered_modifiers: [
	{days_left: 10, amount: 2},
	{days_left: 10, amount: 3},
]
`)

	out, _, err := executeRoot(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed with 2 error(s)")
	assert.Contains(t, out, compiler.ErrLegendaryInRange)
	assert.Contains(t, out, compiler.ErrUnreachableTier)
	assert.Contains(t, out, "tiered_modifiers[1]")
}

func TestValidateFindingsJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", `strict: true
items: {}
`)

	out, _, err := executeRoot(t, "--format", "json", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp validateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, compiler.ErrEmptyStrictCatalog, resp.Data.Errors[0].Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, compiler.ErrEmptyStrictCatalog, resp.Error.Code)
}

func TestValidateVerboseOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", strictRules)

	out, errOut, err := executeRoot(t, "-v", "--format", "json", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "2 catalog item(s), strict=true")

	var resp validateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "verbose output must stay off stdout")
}
