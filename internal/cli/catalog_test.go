package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/inventory"
)

// catalogResponse mirrors CLIResponse with a typed payload.
type catalogResponse struct {
	Status string        `json:"status"`
	Data   CatalogResult `json:"data"`
}

func TestCatalogReferenceText(t *testing.T) {
	out, _, err := executeRoot(t, "--no-color", "catalog")
	require.NoError(t, err)

	assert.Contains(t, out, "Rules: reference (lenient: unknown names decay)")
	assert.Contains(t, out, "maximum quality")
	assert.Contains(t, out, "tier <= 10 days")
	assert.Contains(t, out, "Sulfuras, Hand of Ragnaros")
	assert.Contains(t, out, "invariant")
	assert.Contains(t, out, "Conjured Mana Cake")
}

func TestCatalogReferenceJSON(t *testing.T) {
	out, _, err := executeRoot(t, "--format", "json", "catalog")
	require.NoError(t, err)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "reference", resp.Data.Source)
	assert.False(t, resp.Data.Strict)
	assert.Equal(t, inventory.DefaultConfig(), resp.Data.Config)
	assert.Equal(t, inventory.DefaultCatalog().Entries(), resp.Data.Entries)
}

func TestCatalogCustomRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", strictRules)

	out, _, err := executeRoot(t, "--format", "json", "catalog", "--catalog", path)
	require.NoError(t, err)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, path, resp.Data.Source)
	assert.True(t, resp.Data.Strict)
	assert.Equal(t, []inventory.CatalogEntry{
		{Name: "Aged Brie", Category: inventory.CategoryGrowth},
		{Name: "Sulfuras, Hand of Ragnaros", Category: inventory.CategoryInvariant},
	}, resp.Data.Entries)
}

func TestCatalogStrictText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.cue", strictRules)

	out, _, err := executeRoot(t, "--no-color", "catalog", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "strict: unknown names are rejected")
}

func TestCatalogMissingRules(t *testing.T) {
	out, _, err := executeRoot(t, "catalog", "--catalog", "/nonexistent/rules.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestCatalogRejectsArguments(t *testing.T) {
	_, _, err := executeRoot(t, "catalog", "extra")
	require.Error(t, err)
}
