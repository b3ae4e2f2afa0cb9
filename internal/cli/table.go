package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/inventory"
)

// palette holds the styles for text tables. The renderer detects the color
// profile of the writer, so buffers and pipes get plain text.
type palette struct {
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	up     lipgloss.Style
	down   lipgloss.Style
	muted  lipgloss.Style
}

func newPalette(w io.Writer, noColor bool) palette {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Padding(0, 1)
	p := palette{
		header: cell.Bold(true),
		cell:   cell,
		border: r.NewStyle(),
		up:     cell,
		down:   cell,
		muted:  cell,
	}
	if noColor {
		return p
	}
	p.border = p.border.Foreground(lipgloss.Color("240"))
	p.up = cell.Foreground(lipgloss.Color("2"))
	p.down = cell.Foreground(lipgloss.Color("1"))
	p.muted = cell.Foreground(lipgloss.Color("244"))
	return p
}

// renderChanges renders one tick's changes, one row per item.
func renderChanges(w io.Writer, changes []engine.Change, noColor bool) string {
	p := newPalette(w, noColor)

	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			c.Name,
			c.Category.String(),
			strconv.Itoa(c.SellInAfter),
			strconv.Itoa(c.QualityAfter),
			formatDelta(c.QualityDelta()),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers("ITEM", "CATEGORY", "SELL IN", "QUALITY", "CHANGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			if col != 4 || row < 0 || row >= len(changes) {
				return p.cell
			}
			switch delta := changes[row].QualityDelta(); {
			case delta > 0:
				return p.up
			case delta < 0:
				return p.down
			default:
				return p.muted
			}
		})
	return t.String()
}

// renderCatalogTable renders the name table.
func renderCatalogTable(w io.Writer, entries []inventory.CatalogEntry, noColor bool) string {
	p := newPalette(w, noColor)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, e.Category.String()})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers("ITEM", "CATEGORY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		})
	return t.String()
}

// renderConfigTable renders the configuration as key/value rows.
func renderConfigTable(w io.Writer, cfg inventory.Config, noColor bool) string {
	p := newPalette(w, noColor)

	rows := [][]string{
		{"minimum quality", strconv.Itoa(cfg.MinimumQuality)},
		{"maximum quality", strconv.Itoa(cfg.MaximumQuality)},
		{"legendary quality", strconv.Itoa(cfg.LegendaryQuality)},
		{"normal modifier", strconv.Itoa(cfg.NormalModifier)},
		{"conjured modifier", strconv.Itoa(cfg.ConjuredModifier)},
	}
	for _, m := range cfg.TieredModifiers {
		rows = append(rows, []string{fmt.Sprintf("tier <= %d days", m.DaysLeft), formatDelta(m.Amount)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers("SETTING", "VALUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			if col == 0 {
				return p.muted
			}
			return p.cell
		})
	return t.String()
}

func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
