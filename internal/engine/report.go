package engine

import "github.com/roach88/gildedrose/internal/inventory"

// Report describes one completed tick.
type Report struct {
	RunID   string   `json:"run_id" yaml:"run_id"`
	Day     int64    `json:"day" yaml:"day"`
	Changes []Change `json:"changes" yaml:"changes"`
}

// Change records what a tick did to one item.
type Change struct {
	Name          string             `json:"name" yaml:"name"`
	Category      inventory.Category `json:"category" yaml:"category"`
	Rule          string             `json:"rule" yaml:"rule"`
	SellInBefore  int                `json:"sell_in_before" yaml:"sell_in_before"`
	SellInAfter   int                `json:"sell_in_after" yaml:"sell_in_after"`
	QualityBefore int                `json:"quality_before" yaml:"quality_before"`
	QualityAfter  int                `json:"quality_after" yaml:"quality_after"`
}

// QualityDelta returns the quality change applied by the tick.
func (c Change) QualityDelta() int {
	return c.QualityAfter - c.QualityBefore
}
