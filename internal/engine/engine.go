package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Engine advances an inventory by one day per Tick.
//
// The engine keeps the caller's slice: items are mutated in place and the
// caller observes the new values through the slice it passed to New.
//
// Thread-safety model:
//   - Tick(): must not be called concurrently on the same Engine
//   - Config and Catalog: read-only, safe to share across engines
//
// INVARIANTS:
//   - Every item carries its catalog category once New returns
//   - Invariant items never change quality or sellIn
//   - Ordinary items stay within [MinimumQuality, MaximumQuality]
type Engine struct {
	items    []inventory.Item
	config   inventory.Config
	catalog  *inventory.Catalog
	selector *Selector
	clock    *Clock
	runIDs   RunIDGenerator
	logger   zerolog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithConfig replaces the default configuration. The config is copied.
func WithConfig(cfg inventory.Config) Option {
	return func(e *Engine) {
		e.config = cfg.Clone()
	}
}

// WithCatalog replaces the default name table.
func WithCatalog(c *inventory.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithLogger sets the logger. Default: zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithRunIDGenerator sets the run ID source. Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// WithClock starts the engine at the clock's current day.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an Engine over items.
//
// Items are classified against the catalog by exact name. A category an item
// already carries must agree with the catalog; a mismatch is an INVALID_ITEM
// error. With a strict catalog an unknown name is an error; otherwise it is
// classified as decay. On error no item is modified.
func New(items []inventory.Item, opts ...Option) (*Engine, error) {
	e := &Engine{
		items:   items,
		config:  inventory.DefaultConfig(),
		catalog: inventory.DefaultCatalog(),
		clock:   NewClock(),
		runIDs:  UUIDv7Generator{},
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	selector, err := NewSelector(e.config)
	if err != nil {
		return nil, err
	}
	e.selector = selector

	categories, _, err := e.resolve()
	if err != nil {
		return nil, err
	}
	e.commit(categories)

	return e, nil
}

// Items returns the collection the engine advances (the caller's slice).
func (e *Engine) Items() []inventory.Item {
	return e.items
}

// Config returns the engine's configuration.
func (e *Engine) Config() inventory.Config {
	return e.config.Clone()
}

// Day returns the number of completed ticks.
func (e *Engine) Day() int64 {
	return e.clock.Current()
}

// Tick advances every item by one day.
func (e *Engine) Tick() error {
	_, err := e.TickReport()
	return err
}

// TickReport advances every item by one day and reports what changed.
//
// On error the report is nil and the day does not advance. Classification
// and selection failures leave every item untouched, category included; an
// invariant violation leaves items before the offending one already advanced.
func (e *Engine) TickReport() (*Report, error) {
	runID := e.runIDs.Generate()
	day := e.clock.Current() + 1
	log := e.logger.With().Str("run_id", runID).Int64("day", day).Logger()

	// Resolve every item first so bad input aborts before any mutation.
	categories, rules, err := e.resolve()
	if err != nil {
		log.Error().Err(err).Msg("classification failed")
		return nil, fmt.Errorf("tick day %d: %w", day, err)
	}
	e.commit(categories)

	report := &Report{
		RunID:   runID,
		Day:     day,
		Changes: make([]Change, 0, len(e.items)),
	}

	for i := range e.items {
		item := &e.items[i]
		before := *item

		if err := rules[i].Apply(item); err != nil {
			log.Error().Err(err).Str("item", item.Name).Int("quality", item.Quality).Msg("rule failed")
			return nil, fmt.Errorf("tick day %d: %w", day, err)
		}
		if err := e.checkBounds(item); err != nil {
			log.Error().Err(err).Str("item", item.Name).Msg("quality out of bounds")
			return nil, fmt.Errorf("tick day %d: %w", day, err)
		}

		if item.Category != inventory.CategoryInvariant {
			item.SellIn--
		}

		change := Change{
			Name:          item.Name,
			Category:      item.Category,
			Rule:          rules[i].Name(),
			SellInBefore:  before.SellIn,
			SellInAfter:   item.SellIn,
			QualityBefore: before.Quality,
			QualityAfter:  item.Quality,
		}
		report.Changes = append(report.Changes, change)

		log.Trace().
			Str("item", item.Name).
			Str("rule", change.Rule).
			Int("quality_delta", change.QualityDelta()).
			Int("sell_in", item.SellIn).
			Msg("item advanced")
	}

	e.clock.Next()
	log.Debug().Int("items", len(e.items)).Msg("tick complete")
	return report, nil
}

// resolve classifies every item and selects its rule without modifying the
// collection.
func (e *Engine) resolve() ([]inventory.Category, []QualityRule, error) {
	categories := make([]inventory.Category, len(e.items))
	rules := make([]QualityRule, len(e.items))
	for i := range e.items {
		classified := e.items[i]
		category, err := e.classify(&classified)
		if err != nil {
			return nil, nil, err
		}
		classified.Category = category

		rule, err := e.selector.Select(&classified)
		if err != nil {
			return nil, nil, err
		}
		categories[i] = category
		rules[i] = rule
	}
	return categories, rules, nil
}

// commit stores resolved categories on the items.
func (e *Engine) commit(categories []inventory.Category) {
	for i := range e.items {
		e.items[i].Category = categories[i]
	}
}

// classify returns the catalog category for item. The item's own category,
// when set, is only checked against it.
func (e *Engine) classify(item *inventory.Item) (inventory.Category, error) {
	category, known := e.catalog.Classify(item.Name)
	if !known {
		if e.catalog.Strict {
			suggestion, _ := e.catalog.Suggest(item.Name)
			return inventory.CategoryUnclassified, NewUnknownItemError(item.Name, suggestion)
		}
		e.logger.Debug().Str("item", item.Name).Msg("unknown item, classified as decay")
	}

	if item.Category != inventory.CategoryUnclassified && item.Category != category {
		return inventory.CategoryUnclassified, NewCategoryMismatchError(item.Name, item.Category, category)
	}
	return category, nil
}

// checkBounds verifies the standing quality invariant after a rule ran.
func (e *Engine) checkBounds(item *inventory.Item) error {
	if item.Category == inventory.CategoryInvariant {
		if item.Quality != e.config.LegendaryQuality {
			return NewInvariantError(item.Name, item.Quality, e.config.LegendaryQuality)
		}
		return nil
	}
	if item.Quality < e.config.MinimumQuality || item.Quality > e.config.MaximumQuality {
		return NewOutOfBoundsError(item.Name, item.Quality, e.config.MinimumQuality, e.config.MaximumQuality)
	}
	return nil
}
