package testutil

import "github.com/roach88/gildedrose/internal/inventory"

// Item builds an unclassified item.
func Item(name string, sellIn, quality int) inventory.Item {
	return inventory.Item{Name: name, SellIn: sellIn, Quality: quality}
}

// SampleInventory returns one item per reference catalog name, unclassified,
// with values that keep every item in bounds for at least ten ticks.
func SampleInventory() []inventory.Item {
	return []inventory.Item{
		Item(inventory.DexterityVest, 10, 20),
		Item(inventory.AgedBrie, 2, 0),
		Item(inventory.ElixirMongoose, 5, 7),
		Item(inventory.Sulfuras, 0, inventory.DefaultLegendaryQuality),
		Item(inventory.Sulfuras, -1, inventory.DefaultLegendaryQuality),
		Item(inventory.BackstagePasses, 15, 20),
		Item(inventory.BackstagePasses, 10, 49),
		Item(inventory.BackstagePasses, 5, 49),
		Item(inventory.ConjuredManaCake, 3, 6),
	}
}
