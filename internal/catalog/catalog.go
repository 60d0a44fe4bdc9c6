package catalog

import (
	"fmt"
	"sort"
)

// Item is a purchasable product definition. Price is in whole (major)
// currency units; PriceMinor converts it for wire amounts. Items are
// configuration, never persisted — orders reference them by ID only.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       int64
}

// PriceMinor returns the item price in minor currency units (e.g. kopecks).
func (i Item) PriceMinor() int64 {
	return i.Price * 100
}

// Catalog is an immutable, read-only product list loaded at process start.
// It needs no synchronization: once built it is never mutated.
type Catalog struct {
	items []Item
	byID  map[int64]Item
}

// New builds a catalog from the provided items, validating that every item
// has a positive unique id, a name, and a positive price.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog: no items provided")
	}
	byID := make(map[int64]Item, len(items))
	ordered := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID <= 0 {
			return nil, fmt.Errorf("catalog: item %q has invalid id %d", it.Name, it.ID)
		}
		if it.Name == "" {
			return nil, fmt.Errorf("catalog: item %d has empty name", it.ID)
		}
		if it.Price <= 0 {
			return nil, fmt.Errorf("catalog: item %d has invalid price %d", it.ID, it.Price)
		}
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate item id %d", it.ID)
		}
		byID[it.ID] = it
		ordered = append(ordered, it)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return &Catalog{items: ordered, byID: byID}, nil
}

// Find resolves an item by id.
func (c *Catalog) Find(id int64) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Items returns the items ordered by id. Callers must not mutate the slice.
func (c *Catalog) Items() []Item {
	return c.items
}

// Len reports the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// FormatMajor renders an amount of minor units as a major-unit decimal
// string, e.g. 10000 -> "100.00". Money stays in minor units everywhere
// else; this is a presentation-boundary helper only.
func FormatMajor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
