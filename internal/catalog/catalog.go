// Package catalog holds the fixed product list and resolves item phrases
// against it.
package catalog

import (
	"strings"
	"time"

	"grocery-assistant/internal/models"
)

// Catalog is read-only once built and safe for concurrent use.
type Catalog struct {
	entries []models.CatalogEntry
	byName  map[string]int
}

// New copies entries, canonicalising names. The first of several entries
// sharing a name wins exact lookups.
func New(entries []models.CatalogEntry) *Catalog {
	c := &Catalog{
		entries: make([]models.CatalogEntry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.Name = key(e.Name)
		if e.Name == "" {
			continue
		}
		if e.Seasonal != nil {
			e.Seasonal = append([]time.Month(nil), e.Seasonal...)
		}
		if _, dup := c.byName[e.Name]; !dup {
			c.byName[e.Name] = len(c.entries)
		}
		c.entries = append(c.entries, e)
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New([]models.CatalogEntry{
		{Name: "milk", Price: 58, Category: "Dairy"},
		{Name: "almond milk", Price: 120, Category: "Dairy"},
		{Name: "bread", Price: 45, Category: "Bakery"},
		{Name: "eggs", Price: 70, Category: "Dairy"},
		{Name: "banana", Price: 60, Category: "Produce", Seasonal: allMonths()},
		{Name: "mango", Price: 120, Category: "Produce", Seasonal: []time.Month{
			time.April, time.May, time.June, time.July,
		}},
		{Name: "apple", Price: 160, Category: "Produce", Seasonal: []time.Month{
			time.September, time.October, time.November, time.December, time.January,
		}},
		{Name: "rice", Price: 60, Category: "Grocery"},
		{Name: "atta", Price: 50, Category: "Grocery"},
		{Name: "toothpaste", Price: 95, Category: "Personal Care"},
		{Name: "biscuits", Price: 30, Category: "Snacks"},
		{Name: "parle-g biscuits", Price: 10, Category: "Snacks"},
	})
}

func allMonths() []time.Month {
	months := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, m)
	}
	return months
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog) Entries() []models.CatalogEntry {
	return append([]models.CatalogEntry(nil), c.entries...)
}

// Names returns entry names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// InSeason returns the seasonal entries available in month.
func (c *Catalog) InSeason(month time.Month) []models.CatalogEntry {
	var out []models.CatalogEntry
	for _, e := range c.entries {
		if e.InSeason(month) {
			out = append(out, e)
		}
	}
	return out
}

// key lowercases and collapses whitespace.
func key(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
