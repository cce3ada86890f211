package models

import "time"

// CatalogEntry is one purchasable item. Name is canonical lowercase.
type CatalogEntry struct {
	Name     string       `json:"name"`
	Price    int          `json:"price"`
	Category string       `json:"category"`
	Seasonal []time.Month `json:"seasonal,omitempty"`
}

// InSeason reports whether the entry is seasonal and available in month.
func (e CatalogEntry) InSeason(month time.Month) bool {
	for _, m := range e.Seasonal {
		if m == month {
			return true
		}
	}
	return false
}

// Rules maps an item name to an ordered list of related item names.
type Rules map[string][]string

// Lookup returns the related names for item, or nil.
func (r Rules) Lookup(item string) []string {
	return r[item]
}
