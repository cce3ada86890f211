package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"grocery-assistant/internal/models"
)

// Exact returns the entry whose name equals phrase, ignoring case and
// surrounding or repeated whitespace.
func (c *Catalog) Exact(phrase string) (models.CatalogEntry, bool) {
	if i, ok := c.byName[key(phrase)]; ok {
		return c.entries[i], true
	}
	return models.CatalogEntry{}, false
}

// Match returns the exact entry for phrase, else the first entry whose name
// contains the phrase or is contained in it.
func (c *Catalog) Match(phrase string) (models.CatalogEntry, bool) {
	q := key(phrase)
	if q == "" {
		return models.CatalogEntry{}, false
	}
	if e, ok := c.Exact(q); ok {
		return e, true
	}
	for _, e := range c.entries {
		if strings.Contains(q, e.Name) || strings.Contains(e.Name, q) {
			return e, true
		}
	}
	return models.CatalogEntry{}, false
}

// MatchAll returns every entry that matches phrase exactly, by substring in
// either direction, or that has any word of its name inside the phrase.
func (c *Catalog) MatchAll(phrase string) []models.CatalogEntry {
	q := key(phrase)
	if q == "" {
		return nil
	}

	var out []models.CatalogEntry
	for _, e := range c.entries {
		if e.Name == q || strings.Contains(q, e.Name) || strings.Contains(e.Name, q) || containsWordOf(q, e.Name) {
			out = append(out, e)
		}
	}
	return out
}

// containsWordOf reports whether phrase contains any word of name, also
// inside a longer word ("milkshake" contains "milk").
func containsWordOf(phrase, name string) bool {
	for _, w := range strings.Fields(name) {
		if strings.Contains(phrase, w) {
			return true
		}
	}
	return false
}

// Closest suggests the entry name nearest to phrase by edit distance when
// the phrase looks like a misspelling of it.
func (c *Catalog) Closest(phrase string) (string, bool) {
	q := key(phrase)
	if q == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, e := range c.entries {
		d := fuzzy.LevenshteinDistance(q, e.Name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	if bestDist < 0 || bestDist > maxTypos(q) {
		return "", false
	}
	return best, true
}

func maxTypos(q string) int {
	n := utf8.RuneCountInString(q)
	switch {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}

// FilterByPrice keeps entries inside priceRange when given, else at or
// under priceCap when given. With neither filter entries are returned as is.
func FilterByPrice(entries []models.CatalogEntry, priceCap *int, priceRange *models.PriceRange) []models.CatalogEntry {
	if priceRange == nil && priceCap == nil {
		return entries
	}
	out := []models.CatalogEntry{}
	for _, e := range entries {
		switch {
		case priceRange != nil:
			if priceRange.Contains(e.Price) {
				out = append(out, e)
			}
		case e.Price <= *priceCap:
			out = append(out, e)
		}
	}
	return out
}
