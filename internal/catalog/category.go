package catalog

import (
	"regexp"
	"strings"
)

const CategoryOther = "Other"

type categoryRule struct {
	category string
	pattern  *regexp.Regexp
}

func keywordPattern(words ...string) *regexp.Regexp {
	alts := make([]string, len(words))
	for i, w := range words {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// Evaluated in order; the first matching category wins.
var categoryRules = []categoryRule{
	{"Dairy", keywordPattern("milk", "paneer", "egg", "eggs", "curd", "butter", "ghee", "mayonnaise", "cheese", "doodh", "dudh", "dahi")},
	{"Grocery", keywordPattern("rice", "atta", "dal", "flour", "pulses", "jam", "masala", "coffee", "tea", "sugar", "salt", "oil", "cold drink", "soft drink", "drink", "ice cream", "chawal")},
	{"Produce", keywordPattern("apple", "banana", "mango", "orange", "potato", "tomato", "onion", "strawberry", "lemon")},
	{"Personal Care", keywordPattern("toothpaste", "toothbrush", "soap", "shampoo", "face cream", "towel", "facewash")},
	{"Snacks", keywordPattern("biscuit", "biscuits", "cookie", "cookies", "chocolate", "chocolate spread", "chips", "kurkure", "namkeen", "dry fruit", "roasted nuts")},
}

// GuessCategory classifies an item name by keyword.
func GuessCategory(name string) string {
	n := key(name)
	for _, r := range categoryRules {
		if r.pattern.MatchString(n) {
			return r.category
		}
	}
	return CategoryOther
}

// Category returns the catalog category of the matching entry, falling back
// to GuessCategory for unknown items.
func (c *Catalog) Category(name string) string {
	if e, ok := c.Match(name); ok && e.Category != "" {
		return e.Category
	}
	return GuessCategory(name)
}
