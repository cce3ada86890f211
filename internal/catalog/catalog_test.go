package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-assistant/internal/models"
)

func TestMatch(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		phrase   string
		wantName string
		wantOK   bool
	}{
		{name: "exact", phrase: "almond milk", wantName: "almond milk", wantOK: true},
		{name: "case and spacing", phrase: "  Almond   MILK ", wantName: "almond milk", wantOK: true},
		{name: "catalog name inside phrase", phrase: "milks", wantName: "milk", wantOK: true},
		{name: "phrase inside catalog name", phrase: "parle-g", wantName: "parle-g biscuits", wantOK: true},
		{name: "declaration order", phrase: "soy milk", wantName: "milk", wantOK: true},
		{name: "no match", phrase: "shampoo", wantOK: false},
		{name: "empty", phrase: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := c.Match(tt.phrase)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, e.Name)
			}
		})
	}
}

func TestMatch_ExactEntry(t *testing.T) {
	e, ok := Default().Match("almond milk")
	require.True(t, ok)
	assert.Equal(t, 120, e.Price)
	assert.Equal(t, "Dairy", e.Category)

	e, ok = Default().Match("milks")
	require.True(t, ok)
	assert.Equal(t, 58, e.Price)
}

func TestMatchAll(t *testing.T) {
	c := Default()

	tests := []struct {
		phrase   string
		expected []string
	}{
		{"milk", []string{"milk", "almond milk"}},
		{"biscuits", []string{"biscuits", "parle-g biscuits"}},
		{"soy milk", []string{"milk", "almond milk"}},
		{"milkshake", []string{"milk", "almond milk"}},
		{"glucose biscuitsx", []string{"biscuits", "parle-g biscuits"}},
		{"toothpaste", []string{"toothpaste"}},
		{"shampoo", nil},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			var got []string
			for _, e := range c.MatchAll(tt.phrase) {
				got = append(got, e.Name)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNew_DuplicatesFirstWins(t *testing.T) {
	c := New([]models.CatalogEntry{
		{Name: "Milk", Price: 58, Category: "Dairy"},
		{Name: "milk", Price: 99, Category: "Dairy"},
		{Name: "   ", Price: 1},
	})

	assert.Equal(t, 2, c.Len())
	e, ok := c.Exact("MILK")
	require.True(t, ok)
	assert.Equal(t, 58, e.Price)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	c := Default()
	entries := c.Entries()
	entries[0].Price = 1

	e, _ := c.Exact("milk")
	assert.Equal(t, 58, e.Price)
	assert.Equal(t, "milk", c.Names()[0])
}

func TestFilterByPrice(t *testing.T) {
	entries := Default().Entries()
	cap50 := 50

	names := func(es []models.CatalogEntry) []string {
		out := []string{}
		for _, e := range es {
			out = append(out, e.Name)
		}
		return out
	}

	assert.Equal(t, []string{"bread", "atta", "biscuits", "parle-g biscuits"},
		names(FilterByPrice(entries, &cap50, nil)))
	assert.Equal(t, []string{"milk", "bread", "banana", "rice", "atta", "biscuits"},
		names(FilterByPrice(entries, nil, &models.PriceRange{Min: 30, Max: 60})))
	assert.Empty(t, FilterByPrice(entries, nil, &models.PriceRange{Min: 60, Max: 30}))
	assert.Equal(t, []string{"milk", "bread", "banana", "rice", "atta", "biscuits"},
		names(FilterByPrice(entries, &cap50, &models.PriceRange{Min: 30, Max: 60})),
		"range takes precedence")
	assert.Len(t, FilterByPrice(entries, nil, nil), len(entries))
}

func TestClosest(t *testing.T) {
	c := Default()

	tests := []struct {
		phrase   string
		expected string
		wantOK   bool
	}{
		{"bred", "bread", true},
		{"toothpast", "toothpaste", true},
		{"tomato", "", false},
		{"egs", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := c.Closest(tt.phrase)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInSeason(t *testing.T) {
	c := Default()

	names := func(m time.Month) []string {
		var out []string
		for _, e := range c.InSeason(m) {
			out = append(out, e.Name)
		}
		return out
	}

	assert.Equal(t, []string{"banana", "mango"}, names(time.May))
	assert.Equal(t, []string{"banana", "apple"}, names(time.October))
	assert.Equal(t, []string{"banana"}, names(time.March))
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"amul butter", "Dairy"},
		{"toor dal", "Grocery"},
		{"cold drink", "Grocery"},
		{"onion", "Produce"},
		{"shampoo", "Personal Care"},
		{"dark chocolate", "Snacks"},
		{"broom", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GuessCategory(tt.name))
		})
	}
}

func TestCategory_PrefersCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, "Bakery", c.Category("bread"))
	assert.Equal(t, "Dairy", c.Category("paneer"))
	assert.Equal(t, CategoryOther, c.Category("broom"))
}

func TestDefaultRules_Fresh(t *testing.T) {
	r := DefaultRules()
	r.Substitutes["milk"] = nil

	assert.Equal(t, []string{"almond milk"}, DefaultRules().Substitutes.Lookup("milk"))
	assert.Equal(t, []string{"butter", "jam"}, DefaultRules().Complements.Lookup("bread"))
	assert.Nil(t, DefaultRules().Complements.Lookup("rice"))
}
