package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/models"
)

func TestLocalFallback(t *testing.T) {
	cat := catalog.Default()
	subs := catalog.DefaultRules().Substitutes

	tests := []struct {
		name     string
		history  []string
		expected []string
	}{
		{
			name:     "empty history lists catalog",
			expected: []string{"milk", "almond milk", "bread", "eggs", "banana", "mango", "apple", "rice"},
		},
		{
			name:     "substitutes first then unseen catalog items",
			history:  []string{"milk", "eggs"},
			expected: []string{"almond milk", "paneer", "bread", "banana", "mango", "apple", "rice", "atta"},
		},
		{
			name:    "only the ten most recent count",
			history: []string{"rice", "rice", "rice", "rice", "rice", "rice", "rice", "rice", "rice", "rice", "bread"},
			expected: []string{"milk", "almond milk", "bread", "eggs", "banana", "mango", "apple", "atta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalFallback(cat, subs, tt.history)
			assert.Len(t, got, MaxSuggestions)
			assert.Equal(t, models.NamesOf(tt.expected), got)
		})
	}
}

func TestLocalSuggest(t *testing.T) {
	cat := catalog.Default()
	subs := catalog.DefaultRules().Substitutes

	got := LocalSuggest(cat, subs, "Milk, bread , ", time.May)
	assert.Equal(t, []string{"almond milk", "atta", "banana", "mango", "eggs", "apple", "rice", "toothpaste"}, got)

	got = LocalSuggest(cat, subs, "", time.October)
	assert.Equal(t, []string{"banana", "apple", "milk", "almond milk", "bread", "eggs", "mango", "rice"}, got)
}

func TestSplitHistory(t *testing.T) {
	assert.Equal(t, []string{"milk", "almond milk"}, SplitHistory(" Milk ,, Almond Milk,"))
	assert.Nil(t, SplitHistory(""))
}

func TestResult_Label(t *testing.T) {
	assert.Equal(t, "local suggestions", Result{Info: "local suggestions", Error: "x"}.Label())
	assert.Equal(t, "x", Result{Error: "x"}.Label())
	assert.Equal(t, "Suggestions", Result{}.Label())
}
