package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-assistant/internal/models"
)

func TestExtractPriceCap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int
	}{
		{name: "under", input: "toothpaste under 100", expected: intPtr(100)},
		{name: "below with rs", input: "find soap below rs 40", expected: intPtr(40)},
		{name: "less than rupee symbol", input: "biscuits less than ₹25", expected: intPtr(25)},
		{name: "hinglish prefix", input: "milk se kam 60", expected: intPtr(60)},
		{name: "hinglish postfix", input: "milk 60 se kam", expected: intPtr(60)},
		{name: "hindi postfix", input: "दूध 50 से कम", expected: intPtr(50)},
		{name: "hindi prefix", input: "से कम 30 biscuits", expected: intPtr(30)},
		{name: "no cap", input: "add 3 milk", expected: nil},
		{name: "range is not a cap", input: "show items between 30 and 60", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPriceCap(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestExtractPriceRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *models.PriceRange
	}{
		{name: "between and", input: "show items between 30 and 60", expected: &models.PriceRange{Min: 30, Max: 60}},
		{name: "from to", input: "find snacks from 10 to 20", expected: &models.PriceRange{Min: 10, Max: 20}},
		{name: "currency on both bounds", input: "between rs 30 and ₹60", expected: &models.PriceRange{Min: 30, Max: 60}},
		{name: "reversed bounds pass through", input: "between 60 and 30", expected: &models.PriceRange{Min: 60, Max: 30}},
		{name: "from without numbers", input: "remove milk from my list and add bread", expected: nil},
		{name: "cap only", input: "under 50", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractPriceRange(tt.input))
		})
	}
}

func TestPriceFilter_BothPresent(t *testing.T) {
	priceCap, priceRange := PriceFilter("between 30 and 60 under 50")
	require.NotNil(t, priceCap)
	require.NotNil(t, priceRange)
	assert.Equal(t, 50, *priceCap)
	assert.Equal(t, models.PriceRange{Min: 30, Max: 60}, *priceRange)
}

func TestStripPriceExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "cap", input: "add 3 milk under 50", expected: "add 3 milk"},
		{name: "cap with unit", input: "milk under 50 rupees", expected: "milk"},
		{name: "range", input: "show items between 30 and 60", expected: "show items"},
		{name: "cap and range", input: "find milk between 10 and 20 under 50", expected: "find milk"},
		{name: "cap after and range", input: "find milk from 10 to 20 50 se kam", expected: "find milk"},
		{name: "currency prefixed", input: "add bread ₹45", expected: "add bread"},
		{name: "currency suffixed", input: "add eggs 70 rs", expected: "add eggs"},
		{name: "plain quantity kept", input: "add 2 bread", expected: "add 2 bread"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(StripPriceExpressions(tt.input)))
		})
	}
}

func intPtr(n int) *int { return &n }
