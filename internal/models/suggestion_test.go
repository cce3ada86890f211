package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestion_UnmarshalJSON(t *testing.T) {
	var got []Suggestion
	payload := `["butter", {"name":"jam","price":85}, {"item":"tea","guessPrice":"40"},
		{"name":"paneer","price":null}, {"name":"ghee","price":"n/a"}, {"name":"curd","price":-3}, ""]`

	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	require.Len(t, got, 7)

	assert.Equal(t, Named("butter"), got[0])
	assert.Equal(t, Priced("jam", 85), got[1])
	assert.Equal(t, Priced("tea", 40), got[2])
	assert.False(t, got[3].IsPriced())
	assert.False(t, got[4].IsPriced())
	assert.False(t, got[5].IsPriced())
	assert.True(t, got[6].IsEmpty())
}

func TestSuggestion_UnmarshalJSON_Rejects(t *testing.T) {
	var s Suggestion
	assert.Error(t, json.Unmarshal([]byte(`42`), &s))
}

func TestSuggestion_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Suggestion{Named("milk"), Priced("bread", 45)})
	require.NoError(t, err)
	assert.JSONEq(t, `["milk", {"name":"bread","price":45}]`, string(data))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{`58`, 58, true},
		{`0`, 0, true},
		{`49.9`, 49, true},
		{`"120"`, 120, true},
		{`" 75 "`, 75, true},
		{`"cheap"`, 0, false},
		{`-1`, 0, false},
		{`1e20`, 0, false},
		{`"9.3e18"`, 0, false},
		{`2147483647`, 2147483647, true},
		{`2147483648`, 0, false},
		{`null`, 0, false},
		{``, 0, false},
		{`{}`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePrice(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceRange_Contains(t *testing.T) {
	r := PriceRange{Min: 30, Max: 60}
	assert.True(t, r.Contains(30))
	assert.True(t, r.Contains(60))
	assert.False(t, r.Contains(61))

	inverted := PriceRange{Min: 60, Max: 30}
	assert.False(t, inverted.Contains(45))
}
