package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Suggestion is either a bare item name or a name with an optional price.
// The zero value is an empty name and is skipped by resolvers.
type Suggestion struct {
	Name  string
	Price *int
}

// Named builds a bare-name suggestion.
func Named(name string) Suggestion {
	return Suggestion{Name: name}
}

// Priced builds a suggestion carrying a price.
func Priced(name string, price int) Suggestion {
	return Suggestion{Name: name, Price: &price}
}

// IsPriced reports whether the suggestion carries its own price.
func (s Suggestion) IsPriced() bool {
	return s.Price != nil
}

// IsEmpty reports whether there is no usable name.
func (s Suggestion) IsEmpty() bool {
	return strings.TrimSpace(s.Name) == ""
}

// NamesOf wraps plain names as suggestions.
func NamesOf(names []string) []Suggestion {
	out := make([]Suggestion, 0, len(names))
	for _, n := range names {
		out = append(out, Named(n))
	}
	return out
}

// MarshalJSON writes bare names as strings and priced entries as objects.
func (s Suggestion) MarshalJSON() ([]byte, error) {
	if s.Price == nil {
		return json.Marshal(s.Name)
	}
	return json.Marshal(struct {
		Name  string `json:"name"`
		Price int    `json:"price"`
	}{s.Name, *s.Price})
}

// UnmarshalJSON accepts a string, or an object with name|item and an optional
// price or guessPrice given as a number or numeric string.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = Suggestion{Name: name}
		return nil
	}

	var obj struct {
		Name       string          `json:"name"`
		Item       string          `json:"item"`
		Price      json.RawMessage `json:"price"`
		GuessPrice json.RawMessage `json:"guessPrice"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("suggestion must be a string or object: %w", err)
	}

	out := Suggestion{Name: obj.Name}
	if out.Name == "" {
		out.Name = obj.Item
	}
	if p, ok := ParsePrice(obj.Price); ok {
		out.Price = &p
	} else if p, ok := ParsePrice(obj.GuessPrice); ok {
		out.Price = &p
	}
	*s = out
	return nil
}

// ParsePrice reads a non-negative integer price from a JSON number or numeric
// string. Fractions are truncated. Missing, null, negative, non-numeric or
// values above math.MaxInt32 are rejected.
func ParsePrice(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
