package nlp

import (
	"regexp"
	"strconv"
)

var bareNumberPattern = regexp.MustCompile(`\b\d+\b`)

// ExtractQuantity returns the first quantity in text once price phrases are
// removed: a bare integer, else a number word, else 1. Results are clamped
// to at least 1.
func ExtractQuantity(text string) int {
	s := StripPriceExpressions(Normalize(text))

	if m := bareNumberPattern.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return atLeastOne(n)
		}
	}

	present := make(map[string]struct{})
	for _, tok := range tokenPattern.FindAllString(s, -1) {
		present[tok] = struct{}{}
	}
	for _, nw := range numberWords {
		if _, ok := present[nw.word]; ok {
			return nw.value
		}
	}
	return 1
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
