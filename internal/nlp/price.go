package nlp

import (
	"regexp"
	"strconv"

	"grocery-assistant/internal/models"
)

const (
	currencySymbol = `(?:₹|\$|rs\.?|rupees|inr)`
	currencyUnit   = `(?:\s*(?:rs|rupees|inr|dollars|bucks)\b\.?)`
	boundedNumber  = `(\d+)\b`
)

var (
	// "under 100", "below rs 50", "less than ₹80", "se kam 40", "से कम 40"
	capBeforePattern = regexp.MustCompile(
		`(?:\b(?:under|below|less\s+than|se\s+kam)|(?:^|\s)(?:से\s+)?कम)\s*` + currencySymbol + `?\s*` + boundedNumber + currencyUnit + `?`)

	// "100 se kam", "100 रुपये से कम"
	capAfterPattern = regexp.MustCompile(
		`\b(\d+)\s*` + currencySymbol + `?\s*(?:रुपये\s*)?(?:se\s+kam\b|से\s+कम)`)

	rangePattern = regexp.MustCompile(
		`\b(?:between|from)\s+` + currencySymbol + `?\s*(\d+)` + currencyUnit + `?\s*\b(?:and|to)\b\s*` +
			currencySymbol + `?\s*` + boundedNumber + currencyUnit + `?`)

	currencyPrefixedPattern = regexp.MustCompile(`(?:₹|\$|\brs\.?|\binr\b)\s*\d+\b`)
	currencySuffixedPattern = regexp.MustCompile(`\b\d+` + currencyUnit)
)

// ExtractPriceCap returns the upper price bound named in text, if any.
func ExtractPriceCap(text string) *int {
	for _, re := range []*regexp.Regexp{capBeforePattern, capAfterPattern} {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return &n
			}
		}
	}
	return nil
}

// ExtractPriceRange returns the inclusive range named in text, if any.
// Bounds are kept in the order spoken; a reversed range matches nothing.
func ExtractPriceRange(text string) *models.PriceRange {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	return &models.PriceRange{Min: lo, Max: hi}
}

// PriceFilter extracts both filters. Callers apply the range when present
// and fall back to the cap otherwise.
func PriceFilter(text string) (*int, *models.PriceRange) {
	return ExtractPriceCap(text), ExtractPriceRange(text)
}

// StripPriceExpressions removes every price phrase so the numbers inside
// them are not mistaken for quantities or item names.
func StripPriceExpressions(text string) string {
	for _, re := range []*regexp.Regexp{
		capBeforePattern,
		capAfterPattern,
		rangePattern,
		currencyPrefixedPattern,
		currencySuffixedPattern,
	} {
		text = re.ReplaceAllString(text, " ")
	}
	return text
}
