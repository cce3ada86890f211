package nlp

import (
	"regexp"
	"strings"
)

var itemSeparator = regexp.MustCompile(`\band\b|,|&`)

const itemTrimSet = " .!?;:'\"-"

// ExtractItems returns the item phrases named in text, in order. Command
// verbs, filler words, price phrases and bare numbers are removed and the
// remainder is split on "and", commas and ampersands.
func ExtractItems(text string) []string {
	s := StripPriceExpressions(Normalize(text))
	s = commandVerbs.Remove(s)
	s = removeVerbs.Remove(s)
	s = setQuantityVerbs.Remove(s)
	s = fillerWords.Remove(s)
	s = bareNumberPattern.ReplaceAllString(s, " ")

	items := []string{}
	for _, part := range itemSeparator.Split(s, -1) {
		part = strings.Join(strings.Fields(strings.Trim(part, itemTrimSet)), " ")
		part = strings.Trim(part, itemTrimSet)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
