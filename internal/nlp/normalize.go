package nlp

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases an utterance, collapses whitespace and rewrites
// known Hindi grocery words into English. It is idempotent.
func Normalize(raw string) string {
	s := norm.NFC.String(strings.ToLower(raw))
	s = strings.Join(strings.Fields(s), " ")
	return tokenPattern.ReplaceAllStringFunc(s, func(tok string) string {
		if en, ok := hindiVocabulary[tok]; ok {
			return en
		}
		return tok
	})
}

// Canonicalize reduces an item name to the key used for price lookups and
// caching: number words become digits, "kilo" becomes 1 and simple plurals
// are trimmed.
func Canonicalize(raw string) string {
	words := strings.Fields(Normalize(raw))
	for i, w := range words {
		if v, ok := numberValues[w]; ok {
			words[i] = strconv.Itoa(v)
			continue
		}
		words[i] = singular(w)
	}
	return strings.Join(words, " ")
}

func singular(w string) string {
	if len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return strings.TrimSuffix(w, "s")
	}
	return w
}
