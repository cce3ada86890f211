package nlp

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches a run of letters, combining marks and digits in any
// script. RE2's \b only understands ASCII, so Devanagari words are handled
// token by token.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// phraseSet matches whole-word phrases. ASCII phrases are compiled into one
// alternation ordered longest first; other phrases are matched as tokens.
type phraseSet struct {
	ascii  *regexp.Regexp
	tokens map[string]struct{}
}

func newPhraseSet(phrases ...string) *phraseSet {
	ps := &phraseSet{tokens: make(map[string]struct{})}

	var ascii []string
	for _, p := range phrases {
		p = strings.ToLower(norm.NFC.String(p))
		if isASCII(p) {
			ascii = append(ascii, p)
			continue
		}
		ps.tokens[p] = struct{}{}
	}
	if len(ascii) == 0 {
		return ps
	}

	sort.SliceStable(ascii, func(i, j int) bool {
		return utf8.RuneCountInString(ascii[i]) > utf8.RuneCountInString(ascii[j])
	})
	alts := make([]string, len(ascii))
	for i, p := range ascii {
		words := strings.Fields(p)
		for k, w := range words {
			words[k] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}
	ps.ascii = regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
	return ps
}

// Match reports whether any phrase occurs in text.
func (ps *phraseSet) Match(text string) bool {
	if ps.ascii != nil && ps.ascii.MatchString(text) {
		return true
	}
	if len(ps.tokens) == 0 {
		return false
	}
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if _, ok := ps.tokens[tok]; ok {
			return true
		}
	}
	return false
}

// Remove replaces every occurrence with a single space.
func (ps *phraseSet) Remove(text string) string {
	if ps.ascii != nil {
		text = ps.ascii.ReplaceAllString(text, " ")
	}
	if len(ps.tokens) == 0 {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(tok string) string {
		if _, ok := ps.tokens[tok]; ok {
			return " "
		}
		return tok
	})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
