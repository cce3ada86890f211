package suggest

import (
	"strings"
	"time"

	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/models"
)

// historyWindow is how many recent history items seed the fallback list.
const historyWindow = 10

type nameList struct {
	names []string
	seen  map[string]struct{}
}

func newNameList() *nameList {
	return &nameList{seen: make(map[string]struct{})}
}

func (l *nameList) add(name string) {
	if name == "" || len(l.names) >= MaxSuggestions {
		return
	}
	if _, ok := l.seen[name]; ok {
		return
	}
	l.seen[name] = struct{}{}
	l.names = append(l.names, name)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// SplitHistory parses a comma-joined history into lower-cased names.
func SplitHistory(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if name := strings.ToLower(strings.TrimSpace(part)); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// LocalFallback builds suggestions without any collaborator: substitutes
// for the most recent history items, then catalog items not yet bought.
func LocalFallback(cat *catalog.Catalog, substitutes models.Rules, history []string) []models.Suggestion {
	recent := history
	if len(recent) > historyWindow {
		recent = recent[:historyWindow]
	}
	have := toSet(recent)

	list := newNameList()
	for _, h := range recent {
		for _, s := range substitutes.Lookup(h) {
			list.add(s)
		}
	}
	for _, name := range cat.Names() {
		if _, ok := have[name]; !ok {
			list.add(name)
		}
	}
	return models.NamesOf(list.names)
}

// LocalSuggest is the recommender's offline answer: substitutes of history
// items, then produce in season for month, then catalog items not in the
// history.
func LocalSuggest(cat *catalog.Catalog, substitutes models.Rules, input string, month time.Month) []string {
	history := SplitHistory(input)
	have := toSet(history)

	list := newNameList()
	for _, h := range history {
		for _, s := range substitutes.Lookup(h) {
			list.add(s)
		}
	}
	for _, e := range cat.InSeason(month) {
		list.add(e.Name)
	}
	for _, name := range cat.Names() {
		if _, ok := have[name]; !ok {
			list.add(name)
		}
	}
	return list.names
}
