package nlp

// hindiVocabulary maps romanised Hindi grocery words to their English form.
var hindiVocabulary = map[string]string{
	"dudh":    "milk",
	"doodh":   "milk",
	"seb":     "apple",
	"aam":     "mango",
	"anda":    "eggs",
	"ande":    "eggs",
	"chawal":  "rice",
	"aata":    "atta",
	"roti":    "bread",
	"biskut":  "biscuits",
	"biscuit": "biscuits",
	"paneer":  "paneer",
}

type numberWord struct {
	word  string
	value int
}

// numberWords is scanned in order; the first word present wins.
var numberWords = []numberWord{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
	{"ek", 1}, {"do", 2}, {"teen", 3}, {"char", 4}, {"chaar", 4},
	{"paanch", 5}, {"panch", 5}, {"chhe", 6}, {"che", 6}, {"saat", 7},
	{"sat", 7}, {"aath", 8}, {"nau", 9}, {"das", 10}, {"kilo", 1},
}

var numberValues = func() map[string]int {
	m := make(map[string]int, len(numberWords))
	for _, nw := range numberWords {
		m[nw.word] = nw.value
	}
	return m
}()

var (
	addTriggers = newPhraseSet(
		"add", "add me", "add for me", "for myself", "for me", "i need to",
		"purchase", "buy me", "i need", "i want to buy", "to my list", "i want",
		"buy", "get", "put", "include", "please add", "add to my list",
		"खरीदना", "जोड़ो", "मुझे",
	)

	removeTriggers = newPhraseSet(
		"remove", "delete", "drop", "remove from my list", "delete from my list",
		"हटा", "निकालो", "डिलीट", "हटाओ",
	)

	findTriggers = newPhraseSet(
		"find", "search", "look for", "show me", "show", "suggest", "suggest me",
		"recommend me", "recommendation", "suggestion", "recommend",
	)

	setQuantityTriggers = newPhraseSet(
		"set", "change", "update", "quantity", "qty", "set to",
	)
)

// Phrases stripped from an utterance before the remainder is split into items.
var (
	commandVerbs = newPhraseSet(
		"i need to buy", "i want to buy", "i want", "i need to", "i need",
		"please add", "please", "add to my list", "add to the list", "add me",
		"add for me", "for myself", "for me", "add", "buy", "buy me", "get", "put",
		"include", "i'll buy", "purchase", "suggest", "suggest me", "recommend",
		"recommend me", "recommendation", "suggestion", "show", "show me", "find",
		"search", "look for", "bring", "to", "खरीदना", "जोड़ो", "मुझे",
	)

	removeVerbs = newPhraseSet(
		"remove", "delete", "drop", "remove from my list", "delete from my list",
		"from my list", "from the list", "from my cart", "from the cart",
		"हटा", "निकालो", "डिलीट", "हटाओ",
	)

	setQuantityVerbs = newPhraseSet(
		"set to", "set", "change", "update", "quantity", "qty",
	)

	fillerWords = newPhraseSet(
		"of", "for", "my", "the", "a", "an", "in", "me", "some", "organic",
		"fresh", "pack", "packs", "packet", "packets", "kg", "kgs", "kilo",
		"kilos", "kilogram", "kilograms", "liter", "liters", "litre", "litres",
		"ltr", "bottle", "bottles", "piece", "pieces", "pcs", "dozen", "item",
		"items", "list", "cart",
	)
)
