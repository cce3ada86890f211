package models

// Intent is the classified purpose of an utterance.
type Intent string

const (
	IntentAdd         Intent = "add"
	IntentRemove      Intent = "remove"
	IntentSetQuantity Intent = "set_quantity"
	IntentFind        Intent = "find"
	IntentUnknown     Intent = "unknown"
)

// PriceRange is a closed interval. Min may exceed Max when the utterance says so.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether price lies in [Min, Max].
func (r PriceRange) Contains(price int) bool {
	return price >= r.Min && price <= r.Max
}

// ParsedCommand is the structured form of one utterance.
type ParsedCommand struct {
	Intent     Intent      `json:"intent"`
	Items      []string    `json:"items"`
	Quantity   int         `json:"quantity"`
	PriceCap   *int        `json:"priceCap,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
}

// HasPriceFilter reports whether a cap or a range was extracted.
func (c ParsedCommand) HasPriceFilter() bool {
	return c.PriceCap != nil || c.PriceRange != nil
}

// PriceSource names the tier that produced a price.
type PriceSource string

const (
	PriceSourceCatalog PriceSource = "catalog"
	PriceSourceService PriceSource = "service"
	PriceSourcePartial PriceSource = "partial"
	PriceSourceRandom  PriceSource = "random"
	PriceSourceGiven   PriceSource = "given"
	PriceSourceModel   PriceSource = "model"
	PriceSourceCache   PriceSource = "cache"
)

// ResolvedItem is an item phrase bound to a name, price and category.
type ResolvedItem struct {
	Name     string      `json:"name"`
	Price    int         `json:"price"`
	Category string      `json:"category,omitempty"`
	Source   PriceSource `json:"source,omitempty"`
}
