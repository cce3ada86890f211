package nlp

import "grocery-assistant/internal/models"

// Parse interprets one utterance. Quantity is only read for add and
// set-quantity commands and is 1 otherwise.
func Parse(raw string) models.ParsedCommand {
	text := Normalize(raw)
	priceCap, priceRange := PriceFilter(text)
	items := ExtractItems(text)

	cmd := models.ParsedCommand{
		Intent:     Detect(text).Resolve(priceCap != nil || priceRange != nil, len(items) > 0),
		Items:      items,
		Quantity:   1,
		PriceCap:   priceCap,
		PriceRange: priceRange,
	}
	if cmd.Intent == models.IntentAdd || cmd.Intent == models.IntentSetQuantity {
		cmd.Quantity = ExtractQuantity(text)
	}
	return cmd
}
