package nlp

import "grocery-assistant/internal/models"

// Detectors records which command families an utterance mentions.
type Detectors struct {
	Add         bool
	Remove      bool
	Find        bool
	SetQuantity bool
}

// Detect runs every trigger family against normalized text.
func Detect(text string) Detectors {
	return Detectors{
		Add:         addTriggers.Match(text),
		Remove:      removeTriggers.Match(text),
		Find:        findTriggers.Match(text),
		SetQuantity: setQuantityTriggers.Match(text),
	}
}

// Resolve picks one intent. A find verb always means find; a price filter
// means find unless another command verb is present. Add, remove and
// set-quantity need at least one item, and bare item names default to add.
func (d Detectors) Resolve(hasPriceFilter, hasItems bool) models.Intent {
	switch {
	case d.Find || (hasPriceFilter && !d.Add && !d.Remove && !d.SetQuantity):
		return models.IntentFind
	case d.Add && hasItems:
		return models.IntentAdd
	case d.Remove && hasItems:
		return models.IntentRemove
	case d.SetQuantity && hasItems:
		return models.IntentSetQuantity
	case hasItems:
		return models.IntentAdd
	default:
		return models.IntentUnknown
	}
}

// Classify detects and resolves the intent of normalized text.
func Classify(text string, hasPriceFilter bool, items []string) models.Intent {
	return Detect(text).Resolve(hasPriceFilter, len(items) > 0)
}
