// internal/workers/assistant/interpret-command/models.go
package interpretcommand

import (
	"grocery-assistant/internal/common/validation"
	"grocery-assistant/internal/models"
)

var inputSchema = validation.MustCompile(TaskType, validation.Object(map[string]interface{}{
	"utterance": validation.StringField(500),
}, "utterance"))

type Input struct {
	Utterance string `json:"utterance"`
}

type Output struct {
	Intent         models.Intent      `json:"intent"`
	Items          []string           `json:"items"`
	Quantity       int                `json:"quantity"`
	PriceCap       *int               `json:"priceCap,omitempty"`
	PriceRange     *models.PriceRange `json:"priceRange,omitempty"`
	HasPriceFilter bool               `json:"hasPriceFilter"`
	Recognized     bool               `json:"recognized"`
}
