// internal/workers/assistant/resolve-price/models.go
package resolveprice

import (
	"grocery-assistant/internal/common/validation"
	"grocery-assistant/internal/models"
)

var inputSchema = validation.MustCompile(TaskType, validation.Object(map[string]interface{}{
	"item": validation.StringField(100),
}, "item"))

type Input struct {
	Item string `json:"item"`
}

type Output struct {
	Name     string             `json:"name"`
	Price    int                `json:"price"`
	Category string             `json:"category"`
	Source   models.PriceSource `json:"source"`
}
