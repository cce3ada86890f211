// internal/workers/assistant/suggest-items/models.go
package suggestitems

import (
	"grocery-assistant/internal/common/validation"
	"grocery-assistant/internal/models"
)

var inputSchema = validation.MustCompile(TaskType, validation.Object(map[string]interface{}{
	"history": map[string]interface{}{
		"type":     "array",
		"items":    map[string]interface{}{"type": "string"},
		"maxItems": 200,
	},
}, "history"))

type Input struct {
	History []string `json:"history"`
}

type Output struct {
	Suggestions []models.ResolvedItem `json:"suggestions"`
	Label       string                `json:"label"`
	Fallback    bool                  `json:"fallback"`
}
