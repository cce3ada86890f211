// Package suggest produces related-item suggestions for a shopping history
// and resolves them into priced entries.
package suggest

import (
	"context"

	"grocery-assistant/internal/models"
)

const (
	// MaxSuggestions caps every suggestion list.
	MaxSuggestions = 8

	// LabelFallback captions local suggestions served after a collaborator failure.
	LabelFallback = "Local fallback suggestions"
)

// Result is a suggestion service response. Info and Error are optional
// labels shown with the list.
type Result struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	Info        string              `json:"info,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Label picks the caption for a result.
func (r Result) Label() string {
	switch {
	case r.Info != "":
		return r.Info
	case r.Error != "":
		return r.Error
	default:
		return "Suggestions"
	}
}

// Service suggests items for a comma-joined history.
type Service interface {
	Suggest(ctx context.Context, input string) (Result, error)
}
