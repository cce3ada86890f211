package assistant

import (
	"strings"

	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/models"
)

const unknownCommandMessage = "Couldn't interpret command. Try: add milk / remove bread / find toothpaste under 100 / show items between 30 and 60"

// Reply is the outcome of one utterance.
type Reply struct {
	Utterance   string                     `json:"utterance"`
	Command     models.ParsedCommand       `json:"command"`
	Messages    []string                   `json:"messages"`
	Items       []models.ResolvedItem      `json:"items,omitempty"`
	Suggestions *SuggestionList            `json:"suggestions,omitempty"`
	Errors      []*apperrors.StandardError `json:"errors,omitempty"`
}

// Message joins the reply messages for display.
func (r Reply) Message() string {
	return strings.Join(r.Messages, "; ")
}

func (r *Reply) say(msg string) {
	r.Messages = append(r.Messages, msg)
}

func (r *Reply) fail(msg string, err *apperrors.StandardError) {
	r.say(msg)
	r.Errors = append(r.Errors, err)
}

// SuggestionList is a captioned list of priced suggestions.
type SuggestionList struct {
	Label string                `json:"label"`
	Items []models.ResolvedItem `json:"items"`
}
