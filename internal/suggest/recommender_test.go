package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/models"
)

type fakeGenerator struct {
	output string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.output, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }

func may() time.Time {
	return time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
}

func TestRecommender_Suggest(t *testing.T) {
	local := models.NamesOf([]string{"almond milk", "banana", "mango", "bread", "eggs", "apple", "rice", "atta"})

	tests := []struct {
		name      string
		model     *fakeGenerator
		expected  Result
		wantInLLM string
	}{
		{
			name:     "no model",
			expected: Result{Suggestions: local, Info: InfoLocal},
		},
		{
			name:  "model output split and trimmed",
			model: &fakeGenerator{output: "Butter, jam\nTea; ,coffee"},
			expected: Result{Suggestions: models.NamesOf([]string{"butter", "jam", "tea", "coffee"})},
			wantInLLM: "shopping history: milk",
		},
		{
			name:     "model output capped",
			model:    &fakeGenerator{output: "a,b,c,d,e,f,g,h,i,j"},
			expected: Result{Suggestions: models.NamesOf([]string{"a", "b", "c", "d", "e", "f", "g", "h"})},
		},
		{
			name:     "model failure",
			model:    &fakeGenerator{err: errors.New("503")},
			expected: Result{Suggestions: local, Error: ErrorFallback},
		},
		{
			name:     "blank model output",
			model:    &fakeGenerator{output: " ,\n; "},
			expected: Result{Suggestions: local, Error: ErrorFallback},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *Recommender
			if tt.model == nil {
				rec = NewRecommender(catalog.Default(), catalog.DefaultRules(), nil, logger.NewTestLogger(t))
			} else {
				rec = NewRecommender(catalog.Default(), catalog.DefaultRules(), tt.model, logger.NewTestLogger(t))
			}
			rec.WithClock(may)

			got, err := rec.Suggest(context.Background(), "milk")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			if tt.wantInLLM != "" {
				assert.Contains(t, tt.model.prompt, tt.wantInLLM)
			}
		})
	}
}
