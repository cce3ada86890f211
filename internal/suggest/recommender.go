package suggest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/llm"
	"grocery-assistant/internal/models"
)

const (
	suggestPrompt = "Suggest up to %d grocery items (comma separated, lowercase) based on this shopping history: %s"

	InfoLocal     = "local suggestions"
	ErrorFallback = "language model failed - local suggestions"
)

var listSeparator = regexp.MustCompile(`[,\n;]+`)

// Recommender is the in-process suggestion service.
type Recommender struct {
	catalog     *catalog.Catalog
	substitutes models.Rules
	model       llm.Generator
	now         func() time.Time
	logger      logger.Logger
}

// NewRecommender accepts a nil model; suggestions are then local only.
func NewRecommender(cat *catalog.Catalog, rules catalog.RuleSet, model llm.Generator, log logger.Logger) *Recommender {
	return &Recommender{
		catalog:     cat,
		substitutes: rules.Substitutes,
		model:       model,
		now:         time.Now,
		logger:      log.WithFields(map[string]interface{}{"component": "recommender"}),
	}
}

// WithClock replaces the clock used to pick seasonal items.
func (r *Recommender) WithClock(now func() time.Time) *Recommender {
	r.now = now
	return r
}

// Suggest never returns an error; model failures degrade to local
// suggestions with an explanatory Error label.
func (r *Recommender) Suggest(ctx context.Context, input string) (Result, error) {
	local := func() []models.Suggestion {
		return models.NamesOf(LocalSuggest(r.catalog, r.substitutes, input, r.now().Month()))
	}

	if r.model == nil {
		return Result{Suggestions: local(), Info: InfoLocal}, nil
	}

	out, err := r.model.Generate(ctx, fmt.Sprintf(suggestPrompt, MaxSuggestions, input))
	if err != nil {
		r.logger.Warn("model suggestions failed", map[string]interface{}{"error": err.Error()})
		return Result{Suggestions: local(), Error: ErrorFallback}, nil
	}

	names := splitModelOutput(out)
	if len(names) == 0 {
		r.logger.Debug("model returned no suggestions", map[string]interface{}{"output": out})
		return Result{Suggestions: local(), Error: ErrorFallback}, nil
	}
	return Result{Suggestions: models.NamesOf(names)}, nil
}

func splitModelOutput(out string) []string {
	var names []string
	for _, part := range listSeparator.Split(out, -1) {
		if name := strings.ToLower(strings.TrimSpace(part)); name != "" {
			names = append(names, name)
		}
		if len(names) == MaxSuggestions {
			break
		}
	}
	return names
}
