package pricing

import (
	"context"
	"regexp"
	"strings"
	"time"

	"grocery-assistant/internal/catalog"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/common/metrics"
	"grocery-assistant/internal/models"
)

// Collaborators sometimes echo the requested quantity in front of the name.
var leadingCount = regexp.MustCompile(`^\s*\d+\s+`)

// Resolver never fails: every phrase resolves to a name and a price.
type Resolver struct {
	catalog *catalog.Catalog
	service Service
	timeout time.Duration
	intn    IntN
	logger  logger.Logger
}

// NewResolver accepts a nil service, in which case only the catalog and
// random tiers are used.
func NewResolver(cat *catalog.Catalog, svc Service, timeout time.Duration, log logger.Logger) *Resolver {
	return &Resolver{
		catalog: cat,
		service: svc,
		timeout: timeout,
		intn:    defaultIntN,
		logger:  log.WithFields(map[string]interface{}{"component": "price-resolver"}),
	}
}

// WithRandom replaces the random source.
func (r *Resolver) WithRandom(intn IntN) *Resolver {
	r.intn = intn
	return r
}

// Resolve tries an exact catalog match, the pricing service, a partial
// catalog match and finally a random price in [20, 100].
func (r *Resolver) Resolve(ctx context.Context, phrase string) models.ResolvedItem {
	phrase = strings.TrimSpace(phrase)
	item := r.resolve(ctx, phrase)
	metrics.PriceResolutions.WithLabelValues(string(item.Source)).Inc()
	return item
}

func (r *Resolver) resolve(ctx context.Context, phrase string) models.ResolvedItem {
	if e, ok := r.catalog.Exact(phrase); ok {
		return models.ResolvedItem{Name: e.Name, Price: e.Price, Category: e.Category, Source: models.PriceSourceCatalog}
	}

	if r.service != nil && phrase != "" {
		if q, ok := r.quote(ctx, phrase); ok {
			name := strings.TrimSpace(leadingCount.ReplaceAllString(q.Item, ""))
			if name == "" {
				name = phrase
			}
			source := q.Source
			if source == "" {
				source = models.PriceSourceService
			}
			return models.ResolvedItem{Name: name, Price: q.Price, Category: r.catalog.Category(name), Source: source}
		}
	}

	if e, ok := r.catalog.Match(phrase); ok {
		return models.ResolvedItem{Name: e.Name, Price: e.Price, Category: e.Category, Source: models.PriceSourcePartial}
	}

	return models.ResolvedItem{
		Name:     phrase,
		Price:    RandomPrice(r.intn),
		Category: catalog.GuessCategory(phrase),
		Source:   models.PriceSourceRandom,
	}
}

func (r *Resolver) quote(ctx context.Context, phrase string) (Quote, bool) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	q, err := r.service.Quote(ctx, phrase)
	if err != nil {
		stdErr := apperrors.AsStandardError(err)
		if ctx.Err() != nil && stdErr.Code != apperrors.ErrCodePricingTimeout {
			stdErr = apperrors.NewPricingTimeoutError(err)
		}
		metrics.CollaboratorFailures.WithLabelValues("pricing", string(stdErr.Code)).Inc()
		r.logger.Warn("pricing collaborator failed, falling back", map[string]interface{}{
			"item":      phrase,
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
		return Quote{}, false
	}
	if q.Price < 0 {
		return Quote{}, false
	}
	return q, true
}
