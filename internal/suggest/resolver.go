package suggest

import (
	"context"
	"strings"

	"grocery-assistant/internal/catalog"
	"grocery-assistant/internal/models"
)

// PriceResolver prices one phrase; pricing.Resolver satisfies it.
type PriceResolver interface {
	Resolve(ctx context.Context, phrase string) models.ResolvedItem
}

// Resolver turns raw suggestion entries into priced items.
type Resolver struct {
	catalog *catalog.Catalog
	prices  PriceResolver
}

func NewResolver(cat *catalog.Catalog, prices PriceResolver) *Resolver {
	return &Resolver{catalog: cat, prices: prices}
}

// Resolve keeps input order and duplicates, skips empty entries and stops
// after MaxSuggestions. Given prices are kept; other entries are priced
// from the catalog, then by the price resolver.
func (r *Resolver) Resolve(ctx context.Context, entries []models.Suggestion) []models.ResolvedItem {
	out := make([]models.ResolvedItem, 0, min(len(entries), MaxSuggestions))
	for _, s := range entries {
		if len(out) == MaxSuggestions {
			break
		}
		if s.IsEmpty() {
			continue
		}
		out = append(out, r.resolveOne(ctx, s))
	}
	return out
}

func (r *Resolver) resolveOne(ctx context.Context, s models.Suggestion) models.ResolvedItem {
	name := strings.TrimSpace(s.Name)
	if s.IsPriced() {
		return models.ResolvedItem{
			Name:     name,
			Price:    *s.Price,
			Category: r.catalog.Category(name),
			Source:   models.PriceSourceGiven,
		}
	}
	if e, ok := r.catalog.Match(name); ok {
		return models.ResolvedItem{Name: e.Name, Price: e.Price, Category: e.Category, Source: models.PriceSourceCatalog}
	}
	return r.prices.Resolve(ctx, name)
}
