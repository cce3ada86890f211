// Package assistant applies interpreted utterances to the shopping cart.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"grocery-assistant/internal/cart"
	"grocery-assistant/internal/catalog"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/common/metrics"
	"grocery-assistant/internal/common/observability"
	"grocery-assistant/internal/models"
	"grocery-assistant/internal/nlp"
	"grocery-assistant/internal/suggest"
)

// Searcher is an optional full-text catalog index consulted when find
// commands match nothing locally.
type Searcher interface {
	Search(ctx context.Context, phrase string, priceCap *int, priceRange *models.PriceRange) ([]models.CatalogEntry, error)
}

type Config struct {
	SuggestionTimeout time.Duration
}

// Dependencies are the collaborators of an Assistant. Suggestions, Search
// and Observability may be nil.
type Dependencies struct {
	Catalog       *catalog.Catalog
	Rules         catalog.RuleSet
	Prices        suggest.PriceResolver
	Suggestions   suggest.Service
	Cart          cart.Store
	Search        Searcher
	Observability *observability.Observability
}

type Assistant struct {
	config   Config
	deps     Dependencies
	resolver *suggest.Resolver
	// mu serialises the cart effects of one command against another's.
	mu     sync.Mutex
	logger logger.Logger
}

func New(cfg Config, deps Dependencies, log logger.Logger) *Assistant {
	return &Assistant{
		config:   cfg,
		deps:     deps,
		resolver: suggest.NewResolver(deps.Catalog, deps.Prices),
		logger:   log.WithFields(map[string]interface{}{"component": "assistant"}),
	}
}

// Cart exposes the store the assistant mutates.
func (a *Assistant) Cart() cart.Store {
	return a.deps.Cart
}

// Handle interprets one utterance and applies it. It never fails; problems
// are reported in the reply.
func (a *Assistant) Handle(ctx context.Context, utterance string) Reply {
	start := time.Now()
	cmd := nlp.Parse(utterance)
	reply := Reply{Utterance: utterance, Command: cmd}

	switch cmd.Intent {
	case models.IntentFind:
		a.find(ctx, cmd, &reply)
	case models.IntentAdd:
		a.add(ctx, cmd, &reply)
	case models.IntentRemove:
		a.remove(cmd, &reply)
	case models.IntentSetQuantity:
		a.setQuantity(cmd, &reply)
	default:
		reply.fail(unknownCommandMessage, apperrors.NewUnrecognizedCommandError(utterance))
	}

	elapsed := time.Since(start)
	intent := string(cmd.Intent)
	metrics.CommandsTotal.WithLabelValues(intent).Inc()
	metrics.CommandDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
	a.deps.Observability.RecordUtterance(ctx, intent, elapsed)

	a.logger.Info("utterance handled", map[string]interface{}{
		"intent":   intent,
		"items":    cmd.Items,
		"quantity": cmd.Quantity,
		"message":  reply.Message(),
		"duration": elapsed.String(),
	})
	return reply
}

func (a *Assistant) find(ctx context.Context, cmd models.ParsedCommand, reply *Reply) {
	if len(cmd.Items) == 0 {
		if !cmd.HasPriceFilter() {
			list := a.Suggestions(ctx)
			reply.say(list.Label)
			reply.Suggestions = &list
			return
		}
		a.report(reply, "items", a.deps.Catalog.Entries(), cmd)
		return
	}

	phrase := cmd.Items[0]
	matches := a.deps.Catalog.MatchAll(phrase)
	if len(matches) == 0 && a.deps.Search != nil {
		found, err := a.deps.Search.Search(ctx, phrase, cmd.PriceCap, cmd.PriceRange)
		if err != nil {
			stdErr := apperrors.AsStandardError(err)
			metrics.CollaboratorFailures.WithLabelValues("search", string(stdErr.Code)).Inc()
			a.logger.Warn("catalog search failed", map[string]interface{}{"phrase": phrase, "error": err.Error()})
		}
		matches = found
	}
	a.report(reply, phrase, matches, cmd)
}

// report applies the price filter to matches and words the result.
func (a *Assistant) report(reply *Reply, phrase string, matches []models.CatalogEntry, cmd models.ParsedCommand) {
	filtered := catalog.FilterByPrice(matches, cmd.PriceCap, cmd.PriceRange)
	reply.Items = toResolved(filtered)

	switch {
	case cmd.PriceRange != nil:
		if len(filtered) == 0 {
			reply.fail("No items in that price range", apperrors.NewNoItemsInRangeError(
				fmt.Sprintf("%s between %d and %d", phrase, cmd.PriceRange.Min, cmd.PriceRange.Max)))
			return
		}
		reply.say(fmt.Sprintf("Found items between %d and %d", cmd.PriceRange.Min, cmd.PriceRange.Max))
	case cmd.PriceCap != nil:
		if len(filtered) == 0 {
			msg := fmt.Sprintf("No %s under %d", phrase, *cmd.PriceCap)
			reply.fail(msg, apperrors.NewNoItemsInRangeError(msg))
			return
		}
		reply.say(fmt.Sprintf("Found %s under %d", phrase, *cmd.PriceCap))
	default:
		if len(filtered) == 0 {
			msg := fmt.Sprintf("%s not found", phrase)
			if hint, ok := a.deps.Catalog.Closest(phrase); ok {
				msg += fmt.Sprintf(". Did you mean %s?", hint)
			}
			reply.fail(msg, apperrors.NewItemNotFoundError(phrase))
			return
		}
		reply.say(fmt.Sprintf("Found %s", phrase))
	}
}

func (a *Assistant) add(ctx context.Context, cmd models.ParsedCommand, reply *Reply) {
	resolved := make([]models.ResolvedItem, len(cmd.Items))
	var wg sync.WaitGroup
	for i, phrase := range cmd.Items {
		wg.Add(1)
		go func(i int, phrase string) {
			defer wg.Done()
			resolved[i] = a.deps.Prices.Resolve(ctx, phrase)
		}(i, phrase)
	}
	wg.Wait()

	a.mu.Lock()
	for _, item := range resolved {
		if _, ok := a.deps.Cart.Add(item.Name, cmd.Quantity, item.Price, item.Category); !ok {
			continue
		}
		reply.Items = append(reply.Items, item)
		reply.say(fmt.Sprintf("%d × %s added", cmd.Quantity, item.Name))
	}
	a.mu.Unlock()

	for _, item := range reply.Items {
		complements := a.deps.Rules.Complements.Lookup(item.Name)
		if len(complements) == 0 {
			continue
		}
		reply.Suggestions = &SuggestionList{
			Label: fmt.Sprintf("Often bought with %s:", item.Name),
			Items: a.resolver.Resolve(ctx, models.NamesOf(complements)),
		}
		break
	}
}

func (a *Assistant) remove(cmd models.ParsedCommand, reply *Reply) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, phrase := range cmd.Items {
		if removed := a.deps.Cart.Remove(cart.NameContains(phrase)); len(removed) > 0 {
			reply.say(fmt.Sprintf("%s removed", phrase))
			continue
		}
		reply.fail(fmt.Sprintf("%s not found", phrase), apperrors.NewItemNotFoundError(phrase))
	}
}

func (a *Assistant) setQuantity(cmd models.ParsedCommand, reply *Reply) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, phrase := range cmd.Items {
		line, ok := a.deps.Cart.Find(phrase)
		if !ok {
			if e, matched := a.deps.Catalog.Match(phrase); matched {
				line, ok = a.deps.Cart.Find(e.Name)
			}
		}
		if !ok {
			reply.fail(fmt.Sprintf("%s not in cart", phrase), apperrors.NewItemNotFoundError(phrase))
			continue
		}
		a.deps.Cart.SetQuantity(line.ID, cmd.Quantity)
		reply.say(fmt.Sprintf("Updated %s to %d", phrase, cmd.Quantity))
	}
}

// Suggestions asks the suggestion service about the current cart and
// prices the answer. Service failures fall back to local suggestions built
// from the purchase history.
func (a *Assistant) Suggestions(ctx context.Context) SuggestionList {
	if a.deps.Suggestions == nil {
		return a.localFallback(ctx)
	}

	sctx := ctx
	if a.config.SuggestionTimeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, a.config.SuggestionTimeout)
		defer cancel()
	}

	res, err := a.deps.Suggestions.Suggest(sctx, strings.Join(a.deps.Cart.Names(), ", "))
	if err != nil {
		stdErr := apperrors.AsStandardError(err)
		if sctx.Err() != nil && stdErr.Code != apperrors.ErrCodeSuggestionTimeout {
			stdErr = apperrors.NewSuggestionTimeoutError(err)
		}
		metrics.CollaboratorFailures.WithLabelValues("suggestion", string(stdErr.Code)).Inc()
		a.logger.Warn("suggestion collaborator failed, using local fallback", map[string]interface{}{
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
		return a.localFallback(ctx)
	}

	metrics.SuggestionRequests.WithLabelValues("service").Inc()
	return SuggestionList{Label: res.Label(), Items: a.resolver.Resolve(ctx, res.Suggestions)}
}

func (a *Assistant) localFallback(ctx context.Context) SuggestionList {
	metrics.SuggestionRequests.WithLabelValues("local").Inc()
	entries := suggest.LocalFallback(a.deps.Catalog, a.deps.Rules.Substitutes, a.deps.Cart.History())
	return SuggestionList{Label: suggest.LabelFallback, Items: a.resolver.Resolve(ctx, entries)}
}

func toResolved(entries []models.CatalogEntry) []models.ResolvedItem {
	out := make([]models.ResolvedItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ResolvedItem{Name: e.Name, Price: e.Price, Category: e.Category, Source: models.PriceSourceCatalog})
	}
	return out
}
