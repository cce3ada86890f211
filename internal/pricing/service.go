// Package pricing resolves a price for any item phrase, degrading from the
// catalog to a pricing collaborator to a synthesized price.
package pricing

import (
	"context"
	"errors"
	"math/rand/v2"

	"grocery-assistant/internal/models"
)

var ErrUnusablePrice = errors.New("PRICING_UNUSABLE_PRICE")

const (
	minRandomPrice = 20
	maxRandomPrice = 100
)

// Quote is a collaborator's answer for one item.
type Quote struct {
	Item   string             `json:"item"`
	Price  int                `json:"price"`
	Source models.PriceSource `json:"-"`
}

// Service prices a single item phrase.
type Service interface {
	Quote(ctx context.Context, item string) (Quote, error)
}

// IntN returns a value in [0, n).
type IntN func(n int) int

func defaultIntN(n int) int {
	return rand.IntN(n)
}

// RandomPrice returns a plausible price in [20, 100].
func RandomPrice(intn IntN) int {
	if intn == nil {
		intn = defaultIntN
	}
	return minRandomPrice + intn(maxRandomPrice-minRandomPrice+1)
}
