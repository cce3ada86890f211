package models

import "time"

// CartItem is one line of the shopping list.
type CartItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"qty"`
	Price    int       `json:"price"`
	Category string    `json:"category"`
	AddedAt  time.Time `json:"addedAt"`
}
