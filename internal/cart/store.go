// Package cart keeps the shopping cart and purchase history in memory.
package cart

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"grocery-assistant/internal/common/metrics"
	"grocery-assistant/internal/models"
)

// MaxHistory bounds the remembered purchase history.
const MaxHistory = 200

// Store is the cart the assistant mutates.
type Store interface {
	Add(name string, qty, price int, category string) (models.CartItem, bool)
	Remove(match func(models.CartItem) bool) []models.CartItem
	RemoveByID(id string) bool
	SetQuantity(id string, qty int) (models.CartItem, bool)
	Find(name string) (models.CartItem, bool)
	List() []models.CartItem
	Names() []string
	History() []string
	Clear()
}

// MemoryStore is a Store guarded by a mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	items   []models.CartItem
	history []string
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Add merges into an existing line with the same name, keeping its price
// unless it had none. Quantities never drop below 1. The name is pushed to
// the front of the history. It returns false for a blank name.
func (s *MemoryStore) Add(name string, qty, price int, category string) (models.CartItem, bool) {
	name = normalizeName(name)
	if name == "" {
		return models.CartItem{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var item models.CartItem
	if i := s.indexOf(name); i >= 0 {
		s.items[i].Quantity = max(1, s.items[i].Quantity+qty)
		if s.items[i].Price == 0 {
			s.items[i].Price = price
		}
		item = s.items[i]
	} else {
		item = models.CartItem{
			ID:       uuid.NewString(),
			Name:     name,
			Quantity: max(1, qty),
			Price:    price,
			Category: category,
			AddedAt:  s.now().UTC(),
		}
		s.items = append(s.items, item)
	}

	s.pushHistory(name)
	s.observe()
	return item, true
}

// Remove drops every line match accepts and returns them.
func (s *MemoryStore) Remove(match func(models.CartItem) bool) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []models.CartItem
	kept := s.items[:0]
	for _, it := range s.items {
		if match(it) {
			removed = append(removed, it)
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.observe()
	return removed
}

// NameContains matches lines whose name contains phrase.
func NameContains(phrase string) func(models.CartItem) bool {
	phrase = normalizeName(phrase)
	return func(it models.CartItem) bool {
		return phrase != "" && strings.Contains(it.Name, phrase)
	}
}

func (s *MemoryStore) RemoveByID(id string) bool {
	return len(s.Remove(func(it models.CartItem) bool { return it.ID == id })) > 0
}

// SetQuantity sets the quantity of line id, clamped to at least 1.
func (s *MemoryStore) SetQuantity(id string, qty int) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = max(1, qty)
			return s.items[i], true
		}
	}
	return models.CartItem{}, false
}

// Find returns the line named exactly name.
func (s *MemoryStore) Find(name string) (models.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(normalizeName(name)); i >= 0 {
		return s.items[i], true
	}
	return models.CartItem{}, false
}

func (s *MemoryStore) List() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem{}, s.items...)
}

func (s *MemoryStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.items))
	for i, it := range s.items {
		names[i] = it.Name
	}
	return names
}

// History returns purchased names, most recent first.
func (s *MemoryStore) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.history...)
}

// Clear empties the cart. History is kept.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.observe()
}

func (s *MemoryStore) indexOf(name string) int {
	for i, it := range s.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) pushHistory(name string) {
	next := make([]string, 0, min(len(s.history)+1, MaxHistory))
	next = append(next, name)
	for _, h := range s.history {
		if h != name && len(next) < MaxHistory {
			next = append(next, h)
		}
	}
	s.history = next
}

func (s *MemoryStore) observe() {
	metrics.CartItems.Set(float64(len(s.items)))
}
