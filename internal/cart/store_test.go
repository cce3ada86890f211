package cart

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-assistant/internal/common/metrics"
)

func TestMemoryStore_Add(t *testing.T) {
	s := NewMemoryStore()

	first, ok := s.Add(" Milk ", 2, 0, "Dairy")
	require.True(t, ok)
	assert.Equal(t, "milk", first.Name)
	assert.Equal(t, 2, first.Quantity)
	assert.NotEmpty(t, first.ID)

	merged, ok := s.Add("milk", 3, 58, "Dairy")
	require.True(t, ok)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)
	assert.Equal(t, 58, merged.Price, "missing price is filled in")

	kept, _ := s.Add("milk", 1, 99, "Dairy")
	assert.Equal(t, 58, kept.Price, "existing price is kept")

	_, ok = s.Add("   ", 1, 10, "")
	assert.False(t, ok)

	assert.Len(t, s.List(), 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CartItems))
}

func TestMemoryStore_AddClampsQuantity(t *testing.T) {
	s := NewMemoryStore()
	item, _ := s.Add("bread", 0, 45, "Bakery")
	assert.Equal(t, 1, item.Quantity)

	item, _ = s.Add("bread", -5, 45, "Bakery")
	assert.Equal(t, 1, item.Quantity)
}

func TestMemoryStore_Remove(t *testing.T) {
	s := NewMemoryStore()
	s.Add("milk", 1, 58, "Dairy")
	s.Add("almond milk", 1, 120, "Dairy")
	s.Add("bread", 1, 45, "Bakery")

	removed := s.Remove(NameContains("milk"))
	assert.Len(t, removed, 2)
	assert.Equal(t, []string{"bread"}, s.Names())

	assert.Empty(t, s.Remove(NameContains("eggs")))
	assert.Empty(t, s.Remove(NameContains("")))
}

func TestMemoryStore_ByID(t *testing.T) {
	s := NewMemoryStore()
	item, _ := s.Add("eggs", 1, 70, "Dairy")

	updated, ok := s.SetQuantity(item.ID, 12)
	require.True(t, ok)
	assert.Equal(t, 12, updated.Quantity)

	updated, _ = s.SetQuantity(item.ID, 0)
	assert.Equal(t, 1, updated.Quantity)

	_, ok = s.SetQuantity("missing", 3)
	assert.False(t, ok)

	assert.True(t, s.RemoveByID(item.ID))
	assert.False(t, s.RemoveByID(item.ID))
}

func TestMemoryStore_History(t *testing.T) {
	s := NewMemoryStore()
	s.Add("milk", 1, 58, "Dairy")
	s.Add("bread", 1, 45, "Bakery")
	s.Add("milk", 1, 58, "Dairy")
	s.Clear()

	assert.Empty(t, s.List())
	assert.Equal(t, []string{"milk", "bread"}, s.History())

	for i := 0; i < MaxHistory+20; i++ {
		s.Add(fmt.Sprintf("item %d", i), 1, 10, "Other")
	}
	h := s.History()
	assert.Len(t, h, MaxHistory)
	assert.Equal(t, fmt.Sprintf("item %d", MaxHistory+19), h[0])
}

func TestMemoryStore_Find(t *testing.T) {
	s := NewMemoryStore()
	s.Add("almond milk", 1, 120, "Dairy")

	_, ok := s.Find("milk")
	assert.False(t, ok)
	item, ok := s.Find("Almond Milk")
	require.True(t, ok)
	assert.Equal(t, "almond milk", item.Name)
}

func TestMemoryStore_ConcurrentAdds(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("rice", 1, 60, "Grocery")
		}()
	}
	wg.Wait()

	item, ok := s.Find("rice")
	require.True(t, ok)
	assert.Equal(t, 50, item.Quantity)
}
