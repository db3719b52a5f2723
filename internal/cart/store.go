package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"SunShop/internal/catalog"
)

// Item is a snapshot of a catalog product plus the quantity in the cart.
// Quantity is always >= 1; removal drops the item entirely.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Store keeps every user's cart, keyed by username. Carts are the only
// mutable state in the process besides sessions and the login counters.
type Store struct {
	mu     sync.Mutex
	byUser map[string][]Item
}

func NewStore() *Store {
	return &Store{byUser: make(map[string][]Item)}
}

// SeedFromUsersFile loads the cart field of each user document. The
// credential fields are the user store's concern, not ours.
func (s *Store) SeedFromUsersFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var docs []struct {
		Username string `json:"username"`
		Cart     []Item `json:"cart"`
	}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		s.byUser[d.Username] = d.Cart
	}
	return nil
}

// Items returns a copy of the user's cart in insertion order.
func (s *Store) Items(username string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.byUser[username])
}

// Add appends the product with quantity 1, or bumps the quantity if an
// item with that id is already present.
func (s *Store) Add(username string, p catalog.Product) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.byUser[username]
	for i := range items {
		if items[i].ID == p.ID {
			items[i].Quantity++
			return snapshot(items)
		}
	}

	items = append(items, Item{Product: p, Quantity: 1})
	s.byUser[username] = items
	return snapshot(items)
}

// Remove drops the item with the given product id. Removing an id that
// is not in the cart is a no-op.
func (s *Store) Remove(username, productID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.byUser[username]
	for i := range items {
		if items[i].ID == productID {
			items = append(items[:i], items[i+1:]...)
			s.byUser[username] = items
			break
		}
	}
	return snapshot(items)
}

func snapshot(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
