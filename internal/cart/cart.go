// Package cart implements the in-memory shopping cart. Carts live only for
// the lifetime of the process and are never persisted; the order tables are
// the system of record once a checkout succeeds.
package cart

import "sync"

// Line is one product entry in a cart with a quantity.
type Line struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image"`
	RestaurantID string  `json:"restaurant_id"`
}

// Product describes an item being added to a cart. Quantity is implicit:
// adding always contributes exactly one unit.
type Product struct {
	ID           string
	Name         string
	Price        float64
	Image        string
	RestaurantID string
}

// Store holds one cart per user. It is safe for concurrent use; each
// mutation runs to completion under the lock, so no interleaving between
// mutations is possible.
type Store struct {
	mu    sync.Mutex
	carts map[string][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Line)}
}

// AddItem appends a quantity-1 line for the product, or increments the
// existing line when the product is already in the cart. It never fails.
func (s *Store) AddItem(userID string, p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity++
			return
		}
	}

	s.carts[userID] = append(lines, Line{
		ProductID:    p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     1,
		Image:        p.Image,
		RestaurantID: p.RestaurantID,
	})
}

// ChangeQuantity adjusts a line's quantity by delta, clamped at zero. A line
// whose quantity reaches zero is removed rather than kept empty. Unknown
// product IDs are a no-op.
func (s *Store) ChangeQuantity(userID, productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		newQty := lines[i].Quantity + delta
		if newQty <= 0 {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = newQty
		}
		return
	}
}

// RemoveItem drops the line for productID if present.
func (s *Store) RemoveItem(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// Clear empties the user's cart unconditionally.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Lines returns a snapshot copy in insertion order.
func (s *Store) Lines(userID string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// Subtotal is the sum of price times quantity over all lines. It is
// recomputed on every call, never cached.
func (s *Store) Subtotal(userID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, l := range s.carts[userID] {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func (s *Store) ItemCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, l := range s.carts[userID] {
		count += l.Quantity
	}
	return count
}
