package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const user = "user-1"

func burger() Product {
	return Product{ID: "p1", Name: "Burger", Price: 8.50, Image: "burger.jpg", RestaurantID: "r1"}
}

func soda() Product {
	return Product{ID: "p2", Name: "Soda", Price: 3.50, Image: "soda.jpg", RestaurantID: "r1"}
}

func TestAddItem_NewLine(t *testing.T) {
	s := NewStore()
	s.AddItem(user, burger())

	lines := s.Lines(user)
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 8.50, lines[0].Price)
}

func TestAddItem_SameProductTwiceIncrementsQuantity(t *testing.T) {
	s := NewStore()
	s.AddItem(user, burger())
	s.AddItem(user, burger())

	lines := s.Lines(user)
	require.Len(t, lines, 1, "adding the same product twice must not create a second line")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, s.ItemCount(user))
}

func TestChangeQuantity(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Store)
		productID string
		delta     int
		wantLines int
		wantQty   int
	}{
		{
			name:      "increment existing line",
			setup:     func(s *Store) { s.AddItem(user, burger()) },
			productID: "p1",
			delta:     1,
			wantLines: 1,
			wantQty:   2,
		},
		{
			name: "decrement keeps line above zero",
			setup: func(s *Store) {
				s.AddItem(user, burger())
				s.AddItem(user, burger())
			},
			productID: "p1",
			delta:     -1,
			wantLines: 1,
			wantQty:   1,
		},
		{
			name:      "decrement to zero removes the line",
			setup:     func(s *Store) { s.AddItem(user, burger()) },
			productID: "p1",
			delta:     -1,
			wantLines: 0,
		},
		{
			name:      "large negative delta clamps at zero and removes",
			setup:     func(s *Store) { s.AddItem(user, burger()) },
			productID: "p1",
			delta:     -10,
			wantLines: 0,
		},
		{
			name:      "unknown product is a no-op",
			setup:     func(s *Store) { s.AddItem(user, burger()) },
			productID: "missing",
			delta:     -1,
			wantLines: 1,
			wantQty:   1,
		},
		{
			name:      "unknown product with positive delta does not create a line",
			setup:     func(s *Store) {},
			productID: "ghost",
			delta:     1,
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			tt.setup(s)

			s.ChangeQuantity(user, tt.productID, tt.delta)

			lines := s.Lines(user)
			require.Len(t, lines, tt.wantLines)
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQty, lines[0].Quantity)
			}
			for _, l := range lines {
				assert.Greater(t, l.Quantity, 0, "no line with quantity <= 0 may remain")
			}
		})
	}
}

func TestRemoveItem(t *testing.T) {
	s := NewStore()
	s.AddItem(user, burger())
	s.AddItem(user, soda())

	s.RemoveItem(user, "p1")
	lines := s.Lines(user)
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	// removing an absent product is a no-op
	s.RemoveItem(user, "p1")
	assert.Len(t, s.Lines(user), 1)
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddItem(user, burger())
	s.AddItem(user, soda())

	s.Clear(user)

	assert.Empty(t, s.Lines(user))
	assert.Equal(t, 0.0, s.Subtotal(user))
	assert.Equal(t, 0, s.ItemCount(user))
}

func TestDerivedValues(t *testing.T) {
	s := NewStore()
	s.AddItem(user, burger()) // 8.50 x1
	s.AddItem(user, soda())   // 3.50
	s.AddItem(user, soda())   // 3.50 x2

	assert.InDelta(t, 15.50, s.Subtotal(user), 1e-9)
	assert.Equal(t, 3, s.ItemCount(user))

	// derived values track every mutation
	s.ChangeQuantity(user, "p2", -1)
	assert.InDelta(t, 12.00, s.Subtotal(user), 1e-9)
	assert.Equal(t, 2, s.ItemCount(user))
}

func TestItemCountMatchesLineQuantities(t *testing.T) {
	s := NewStore()
	ops := []func(){
		func() { s.AddItem(user, burger()) },
		func() { s.AddItem(user, soda()) },
		func() { s.AddItem(user, burger()) },
		func() { s.ChangeQuantity(user, "p2", 3) },
		func() { s.ChangeQuantity(user, "p1", -1) },
		func() { s.RemoveItem(user, "p2") },
		func() { s.AddItem(user, soda()) },
		func() { s.ChangeQuantity(user, "p1", -5) },
	}

	for _, op := range ops {
		op()

		sum := 0
		for _, l := range s.Lines(user) {
			require.Greater(t, l.Quantity, 0)
			sum += l.Quantity
		}
		assert.Equal(t, sum, s.ItemCount(user))
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	s.AddItem("alice", burger())
	s.AddItem("bob", soda())

	assert.Equal(t, 1, s.ItemCount("alice"))
	assert.Equal(t, 1, s.ItemCount("bob"))

	s.Clear("alice")
	assert.Equal(t, 0, s.ItemCount("alice"))
	assert.Equal(t, 1, s.ItemCount("bob"))
}

func TestLinesReturnsSnapshotCopy(t *testing.T) {
	s := NewStore()
	s.AddItem(user, burger())

	lines := s.Lines(user)
	lines[0].Quantity = 99

	assert.Equal(t, 1, s.Lines(user)[0].Quantity)
}

func TestStableIterationOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(user, burger())
	s.AddItem(user, soda())
	s.AddItem(user, Product{ID: "p3", Name: "Fries", Price: 2.00, RestaurantID: "r1"})
	s.AddItem(user, soda())

	ids := []string{}
	for _, l := range s.Lines(user) {
		ids = append(ids, l.ProductID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
}
