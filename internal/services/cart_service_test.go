package services

import (
	"context"
	"testing"

	"nawi-delivery-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testDeliveryFee = 2.00

func newTestCartService(t *testing.T) (*CartService, *fakeMenuRepo, *fakeCouponRepo) {
	t.Helper()

	menuRepo := newFakeMenuRepo()
	couponRepo := newFakeCouponRepo()
	couponService := NewCouponService(couponRepo)
	return NewCartService(menuRepo, couponService, testDeliveryFee), menuRepo, couponRepo
}

func seedMenuItem(repo *fakeMenuRepo, name string, price float64) string {
	item := &models.MenuItem{
		ID:           primitive.NewObjectID(),
		RestaurantID: "rest-1",
		Name:         name,
		Price:        price,
		IsAvailable:  true,
	}
	repo.add(item)
	return item.ID.Hex()
}

func TestCartService_AddItem(t *testing.T) {
	svc, menuRepo, _ := newTestCartService(t)
	ctx := context.Background()
	burgerID := seedMenuItem(menuRepo, "Burger", 8.50)

	resp, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)

	// Adding the same item again merges into the existing line.
	resp, err = svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 2, resp.ItemCount)
	assert.InDelta(t, 17.00, resp.Subtotal, 0.001)
}

func TestCartService_AddItem_UnknownOrUnavailable(t *testing.T) {
	svc, menuRepo, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "not-a-hex-id")
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.AddItem(ctx, "user-1", primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrItemNotFound)

	soldOut := &models.MenuItem{
		ID:          primitive.NewObjectID(),
		Name:        "Sold Out Special",
		Price:       5.00,
		IsAvailable: false,
	}
	menuRepo.add(soldOut)
	_, err = svc.AddItem(ctx, "user-1", soldOut.ID.Hex())
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.Empty(t, svc.GetCart("user-1").Items)
}

func TestCartService_AddItem_UsesDiscountPrice(t *testing.T) {
	svc, menuRepo, _ := newTestCartService(t)
	ctx := context.Background()

	discounted := 6.00
	item := &models.MenuItem{
		ID:            primitive.NewObjectID(),
		Name:          "Pizza",
		Price:         9.00,
		DiscountPrice: &discounted,
		IsAvailable:   true,
	}
	menuRepo.add(item)

	resp, err := svc.AddItem(ctx, "user-1", item.ID.Hex())
	require.NoError(t, err)
	assert.InDelta(t, 6.00, resp.Subtotal, 0.001)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, menuRepo, _ := newTestCartService(t)
	ctx := context.Background()
	burgerID := seedMenuItem(menuRepo, "Burger", 8.50)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)

	resp := svc.UpdateQuantity("user-1", burgerID, 2)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)

	// Dropping to zero removes the line entirely.
	resp = svc.UpdateQuantity("user-1", burgerID, -3)
	assert.Empty(t, resp.Items)

	// A delta past zero behaves the same as removal, never negative.
	_, err = svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)
	resp = svc.UpdateQuantity("user-1", burgerID, -10)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.ItemCount)
}

func TestCartService_BillSummary(t *testing.T) {
	svc, menuRepo, _ := newTestCartService(t)
	ctx := context.Background()
	burgerID := seedMenuItem(menuRepo, "Burger", 8.50)
	friesID := seedMenuItem(menuRepo, "Fries", 3.50)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", friesID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", friesID)
	require.NoError(t, err)

	summary := svc.BillSummary("user-1")
	assert.InDelta(t, 15.50, summary.Subtotal, 0.001)
	assert.InDelta(t, testDeliveryFee, summary.DeliveryFee, 0.001)
	assert.InDelta(t, 0, summary.Discount, 0.001)
	assert.InDelta(t, 17.50, summary.Total, 0.001)
}

func TestCartService_ApplyCoupon(t *testing.T) {
	svc, menuRepo, couponRepo := newTestCartService(t)
	ctx := context.Background()
	seedCoupon(t, couponRepo, models.Coupon{
		Code: "NAWI10", DiscountType: "percentage", DiscountValue: 10,
		IsActive: true, UsageLimit: -1,
	})
	burgerID := seedMenuItem(menuRepo, "Burger", 20.00)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)

	summary, err := svc.ApplyCoupon(ctx, "user-1", "nawi10")
	require.NoError(t, err)
	assert.Equal(t, "NAWI10", summary.CouponCode)
	assert.InDelta(t, 2.00, summary.Discount, 0.001)
	assert.InDelta(t, 20.00, summary.Total, 0.001) // 20.00 + 2.00 fee - 2.00
}

func TestCartService_ApplyCoupon_InvalidResetsDiscount(t *testing.T) {
	svc, menuRepo, couponRepo := newTestCartService(t)
	ctx := context.Background()
	seedCoupon(t, couponRepo, models.Coupon{
		Code: "NAWI10", DiscountType: "percentage", DiscountValue: 10,
		IsActive: true, UsageLimit: -1,
	})
	burgerID := seedMenuItem(menuRepo, "Burger", 20.00)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, "user-1", "NAWI10")
	require.NoError(t, err)

	// A bad code both fails and wipes the previous discount.
	_, err = svc.ApplyCoupon(ctx, "user-1", "BOGUS")
	assert.ErrorIs(t, err, ErrInvalidCoupon)

	summary := svc.BillSummary("user-1")
	assert.Empty(t, summary.CouponCode)
	assert.InDelta(t, 0, summary.Discount, 0.001)
	assert.InDelta(t, 22.00, summary.Total, 0.001)
}

func TestCartService_CouponDiscountIsSnapshot(t *testing.T) {
	svc, menuRepo, couponRepo := newTestCartService(t)
	ctx := context.Background()
	seedCoupon(t, couponRepo, models.Coupon{
		Code: "NAWI10", DiscountType: "percentage", DiscountValue: 10,
		IsActive: true, UsageLimit: -1,
	})
	burgerID := seedMenuItem(menuRepo, "Burger", 20.00)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)

	summary, err := svc.ApplyCoupon(ctx, "user-1", "NAWI10")
	require.NoError(t, err)
	assert.InDelta(t, 2.00, summary.Discount, 0.001)

	// Growing the cart afterwards does not grow the pinned discount.
	_, err = svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)

	summary = svc.BillSummary("user-1")
	assert.InDelta(t, 40.00, summary.Subtotal, 0.001)
	assert.InDelta(t, 2.00, summary.Discount, 0.001)
	assert.InDelta(t, 40.00, summary.Total, 0.001)
}

func TestCartService_RemoveCoupon(t *testing.T) {
	svc, menuRepo, couponRepo := newTestCartService(t)
	ctx := context.Background()
	seedCoupon(t, couponRepo, models.Coupon{
		Code: "NAWI10", DiscountType: "percentage", DiscountValue: 10,
		IsActive: true, UsageLimit: -1,
	})
	burgerID := seedMenuItem(menuRepo, "Burger", 20.00)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, "user-1", "NAWI10")
	require.NoError(t, err)

	summary := svc.RemoveCoupon("user-1")
	assert.Empty(t, summary.CouponCode)
	assert.InDelta(t, 0, summary.Discount, 0.001)
}

func TestCartService_TotalNeverNegative(t *testing.T) {
	svc, menuRepo, couponRepo := newTestCartService(t)
	ctx := context.Background()
	seedCoupon(t, couponRepo, models.Coupon{
		Code: "FLAT50", DiscountType: "flat", DiscountValue: 50.00,
		IsActive: true, UsageLimit: -1,
	})
	cheapID := seedMenuItem(menuRepo, "Soda", 1.50)

	_, err := svc.AddItem(ctx, "user-1", cheapID)
	require.NoError(t, err)

	summary, err := svc.ApplyCoupon(ctx, "user-1", "FLAT50")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, summary.Total, 0.0)
}

func TestCartService_CompleteCheckout(t *testing.T) {
	svc, menuRepo, couponRepo := newTestCartService(t)
	ctx := context.Background()
	seedCoupon(t, couponRepo, models.Coupon{
		Code: "NAWI10", DiscountType: "percentage", DiscountValue: 10,
		IsActive: true, UsageLimit: -1,
	})
	burgerID := seedMenuItem(menuRepo, "Burger", 20.00)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, "user-1", "NAWI10")
	require.NoError(t, err)

	svc.CompleteCheckout("user-1")

	assert.Empty(t, svc.GetCart("user-1").Items)
	_, _, applied := svc.AppliedCoupon("user-1")
	assert.False(t, applied)
}

func TestCartService_PerUserIsolation(t *testing.T) {
	svc, menuRepo, _ := newTestCartService(t)
	ctx := context.Background()
	burgerID := seedMenuItem(menuRepo, "Burger", 8.50)

	_, err := svc.AddItem(ctx, "user-1", burgerID)
	require.NoError(t, err)

	assert.Len(t, svc.GetCart("user-1").Items, 1)
	assert.Empty(t, svc.GetCart("user-2").Items)

	svc.Clear("user-1")
	assert.Empty(t, svc.GetCart("user-1").Items)
}
