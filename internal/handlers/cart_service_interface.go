package handlers

import (
	"context"

	"nawi-delivery-backend/internal/services"
)

// CartServiceInterface defines the contract for cart service
type CartServiceInterface interface {
	AddItem(ctx context.Context, userID, menuItemID string) (*services.CartResponse, error)
	UpdateQuantity(userID, productID string, delta int) *services.CartResponse
	RemoveItem(userID, productID string) *services.CartResponse
	Clear(userID string)
	GetCart(userID string) *services.CartResponse
	ApplyCoupon(ctx context.Context, userID, code string) (*services.BillSummaryResponse, error)
	RemoveCoupon(userID string) *services.BillSummaryResponse
	BillSummary(userID string) *services.BillSummaryResponse
}
