package services

import (
	"context"
	"sync"

	"nawi-delivery-backend/internal/cart"
	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService owns the in-memory cart store and the coupon applied on top
// of it. Carts are session state: they are deliberately not persisted and
// vanish on restart. The applied discount is a snapshot of the subtotal at
// apply time; it is not re-evaluated as the cart changes afterwards, only
// on the next apply or at checkout.
type CartService struct {
	store         *cart.Store
	menuRepo      repositories.MenuRepository
	couponService *CouponService
	deliveryFee   float64

	mu      sync.Mutex
	applied map[string]appliedCoupon
}

type appliedCoupon struct {
	code     string
	discount float64
	coupon   *models.Coupon
}

func NewCartService(
	menuRepo repositories.MenuRepository,
	couponService *CouponService,
	deliveryFee float64,
) *CartService {
	return &CartService{
		store:         cart.NewStore(),
		menuRepo:      menuRepo,
		couponService: couponService,
		deliveryFee:   deliveryFee,
		applied:       make(map[string]appliedCoupon),
	}
}

type CartResponse struct {
	Items     []cart.Line `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	ItemCount int         `json:"item_count"`
}

type BillSummaryResponse struct {
	Items       []cart.Line `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	DeliveryFee float64     `json:"delivery_fee"`
	CouponCode  string      `json:"coupon_code,omitempty"`
	Discount    float64     `json:"discount"`
	Total       float64     `json:"total"`
}

// AddItem looks the menu item up in the catalog and adds one unit of it to
// the user's cart, snapshotting the current effective price into the line.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID string) (*CartResponse, error) {
	itemID, err := primitive.ObjectIDFromHex(menuItemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil || !item.IsAvailable {
		return nil, ErrItemNotFound
	}

	s.store.AddItem(userID, cart.Product{
		ID:           item.ID.Hex(),
		Name:         item.Name,
		Price:        item.EffectivePrice(),
		Image:        item.Image,
		RestaurantID: item.RestaurantID,
	})

	return s.GetCart(userID), nil
}

// UpdateQuantity applies a signed delta to a line, removing it when the
// quantity reaches zero. Unknown product IDs are a no-op.
func (s *CartService) UpdateQuantity(userID, productID string, delta int) *CartResponse {
	s.store.ChangeQuantity(userID, productID, delta)
	return s.GetCart(userID)
}

func (s *CartService) RemoveItem(userID, productID string) *CartResponse {
	s.store.RemoveItem(userID, productID)
	return s.GetCart(userID)
}

func (s *CartService) Clear(userID string) {
	s.store.Clear(userID)
}

func (s *CartService) GetCart(userID string) *CartResponse {
	return &CartResponse{
		Items:     s.store.Lines(userID),
		Subtotal:  s.store.Subtotal(userID),
		ItemCount: s.store.ItemCount(userID),
	}
}

func (s *CartService) Lines(userID string) []cart.Line {
	return s.store.Lines(userID)
}

// ApplyCoupon validates the code against the current subtotal and pins the
// resulting discount amount. An unrecognized or inapplicable code resets
// any previously applied discount to zero before the error is returned.
func (s *CartService) ApplyCoupon(ctx context.Context, userID, code string) (*BillSummaryResponse, error) {
	subtotal := s.store.Subtotal(userID)

	validation, err := s.couponService.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		s.mu.Lock()
		delete(s.applied, userID)
		s.mu.Unlock()
		return nil, ErrInvalidCoupon
	}

	s.mu.Lock()
	s.applied[userID] = appliedCoupon{
		code:     validation.Coupon.Code,
		discount: validation.DiscountAmount,
		coupon:   validation.Coupon,
	}
	s.mu.Unlock()

	return s.BillSummary(userID), nil
}

func (s *CartService) RemoveCoupon(userID string) *BillSummaryResponse {
	s.mu.Lock()
	delete(s.applied, userID)
	s.mu.Unlock()
	return s.BillSummary(userID)
}

// AppliedCoupon returns the pinned coupon for the user, if any.
func (s *CartService) AppliedCoupon(userID string) (*models.Coupon, float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applied[userID]
	if !ok {
		return nil, 0, false
	}
	return a.coupon, a.discount, true
}

// BillSummary computes subtotal + delivery fee - discount, clamped at
// zero. The delivery fee is a configured constant.
func (s *CartService) BillSummary(userID string) *BillSummaryResponse {
	subtotal := s.store.Subtotal(userID)

	s.mu.Lock()
	a := s.applied[userID]
	s.mu.Unlock()

	total := subtotal + s.deliveryFee - a.discount
	if total < 0 {
		total = 0
	}

	return &BillSummaryResponse{
		Items:       s.store.Lines(userID),
		Subtotal:    subtotal,
		DeliveryFee: s.deliveryFee,
		CouponCode:  a.code,
		Discount:    a.discount,
		Total:       total,
	}
}

// CompleteCheckout empties the cart and resets the applied coupon. Called
// by the order service only after the order has been persisted.
func (s *CartService) CompleteCheckout(userID string) {
	s.store.Clear(userID)

	s.mu.Lock()
	delete(s.applied, userID)
	s.mu.Unlock()
}
