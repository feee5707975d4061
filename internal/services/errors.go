package services

import "errors"

// Validation errors are recovered locally and surfaced as user-facing
// messages; repository errors bubble up unwrapped.
var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrCheckoutInFlight     = errors.New("a checkout is already in progress")
	ErrInvalidCoupon        = errors.New("invalid coupon code")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrItemNotFound         = errors.New("menu item not found")
	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrFavouriteNotFound    = errors.New("favourite not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrBadCredentials       = errors.New("invalid email or password")
)
