package handlers

import (
	"context"
	"errors"
	"net/http"

	"nawi-delivery-backend/internal/middleware"
	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// CheckoutServiceInterface is the slice of the order service the cart
// surface needs to place an order.
type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, userID string) (*models.Order, error)
}

type CartHandler struct {
	cartService  CartServiceInterface
	orderService CheckoutServiceInterface
}

func NewCartHandler(cartService CartServiceInterface, orderService CheckoutServiceInterface) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
	}
}

// RegisterRoutes registers the routes for cart management
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	// All cart routes require authentication
	cart := router.Group("/cart", authMiddleware.AuthRequired())
	{
		// Get the user's cart
		cart.GET("", h.GetCart)
		// Add item to cart
		cart.POST("/items", h.AddToCart)
		// Update cart item quantity
		cart.PUT("/items/:item_id", h.UpdateCartItem)
		// Remove item from cart
		cart.DELETE("/items/:item_id", h.RemoveFromCart)
		// Clear cart
		cart.DELETE("", h.ClearCart)
		// Apply coupon
		cart.POST("/coupons", h.ApplyCoupon)
		// Remove coupon
		cart.DELETE("/coupons", h.RemoveCoupon)
		// Get bill summary
		cart.GET("/bill-summary", h.GetBillSummary)
		// Checkout cart
		cart.POST("/checkout", limiter.Strict(), h.Checkout)
	}
}

// @Summary Get user's cart
// @Description Get current user's cart contents
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.CartResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	c.JSON(http.StatusOK, h.cartService.GetCart(userID))
}

type addToCartRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
}

// @Summary Add item to cart
// @Description Add one unit of a menu item to the cart; adding the same item again increments its quantity
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body addToCartRequest true "Menu item to add"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, req.MenuItemID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Item not found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to add item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, cart)
}

type updateCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// @Summary Update cart item quantity
// @Description Apply a signed quantity delta to a cart line; reaching zero removes the line
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item_id path string true "Product ID"
// @Param request body updateCartItemRequest true "Quantity delta"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cart/items/{item_id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.cartService.UpdateQuantity(userID, c.Param("item_id"), req.Delta))
}

// @Summary Remove item from cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Param item_id path string true "Product ID"
// @Success 200 {object} services.CartResponse
// @Router /api/v1/cart/items/{item_id} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	c.JSON(http.StatusOK, h.cartService.RemoveItem(userID, c.Param("item_id")))
}

// @Summary Clear cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	h.cartService.Clear(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

type applyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// @Summary Apply coupon
// @Description Validate a coupon code against the current cart and pin its discount
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body applyCouponRequest true "Coupon code"
// @Success 200 {object} services.BillSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cart/coupons [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	summary, err := h.cartService.ApplyCoupon(c.Request.Context(), userID, req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid coupon",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary Remove coupon
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.BillSummaryResponse
// @Router /api/v1/cart/coupons [delete]
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	c.JSON(http.StatusOK, h.cartService.RemoveCoupon(userID))
}

// @Summary Get bill summary
// @Description Subtotal, delivery fee, discount and total for the current cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.BillSummaryResponse
// @Router /api/v1/cart/bill-summary [get]
func (h *CartHandler) GetBillSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	c.JSON(http.StatusOK, h.cartService.BillSummary(userID))
}

// @Summary Checkout cart
// @Description Create an order from the current cart; on success the cart is emptied
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Cart is empty",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrCheckoutInFlight):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "Checkout in progress",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "Unauthorized",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Checkout failed",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}
