package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"nawi-delivery-backend/internal/middleware"
	"nawi-delivery-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers the order history and staff routes
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	orders := router.Group("/orders", authMiddleware.AuthRequired())
	{
		// Order history, newest first
		orders.GET("", h.ListOrders)
		// Single order, owner only
		orders.GET("/:order_id", h.GetOrder)
		// Staff-side status transition
		orders.PATCH("/:order_id/status", authMiddleware.StaffRequired(), h.UpdateStatus)
	}
}

// @Summary List user's orders
// @Description Order history for the current user, newest first
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Order
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// @Summary Get order details
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/orders/{order_id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("order_id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Order not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Update order status
// @Description Move an order along pending -> preparing -> delivering -> completed, or cancel it
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param request body updateStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/orders/{order_id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("order_id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Order not found",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid transition",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to update status",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
