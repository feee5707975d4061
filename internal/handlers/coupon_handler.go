package handlers

import (
	"net/http"
	"strconv"

	"nawi-delivery-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// RegisterRoutes registers the promotions routes
func (h *CouponHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/promotions", h.ListPromotions)
}

// @Summary List active promotions
// @Description All currently active coupons, for the promotions tab
// @Tags promotions
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} models.Coupon
// @Router /api/v1/promotions [get]
func (h *CouponHandler) ListPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	coupons, err := h.couponService.GetActiveCoupons(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list promotions",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, coupons)
}
