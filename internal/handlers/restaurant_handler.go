package handlers

import (
	"net/http"
	"strconv"

	"nawi-delivery-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
	}
}

// RegisterRoutes registers the public browse routes
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	restaurants := router.Group("/restaurants")
	{
		// List and search restaurants
		restaurants.GET("", h.ListRestaurants)
		// Restaurant details
		restaurants.GET("/:restaurant_id", h.GetRestaurant)
		// Restaurant menu with categories
		restaurants.GET("/:restaurant_id/menu", h.GetMenu)
	}
}

// @Summary List restaurants
// @Description Browse or search restaurants
// @Tags restaurants
// @Produce json
// @Param q query string false "Search query"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Restaurant
// @Router /api/v1/restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	restaurants, err := h.restaurantService.ListRestaurants(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list restaurants",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// @Summary Get restaurant details
// @Tags restaurants
// @Produce json
// @Param restaurant_id path string true "Restaurant ID"
// @Success 200 {object} models.Restaurant
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/restaurants/{restaurant_id} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.restaurantService.GetRestaurant(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Restaurant not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// @Summary Get restaurant menu
// @Description Menu items and categories for a restaurant, optionally filtered by category
// @Tags restaurants
// @Produce json
// @Param restaurant_id path string true "Restaurant ID"
// @Param category query string false "Category filter"
// @Success 200 {object} services.RestaurantMenu
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/restaurants/{restaurant_id}/menu [get]
func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	menu, err := h.restaurantService.GetMenu(c.Request.Context(), c.Param("restaurant_id"), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Restaurant not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, menu)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
