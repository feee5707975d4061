package handlers

import (
	"errors"
	"net/http"

	"nawi-delivery-backend/internal/middleware"
	"nawi-delivery-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type FavouriteHandler struct {
	favouriteService *services.FavouriteService
}

func NewFavouriteHandler(favouriteService *services.FavouriteService) *FavouriteHandler {
	return &FavouriteHandler{
		favouriteService: favouriteService,
	}
}

// RegisterRoutes registers the favourites routes
func (h *FavouriteHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	favourites := router.Group("/favourites", authMiddleware.AuthRequired())
	{
		favourites.GET("", h.ListFavourites)
		favourites.POST("", h.AddFavourite)
		favourites.DELETE("/:favourite_id", h.RemoveFavourite)
	}
}

// @Summary List favourites
// @Tags favourites
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Favourite
// @Router /api/v1/favourites [get]
func (h *FavouriteHandler) ListFavourites(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	favourites, err := h.favouriteService.ListFavourites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list favourites",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, favourites)
}

// @Summary Add favourite
// @Description Mark a restaurant or menu item as a favourite
// @Tags favourites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.AddFavouriteRequest true "Favourite target"
// @Success 201 {object} models.Favourite
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/favourites [post]
func (h *FavouriteHandler) AddFavourite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	var req services.AddFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	favourite, err := h.favouriteService.AddFavourite(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to add favourite",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, favourite)
}

// @Summary Remove favourite
// @Tags favourites
// @Security BearerAuth
// @Produce json
// @Param favourite_id path string true "Favourite ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/favourites/{favourite_id} [delete]
func (h *FavouriteHandler) RemoveFavourite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	err := h.favouriteService.RemoveFavourite(c.Request.Context(), userID, c.Param("favourite_id"))
	if err != nil {
		if errors.Is(err, services.ErrFavouriteNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Favourite not found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to remove favourite",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favourite removed"})
}
