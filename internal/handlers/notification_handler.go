package handlers

import (
	"net/http"
	"strconv"

	"nawi-delivery-backend/internal/middleware"
	"nawi-delivery-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// RegisterRoutes registers the alerts routes
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	notifications := router.Group("/notifications", authMiddleware.AuthRequired())
	{
		notifications.GET("", h.ListNotifications)
		notifications.PATCH("/:notification_id/read", h.MarkRead)
	}
}

// @Summary List notifications
// @Description The user's alerts feed, newest first
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Notification
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
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

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list notifications",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// @Summary Mark notification as read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param notification_id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/notifications/{notification_id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found",
		})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, c.Param("notification_id")); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Notification not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
