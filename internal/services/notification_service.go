package services

import (
	"context"

	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"

	"github.com/google/uuid"
)

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListNotifications returns the user's alerts, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if limit <= 0 || limit > 50 {
		limit = 20
	}

	return s.notificationRepo.GetByUserID(ctx, userUUID, limit, offset)
}

// MarkRead flips the read flag; only the notification's owner may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return ErrUnauthenticated
	}

	id, err := uuid.Parse(notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}

	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return ErrNotificationNotFound
	}

	if notification.UserID != userUUID {
		return ErrNotificationNotFound
	}

	return s.notificationRepo.MarkRead(ctx, id)
}
