package services

import (
	"context"
	"testing"
	"time"

	"nawi-delivery-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, repo *fakeNotificationRepo, userID uuid.UUID) *models.Notification {
	t.Helper()

	n := &models.Notification{
		UserID:    userID,
		Type:      "order_confirmation",
		Title:     "Order Confirmed",
		Message:   "Your order has been received",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), n))
	return n
}

func TestMarkRead_Owner(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()
	owner := uuid.New()
	n := seedNotification(t, repo, owner)

	require.NoError(t, svc.MarkRead(ctx, owner.String(), n.ID.String()))

	stored, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
}

func TestMarkRead_RejectsOtherUsers(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()
	owner := uuid.New()
	n := seedNotification(t, repo, owner)

	// Another authenticated user must not be able to touch the row.
	err := svc.MarkRead(ctx, uuid.New().String(), n.ID.String())
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	stored, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsRead)
}

func TestMarkRead_UnknownOrInvalidID(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()
	owner := uuid.New()

	err := svc.MarkRead(ctx, owner.String(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	err = svc.MarkRead(ctx, owner.String(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	err = svc.MarkRead(ctx, "", uuid.New().String())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestListNotifications_OnlyOwn(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()
	seedNotification(t, repo, alice)
	seedNotification(t, repo, bob)

	notifications, err := svc.ListNotifications(ctx, alice.String(), 20, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, alice, notifications[0].UserID)
}
