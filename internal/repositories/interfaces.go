package repositories

import (
	"context"
	"nawi-delivery-backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository interface for PostgreSQL user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository interface for PostgreSQL profile operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

// RestaurantRepository interface for PostgreSQL restaurant operations
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error)
}

// OrderRepository interface for PostgreSQL order operations.
// CreateWithItems persists the order header and all of its line items in a
// single database transaction: either everything is written or nothing is.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, error)
	GetByStatus(ctx context.Context, status string, limit, offset int) ([]models.Order, error)
}

// CouponRepository interface for PostgreSQL coupon operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) error
	GetActive(ctx context.Context, limit, offset int) ([]models.Coupon, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// FavouriteRepository interface for PostgreSQL favourite operations
type FavouriteRepository interface {
	Create(ctx context.Context, favourite *models.Favourite) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Favourite, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Favourite, error)
}

// NotificationRepository interface for PostgreSQL notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// MenuRepository interface for MongoDB menu-item operations
type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	GetByRestaurantID(ctx context.Context, restaurantID string, category string) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MenuCategoryRepository interface for MongoDB category operations
type MenuCategoryRepository interface {
	Create(ctx context.Context, category *models.MenuCategory) error
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.MenuCategory, error)
}
