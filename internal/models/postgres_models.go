package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StringArray type for PostgreSQL jsonb-backed string lists
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, s)
}

// User model - PostgreSQL (auth identity)
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:customer" json:"role"` // customer, staff, admin
	IsVerified   bool      `gorm:"default:false" json:"is_verified"`
	Status       string    `gorm:"default:active" json:"status"` // active, inactive, suspended
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile model - PostgreSQL. One row per user, created lazily on first
// read; every display field is optional.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"` // same as User.ID
	FullName  *string    `json:"full_name"`
	Address   *string    `json:"address"`
	Phone     *string    `json:"phone"`
	AvatarURL *string    `json:"avatar_url"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Restaurant model - PostgreSQL
type Restaurant struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	CuisineTypes StringArray `gorm:"type:jsonb" json:"cuisine_types"`
	Rating       float64     `gorm:"default:0" json:"rating"`
	DeliveryTime string      `json:"delivery_time"` // e.g. "15-25 min"
	DeliveryFee  float64     `json:"delivery_fee"`
	IsOpen       bool        `gorm:"default:true" json:"is_open"`
	Status       string      `gorm:"default:active" json:"status"` // active, inactive, closed
	CreatedAt    time.Time   `json:"created_at"`
}

// Order status values. The backend is the sole authority on transitions;
// clients only ever create orders in StatusPending.
const (
	StatusPending    = "pending"
	StatusPreparing  = "preparing"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Order model - PostgreSQL (critical transactional data)
type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Total     float64     `gorm:"not null" json:"total"`
	Status    string      `gorm:"default:pending" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem model - PostgreSQL. A denormalized snapshot of one cart line:
// name and price are copied at checkout time so later menu edits never
// rewrite order history.
type OrderItem struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemName string    `gorm:"not null" json:"item_name"`
	Quantity int       `gorm:"not null" json:"quantity"`
	Price    float64   `gorm:"not null" json:"price"`
}

// Coupon model - PostgreSQL
type Coupon struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code          string    `gorm:"uniqueIndex;not null" json:"code"`
	Description   string    `json:"description"`
	DiscountType  string    `gorm:"not null" json:"discount_type"` // flat, percentage
	DiscountValue float64   `gorm:"not null" json:"discount_value"`
	MaxDiscount   float64   `json:"max_discount"`
	MinOrderValue float64   `json:"min_order_value"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidTo       time.Time `json:"valid_to"`
	UsageLimit    int       `gorm:"default:-1" json:"usage_limit"` // -1 for unlimited
	UsedCount     int       `gorm:"default:0" json:"used_count"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
}

// Favourite model - PostgreSQL. Either a restaurant or a menu item.
type Favourite struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	RestaurantID *uuid.UUID  `gorm:"type:uuid" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	MenuItemID   *string     `json:"menu_item_id"` // MongoDB reference
	CreatedAt    time.Time   `json:"created_at"`
}

// Notification model - PostgreSQL (the storefront's alerts feed)
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"` // order_confirmation, order_status_update
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
