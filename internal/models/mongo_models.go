package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem model - MongoDB (flexible catalog data)
type MenuItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID  string             `bson:"restaurant_id" json:"restaurant_id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	DiscountPrice *float64           `bson:"discount_price,omitempty" json:"discount_price"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category" json:"category"`
	Tags          []string           `bson:"tags" json:"tags"`
	IsAvailable   bool               `bson:"is_available" json:"is_available"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// EffectivePrice returns the price the shopper actually pays.
func (m *MenuItem) EffectivePrice() float64 {
	if m.DiscountPrice != nil && *m.DiscountPrice > 0 {
		return *m.DiscountPrice
	}
	return m.Price
}

// MenuCategory model - MongoDB
type MenuCategory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	Name         string             `bson:"name" json:"name"`
	Icon         string             `bson:"icon" json:"icon"`
	SortOrder    int                `bson:"sort_order" json:"sort_order"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
}
