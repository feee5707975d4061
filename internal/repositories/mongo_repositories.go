package repositories

import (
	"context"
	"nawi-delivery-backend/internal/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Menu Repository
type menuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) MenuRepository {
	return &menuRepository{
		collection: db.Collection("menu_items"),
	}
}

func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	item.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetByRestaurantID(ctx context.Context, restaurantID string, category string) ([]models.MenuItem, error) {
	filter := bson.M{"restaurant_id": restaurantID, "is_available": true}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	item.UpdatedAt = time.Now()

	filter := bson.M{"_id": item.ID}
	update := bson.M{"$set": item}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *menuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Menu Category Repository
type menuCategoryRepository struct {
	collection *mongo.Collection
}

func NewMenuCategoryRepository(db *mongo.Database) MenuCategoryRepository {
	return &menuCategoryRepository{
		collection: db.Collection("menu_categories"),
	}
}

func (r *menuCategoryRepository) Create(ctx context.Context, category *models.MenuCategory) error {
	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return err
	}
	category.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *menuCategoryRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.MenuCategory, error) {
	filter := bson.M{"restaurant_id": restaurantID, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.MenuCategory
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
