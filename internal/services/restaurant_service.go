package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"

	"github.com/google/uuid"
)

const restaurantCacheTTL = 5 * time.Minute

// RestaurantService serves the browse surface: restaurant lists from
// Postgres, menus and categories from MongoDB, both behind a short-lived
// Redis cache.
type RestaurantService struct {
	restaurantRepo repositories.RestaurantRepository
	menuRepo       repositories.MenuRepository
	categoryRepo   repositories.MenuCategoryRepository
	cache          Cache
}

func NewRestaurantService(
	restaurantRepo repositories.RestaurantRepository,
	menuRepo repositories.MenuRepository,
	categoryRepo repositories.MenuCategoryRepository,
	cache Cache,
) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		categoryRepo:   categoryRepo,
		cache:          cache,
	}
}

// RestaurantMenu bundles everything the storefront's restaurant screen
// needs into one payload.
type RestaurantMenu struct {
	Restaurant models.Restaurant     `json:"restaurant"`
	Categories []models.MenuCategory `json:"categories"`
	Items      []models.MenuItem     `json:"items"`
}

func (s *RestaurantService) ListRestaurants(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("restaurants:%s:%d:%d", query, limit, offset)
	if s.cache != nil {
		var cached []models.Restaurant
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	restaurants, err := s.restaurantRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, restaurants, restaurantCacheTTL); err != nil {
			log.Printf("failed to cache restaurant list: %v", err)
		}
	}

	return restaurants, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurantID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrRestaurantNotFound
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, ErrRestaurantNotFound
	}

	return restaurant, nil
}

// GetMenu returns the restaurant with its categories and menu items,
// optionally filtered by category name.
func (s *RestaurantService) GetMenu(ctx context.Context, restaurantID string, category string) (*RestaurantMenu, error) {
	restaurant, err := s.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("menu:%s:%s", restaurantID, category)
	if s.cache != nil {
		var cached RestaurantMenu
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	categories, err := s.categoryRepo.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	items, err := s.menuRepo.GetByRestaurantID(ctx, restaurantID, category)
	if err != nil {
		return nil, err
	}

	menu := &RestaurantMenu{
		Restaurant: *restaurant,
		Categories: categories,
		Items:      items,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, menu, restaurantCacheTTL); err != nil {
			log.Printf("failed to cache menu: %v", err)
		}
	}

	return menu, nil
}
