package services

import (
	"context"
	"time"

	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"

	"github.com/google/uuid"
)

type FavouriteService struct {
	favouriteRepo repositories.FavouriteRepository
}

func NewFavouriteService(favouriteRepo repositories.FavouriteRepository) *FavouriteService {
	return &FavouriteService{favouriteRepo: favouriteRepo}
}

type AddFavouriteRequest struct {
	RestaurantID *string `json:"restaurant_id"`
	MenuItemID   *string `json:"menu_item_id"`
}

func (s *FavouriteService) AddFavourite(ctx context.Context, userID string, req *AddFavouriteRequest) (*models.Favourite, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if req.RestaurantID == nil && req.MenuItemID == nil {
		return nil, ErrFavouriteNotFound
	}

	favourite := &models.Favourite{
		UserID:     userUUID,
		MenuItemID: req.MenuItemID,
		CreatedAt:  time.Now(),
	}

	if req.RestaurantID != nil {
		restaurantUUID, err := uuid.Parse(*req.RestaurantID)
		if err != nil {
			return nil, ErrRestaurantNotFound
		}
		favourite.RestaurantID = &restaurantUUID
	}

	if err := s.favouriteRepo.Create(ctx, favourite); err != nil {
		return nil, err
	}

	return favourite, nil
}

func (s *FavouriteService) ListFavourites(ctx context.Context, userID string) ([]models.Favourite, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return s.favouriteRepo.GetByUserID(ctx, userUUID)
}

// RemoveFavourite deletes the entry; only the owner may remove it.
func (s *FavouriteService) RemoveFavourite(ctx context.Context, userID, favouriteID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return ErrUnauthenticated
	}

	favUUID, err := uuid.Parse(favouriteID)
	if err != nil {
		return ErrFavouriteNotFound
	}

	favourite, err := s.favouriteRepo.GetByID(ctx, favUUID)
	if err != nil {
		return ErrFavouriteNotFound
	}

	if favourite.UserID != userUUID {
		return ErrFavouriteNotFound
	}

	return s.favouriteRepo.Delete(ctx, favUUID)
}
