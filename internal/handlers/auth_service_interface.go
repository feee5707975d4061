package handlers

import (
	"context"

	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/services"
)

// AuthServiceInterface defines the interface for auth service operations
type AuthServiceInterface interface {
	Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error)
	Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error)
	Logout(ctx context.Context, userID string) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *services.UpdateProfileRequest) (*models.Profile, error)
}
