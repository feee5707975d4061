package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"
	"nawi-delivery-backend/pkg/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	jwtManager    *auth.JWTManager
	cache         Cache
	resetTokenTTL time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	jwtManager *auth.JWTManager,
	cache Cache,
	resetTokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		jwtManager:    jwtManager,
		cache:         cache,
		resetTokenTTL: resetTokenTTL,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         models.User `json:"user"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         "customer",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	pair, err := s.jwtManager.GenerateTokenPair(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		key := refreshTokenKey(user.ID.String())
		if err := s.cache.Set(ctx, key, pair.RefreshToken, 30*24*time.Hour); err != nil {
			log.Printf("failed to store refresh token: %v", err)
		}
	}

	return &AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		User:         *user,
	}, nil
}

// Logout invalidates the stored refresh token; access tokens simply expire.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, refreshTokenKey(userID))
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}

	// The token must still be the one we handed out; logout revokes it.
	if s.cache != nil {
		var stored string
		if err := s.cache.Get(ctx, refreshTokenKey(claims.UserID), &stored); err != nil || stored != refreshToken {
			return "", ErrUnauthenticated
		}
	}

	return s.jwtManager.RefreshAccessToken(refreshToken)
}

// RequestPasswordReset generates a reset token for the account. Delivery of
// the token is out of band; an unknown email is reported as success so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := randomToken()
	if err != nil {
		return err
	}

	if s.cache != nil {
		key := "password_reset:" + token
		if err := s.cache.Set(ctx, key, user.ID.String(), s.resetTokenTTL); err != nil {
			return err
		}
	}

	log.Printf("password reset requested for user %s", user.ID)
	return nil
}

// GetProfile returns the user's profile, creating the row on first read
// with a display name derived from the email local part.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	profile, err := s.profileRepo.GetByID(ctx, userUUID)
	if err == nil {
		return profile, nil
	}

	user, err := s.userRepo.GetByID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	name := strings.SplitN(user.Email, "@", 2)[0]
	now := time.Now()
	profile = &models.Profile{
		ID:        userUUID,
		FullName:  &name,
		UpdatedAt: &now,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateProfile applies a partial update; nil fields are left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.Address != nil {
		profile.Address = req.Address
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}

	now := time.Now()
	profile.UpdatedAt = &now

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func refreshTokenKey(userID string) string {
	return fmt.Sprintf("refresh_token:%s", userID)
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
