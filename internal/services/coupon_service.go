package services

import (
	"context"
	"time"

	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"
)

type CouponService struct {
	couponRepo repositories.CouponRepository
}

func NewCouponService(couponRepo repositories.CouponRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
	}
}

type CouponValidationResponse struct {
	Valid          bool           `json:"valid"`
	DiscountType   string         `json:"discount_type,omitempty"`
	DiscountValue  float64        `json:"discount_value,omitempty"`
	DiscountAmount float64        `json:"discount_amount,omitempty"`
	Coupon         *models.Coupon `json:"coupon,omitempty"`
}

// ValidateCoupon resolves a code case-insensitively and computes the
// discount against the given order amount. Every rejection path returns
// ErrInvalidCoupon: the storefront shows one generic "invalid coupon"
// message regardless of why the code did not apply.
func (s *CouponService) ValidateCoupon(ctx context.Context, code string, orderAmount float64) (*CouponValidationResponse, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, ErrInvalidCoupon
	}

	if !coupon.IsActive {
		return nil, ErrInvalidCoupon
	}

	now := time.Now()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidTo) {
		return nil, ErrInvalidCoupon
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, ErrInvalidCoupon
	}

	if coupon.MinOrderValue > 0 && orderAmount < coupon.MinOrderValue {
		return nil, ErrInvalidCoupon
	}

	var discountAmount float64
	if coupon.DiscountType == "percentage" {
		discountAmount = orderAmount * (coupon.DiscountValue / 100)
		if coupon.MaxDiscount > 0 && discountAmount > coupon.MaxDiscount {
			discountAmount = coupon.MaxDiscount
		}
	} else {
		discountAmount = coupon.DiscountValue
	}

	// A discount can never exceed what it discounts.
	if discountAmount > orderAmount {
		discountAmount = orderAmount
	}

	return &CouponValidationResponse{
		Valid:          true,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: discountAmount,
		Coupon:         coupon,
	}, nil
}

// GetActiveCoupons backs the storefront's promotions tab.
func (s *CouponService) GetActiveCoupons(ctx context.Context, page, limit int) ([]models.Coupon, error) {
	offset := (page - 1) * limit
	return s.couponRepo.GetActive(ctx, limit, offset)
}

// MarkUsed bumps the usage counter after a successful checkout.
func (s *CouponService) MarkUsed(ctx context.Context, coupon *models.Coupon) error {
	return s.couponRepo.IncrementUsage(ctx, coupon.ID)
}

// SeedLaunchCoupon inserts the launch coupon if it is not present yet.
// Called once at startup so a fresh database recognizes the code
// advertised in the app.
func (s *CouponService) SeedLaunchCoupon(ctx context.Context, code string, percent float64) error {
	if _, err := s.couponRepo.GetByCode(ctx, code); err == nil {
		return nil
	}

	return s.couponRepo.Create(ctx, &models.Coupon{
		Code:          code,
		Description:   "Launch discount",
		DiscountType:  "percentage",
		DiscountValue: percent,
		ValidFrom:     time.Now(),
		ValidTo:       time.Now().AddDate(1, 0, 0),
		UsageLimit:    -1,
		IsActive:      true,
	})
}
