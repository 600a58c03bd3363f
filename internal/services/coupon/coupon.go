// Package services содержит логику купонов: выдача активного купона
// пользователя и проверка кода перед оформлением заказа.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// CouponRepository описывает контракт для работы с купонами в базе данных.
type CouponRepository interface {
	GetActiveCouponByUser(ctx context.Context, userUID string) (*models.Coupon, error)
	FindActiveCoupon(ctx context.Context, code, userUID string) (*models.Coupon, error)
	DeactivateCoupon(ctx context.Context, code, userUID string) error
}

// CouponService отвечает за купоны пользователя.
type CouponService struct {
	coupons CouponRepository
	now     func() time.Time
}

// NewCouponService создает новый экземпляр CouponService.
func NewCouponService(coupons CouponRepository) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

// GetActive возвращает активный купон пользователя.
// Отсутствие купона — errs.ErrNotFound.
func (s *CouponService) GetActive(ctx context.Context, userUID string) (*models.Coupon, error) {
	const op = "services.coupon.GetActive"
	coupon, err := s.coupons.GetActiveCouponByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return coupon, nil
}

// Validate проверяет код купона: купон должен принадлежать пользователю
// и быть активным. Истекший купон деактивируется и возвращает errs.ErrInvalid.
func (s *CouponService) Validate(ctx context.Context, code, userUID string) (*models.Coupon, error) {
	const op = "services.coupon.Validate"

	coupon, err := s.coupons.FindActiveCoupon(ctx, code, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if coupon.IsExpired(s.now()) {
		if err = s.coupons.DeactivateCoupon(ctx, code, userUID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: coupon is expired: %w", op, errs.ErrInvalid)
	}
	return coupon, nil
}
