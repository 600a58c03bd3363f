package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

const couponColumns = `uid, code, discount_percentage, is_active, expiration_date, user_uid, created_at`

// CreateCoupon сохраняет купон пользователя, затирая предыдущий:
// у пользователя может быть не более одного купона.
func (s *Storage) CreateCoupon(ctx context.Context, c models.Coupon) (string, error) {
	const op = "storage.CreateCoupon"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO coupons (code, discount_percentage, is_active, expiration_date, user_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_uid)
			  DO UPDATE SET code = EXCLUDED.code,
			      discount_percentage = EXCLUDED.discount_percentage,
			      is_active = EXCLUDED.is_active,
			      expiration_date = EXCLUDED.expiration_date,
			      created_at = now()
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		c.Code, c.DiscountPercentage, c.IsActive, c.ExpirationDate, c.UserUID).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetActiveCouponByUser возвращает активный купон пользователя.
// Отсутствие купона — errs.ErrNotFound.
func (s *Storage) GetActiveCouponByUser(ctx context.Context, userUID string) (*models.Coupon, error) {
	const op = "storage.GetActiveCouponByUser"
	query := `SELECT ` + couponColumns + `
			  FROM coupons
			  WHERE user_uid = $1 AND is_active = TRUE`
	return s.scanCoupon(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// FindActiveCoupon возвращает активный купон пользователя по коду.
// Купон чужого пользователя или неактивный код — errs.ErrNotFound.
func (s *Storage) FindActiveCoupon(ctx context.Context, code, userUID string) (*models.Coupon, error) {
	const op = "storage.FindActiveCoupon"
	query := `SELECT ` + couponColumns + `
			  FROM coupons
			  WHERE code = $1 AND user_uid = $2 AND is_active = TRUE`
	return s.scanCoupon(s.DB.QueryRowContext(ctx, query, code, userUID), op)
}

// DeactivateCoupon снимает флаг is_active с купона пользователя по коду.
func (s *Storage) DeactivateCoupon(ctx context.Context, code, userUID string) error {
	const op = "storage.DeactivateCoupon"
	query := `UPDATE coupons
			  SET is_active = FALSE
			  WHERE code = $1 AND user_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, code, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) scanCoupon(row *sql.Row, op string) (*models.Coupon, error) {
	c := &models.Coupon{}
	if err := row.Scan(&c.UID, &c.Code, &c.DiscountPercentage, &c.IsActive,
		&c.ExpirationDate, &c.UserUID, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}
