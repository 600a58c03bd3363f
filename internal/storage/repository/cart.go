package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Корзина хранится отдельными строками cart_items, поэтому каждая мутация —
// один атомарный оператор, а не чтение-изменение-запись всего документа.

// AddCartItem добавляет товар в корзину пользователя.
// Если позиция уже есть, её количество атомарно увеличивается на единицу.
func (s *Storage) AddCartItem(ctx context.Context, userUID, productUID string) error {
	const op = "storage.AddCartItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cart_items (user_uid, product_uid, quantity)
			  VALUES ($1, $2, 1)
			  ON CONFLICT (user_uid, product_uid)
			  DO UPDATE SET quantity = cart_items.quantity + 1`
	if _, err := s.DB.ExecContext(ctx, query, userUID, productUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrementCartItemQuantity атомарно добавляет delta к количеству позиции.
// Отсутствие позиции в корзине — errs.ErrNotFound.
func (s *Storage) IncrementCartItemQuantity(ctx context.Context, userUID, productUID string, delta int) error {
	const op = "storage.IncrementCartItemQuantity"
	query := `UPDATE cart_items
			  SET quantity = quantity + $3
			  WHERE user_uid = $1 AND product_uid = $2`
	res, err := s.DB.ExecContext(ctx, query, userUID, productUID, delta)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}

// RemoveCartItem удаляет позицию из корзины пользователя.
// Отсутствие позиции — errs.ErrNotFound.
func (s *Storage) RemoveCartItem(ctx context.Context, userUID, productUID string) error {
	const op = "storage.RemoveCartItem"
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_uid = $1 AND product_uid = $2`, userUID, productUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}

// ClearCart удаляет все позиции корзины пользователя.
func (s *Storage) ClearCart(ctx context.Context, userUID string) error {
	const op = "storage.ClearCart"
	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_uid = $1`, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListCartProducts возвращает товары корзины пользователя вместе с количеством.
func (s *Storage) ListCartProducts(ctx context.Context, userUID string) ([]*models.CartProduct, error) {
	const op = "storage.ListCartProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.uid, p.name, p.description, p.price, p.image, p.category,
			      p.is_featured, p.created_at, p.updated_at, ci.quantity
			  FROM cart_items ci
			  JOIN products p ON p.uid = ci.product_uid
			  WHERE ci.user_uid = $1
			  ORDER BY p.name`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CartProduct
	for rows.Next() {
		var cp models.CartProduct
		var image sql.NullString
		if err = rows.Scan(&cp.UID, &cp.Name, &cp.Description, &cp.Price, &image,
			&cp.Category, &cp.IsFeatured, &cp.CreatedAt, &cp.UpdatedAt, &cp.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if image.Valid {
			cp.Image = image.String
		}
		result = append(result, &cp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
