package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

const productColumns = `uid, name, description, price, image, category, is_featured, created_at, updated_at`

// CreateProduct сохраняет новый товар и возвращает его UID.
func (s *Storage) CreateProduct(ctx context.Context, p models.Product) (string, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO products (name, description, price, image, category, is_featured)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Image, p.Category, p.IsFeatured).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetProduct возвращает товар по UID.
func (s *Storage) GetProduct(ctx context.Context, productUID string) (*models.Product, error) {
	const op = "storage.GetProduct"
	query := `SELECT ` + productColumns + ` FROM products WHERE uid = $1`
	p := &models.Product{}
	if err := s.scanProduct(s.DB.QueryRowContext(ctx, query, productUID), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListProducts возвращает все товары каталога.
func (s *Storage) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "storage.ListProducts"
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return s.queryProducts(ctx, op, query)
}

// ListFeaturedProducts возвращает товары с установленным флагом is_featured.
func (s *Storage) ListFeaturedProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "storage.ListFeaturedProducts"
	query := `SELECT ` + productColumns + ` FROM products WHERE is_featured = TRUE ORDER BY created_at DESC`
	return s.queryProducts(ctx, op, query)
}

// ListProductsByCategory возвращает товары заданной категории.
func (s *Storage) ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	const op = "storage.ListProductsByCategory"
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`
	return s.queryProducts(ctx, op, query, category)
}

// ListRandomProducts возвращает случайную выборку товаров для блока рекомендаций.
func (s *Storage) ListRandomProducts(ctx context.Context, limit int) ([]*models.Product, error) {
	const op = "storage.ListRandomProducts"
	query := `SELECT ` + productColumns + ` FROM products ORDER BY random() LIMIT $1`
	return s.queryProducts(ctx, op, query, limit)
}

// ToggleFeaturedProduct инвертирует флаг is_featured и возвращает обновленный товар.
func (s *Storage) ToggleFeaturedProduct(ctx context.Context, productUID string) (*models.Product, error) {
	const op = "storage.ToggleFeaturedProduct"
	query := `UPDATE products
			  SET is_featured = NOT is_featured, updated_at = now()
			  WHERE uid = $1
			  RETURNING ` + productColumns
	p := &models.Product{}
	if err := s.scanProduct(s.DB.QueryRowContext(ctx, query, productUID), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// DeleteProduct удаляет товар по UID. Отсутствие записи — errs.ErrNotFound.
func (s *Storage) DeleteProduct(ctx context.Context, productUID string) error {
	const op = "storage.DeleteProduct"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE uid = $1`, productUID)
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

// CountProducts возвращает общее число товаров каталога.
func (s *Storage) CountProducts(ctx context.Context) (int, error) {
	const op = "storage.CountProducts"
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanProduct(row rowScanner, p *models.Product) error {
	var image sql.NullString
	if err := row.Scan(&p.UID, &p.Name, &p.Description, &p.Price, &image,
		&p.Category, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	if image.Valid {
		p.Image = image.String
	}
	return nil
}

func (s *Storage) queryProducts(ctx context.Context, op, query string, args ...any) ([]*models.Product, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		var p models.Product
		if err = s.scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
