// Package services содержит логику каталога товаров: списки, рекомендации,
// создание с загрузкой изображения и кэш избранных товаров.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ecommerce-store/internal/imagestore"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Ключ кэша списка избранных товаров.
const featuredCacheKey = "featured_products"

// Размер блока рекомендаций на главной.
const recommendationsLimit = 4

// ProductRepository описывает контракт для работы с товарами в базе данных.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p models.Product) (string, error)
	GetProduct(ctx context.Context, productUID string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error)
	ListRandomProducts(ctx context.Context, limit int) ([]*models.Product, error)
	ToggleFeaturedProduct(ctx context.Context, productUID string) (*models.Product, error)
	DeleteProduct(ctx context.Context, productUID string) error
}

// FeaturedCache описывает кэш для списка избранных товаров.
type FeaturedCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// ProductService отвечает за каталог товаров.
type ProductService struct {
	products ProductRepository
	cache    FeaturedCache
	images   imagestore.Store
	log      *slog.Logger
}

// NewProductService создает новый экземпляр ProductService.
func NewProductService(products ProductRepository, cache FeaturedCache,
	images imagestore.Store, log *slog.Logger) *ProductService {
	return &ProductService{
		products: products,
		cache:    cache,
		images:   images,
		log:      log,
	}
}

// List возвращает все товары каталога.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	const op = "services.product.List"
	result, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFeatured возвращает избранные товары, читая сквозь кэш:
// промах заполняет кэш из базы. Ошибки кэша не фатальны.
func (s *ProductService) ListFeatured(ctx context.Context) ([]*models.Product, error) {
	const op = "services.product.ListFeatured"

	var cached []*models.Product
	found, err := s.cache.Get(ctx, featuredCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read featured products cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.products.ListFeaturedProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, featuredCacheKey, result, 0); err != nil {
		s.log.Warn("failed to update featured products cache", sl.Err(err))
	}
	return result, nil
}

// ListRecommendations возвращает случайную подборку товаров.
func (s *ProductService) ListRecommendations(ctx context.Context) ([]*models.Product, error) {
	const op = "services.product.ListRecommendations"
	result, err := s.products.ListRandomProducts(ctx, recommendationsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListByCategory возвращает товары заданной категории.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	const op = "services.product.ListByCategory"
	result, err := s.products.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Create загружает изображение (если передано) во внешнее хранилище
// и сохраняет товар; в базе хранится secure URL изображения.
func (s *ProductService) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	const op = "services.product.Create"

	if p.Image != "" {
		imageURL, err := s.images.Upload(ctx, p.Image)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Image = imageURL
	}

	uid, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.products.GetProduct(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ToggleFeatured инвертирует флаг избранного и перестраивает кэш.
func (s *ProductService) ToggleFeatured(ctx context.Context, productUID string) (*models.Product, error) {
	const op = "services.product.ToggleFeatured"

	updated, err := s.products.ToggleFeaturedProduct(ctx, productUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	featured, err := s.products.ListFeaturedProducts(ctx)
	if err != nil {
		s.log.Warn("failed to rebuild featured products cache", sl.Err(err))
		return updated, nil
	}
	if err = s.cache.Set(ctx, featuredCacheKey, featured, 0); err != nil {
		s.log.Warn("failed to update featured products cache", sl.Err(err))
	}
	return updated, nil
}

// Delete удаляет товар вместе с его изображением.
// Удаление изображения best-effort: его сбой не отменяет удаление записи.
func (s *ProductService) Delete(ctx context.Context, productUID string) error {
	const op = "services.product.Delete"

	p, err := s.products.GetProduct(ctx, productUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if p.Image != "" {
		if err = s.images.Destroy(ctx, p.Image); err != nil {
			s.log.Warn("failed to delete product image", sl.Err(err))
		}
	}
	if err = s.products.DeleteProduct(ctx, productUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
