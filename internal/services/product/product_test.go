package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

type ProductRepositoryMock struct {
	mock.Mock
}

func (m *ProductRepositoryMock) CreateProduct(ctx context.Context, p models.Product) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *ProductRepositoryMock) GetProduct(ctx context.Context, productUID string) (*models.Product, error) {
	args := m.Called(ctx, productUID)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *ProductRepositoryMock) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Product)
	return list, args.Error(1)
}

func (m *ProductRepositoryMock) ListFeaturedProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Product)
	return list, args.Error(1)
}

func (m *ProductRepositoryMock) ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	args := m.Called(ctx, category)
	list, _ := args.Get(0).([]*models.Product)
	return list, args.Error(1)
}

func (m *ProductRepositoryMock) ListRandomProducts(ctx context.Context, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]*models.Product)
	return list, args.Error(1)
}

func (m *ProductRepositoryMock) ToggleFeaturedProduct(ctx context.Context, productUID string) (*models.Product, error) {
	args := m.Called(ctx, productUID)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *ProductRepositoryMock) DeleteProduct(ctx context.Context, productUID string) error {
	args := m.Called(ctx, productUID)
	return args.Error(0)
}

// CacheStub хранит значения в map как JSON, имитируя redis-кэш.
type CacheStub struct {
	values map[string][]byte
}

func newCacheStub() *CacheStub {
	return &CacheStub{values: make(map[string][]byte)}
}

func (c *CacheStub) Get(_ context.Context, key string, result any) (bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (c *CacheStub) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *CacheStub) Invalidate(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

// ImageStoreStub запоминает загруженные и удаленные изображения.
type ImageStoreStub struct {
	uploaded  []string
	destroyed []string
}

func (s *ImageStoreStub) Upload(_ context.Context, image string) (string, error) {
	s.uploaded = append(s.uploaded, image)
	return "https://images.example.com/products/" + image + ".png", nil
}

func (s *ImageStoreStub) Destroy(_ context.Context, imageURL string) error {
	s.destroyed = append(s.destroyed, imageURL)
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestProductService_ListFeatured_CacheMissAndHit(t *testing.T) {
	featured := []*models.Product{
		{UID: "p1", Name: "Shirt", IsFeatured: true},
	}

	repo := new(ProductRepositoryMock)
	// база опрашивается только один раз: второй вызов идет из кэша
	repo.On("ListFeaturedProducts", mock.Anything).Return(featured, nil).Once()

	cache := newCacheStub()
	service := NewProductService(repo, cache, &ImageStoreStub{}, newNoopLogger())

	first, err := service.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := service.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "p1", second[0].UID)

	repo.AssertExpectations(t)
}

func TestProductService_ToggleFeatured_RebuildsCache(t *testing.T) {
	repo := new(ProductRepositoryMock)
	cache := newCacheStub()
	service := NewProductService(repo, cache, &ImageStoreStub{}, newNoopLogger())

	// кэш заполнен старым списком
	require.NoError(t, cache.Set(context.Background(), "featured_products",
		[]*models.Product{{UID: "old"}}, 0))

	toggled := &models.Product{UID: "p1", IsFeatured: true}
	repo.On("ToggleFeaturedProduct", mock.Anything, "p1").Return(toggled, nil).Once()
	repo.On("ListFeaturedProducts", mock.Anything).
		Return([]*models.Product{toggled}, nil).Once()

	updated, err := service.ToggleFeatured(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, updated.IsFeatured)

	var cached []*models.Product
	found, err := cache.Get(context.Background(), "featured_products", &cached)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, cached, 1)
	assert.Equal(t, "p1", cached[0].UID)

	repo.AssertExpectations(t)
}

func TestProductService_Create_UploadsImage(t *testing.T) {
	repo := new(ProductRepositoryMock)
	images := &ImageStoreStub{}
	service := NewProductService(repo, newCacheStub(), images, newNoopLogger())

	repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
		return p.Image == "https://images.example.com/products/base64data.png"
	})).Return("p1", nil).Once()
	repo.On("GetProduct", mock.Anything, "p1").
		Return(&models.Product{UID: "p1", Name: "Shirt"}, nil).Once()

	created, err := service.Create(context.Background(), models.Product{
		Name:     "Shirt",
		Price:    49.99,
		Image:    "base64data",
		Category: "clothes",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.UID)
	assert.Len(t, images.uploaded, 1)

	repo.AssertExpectations(t)
}

func TestProductService_Create_WithoutImage(t *testing.T) {
	repo := new(ProductRepositoryMock)
	images := &ImageStoreStub{}
	service := NewProductService(repo, newCacheStub(), images, newNoopLogger())

	repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
		return p.Image == ""
	})).Return("p1", nil).Once()
	repo.On("GetProduct", mock.Anything, "p1").
		Return(&models.Product{UID: "p1"}, nil).Once()

	_, err := service.Create(context.Background(), models.Product{Name: "Shirt", Category: "clothes"})
	require.NoError(t, err)
	assert.Empty(t, images.uploaded)
}

func TestProductService_Delete(t *testing.T) {
	repo := new(ProductRepositoryMock)
	images := &ImageStoreStub{}
	service := NewProductService(repo, newCacheStub(), images, newNoopLogger())

	repo.On("GetProduct", mock.Anything, "p1").
		Return(&models.Product{UID: "p1", Image: "https://images.example.com/products/x.png"}, nil).Once()
	repo.On("DeleteProduct", mock.Anything, "p1").Return(nil).Once()

	require.NoError(t, service.Delete(context.Background(), "p1"))
	assert.Equal(t, []string{"https://images.example.com/products/x.png"}, images.destroyed)

	repo.AssertExpectations(t)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	repo := new(ProductRepositoryMock)
	service := NewProductService(repo, newCacheStub(), &ImageStoreStub{}, newNoopLogger())

	repo.On("GetProduct", mock.Anything, "missing").Return(nil, errs.ErrNotFound).Once()

	err := service.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	repo.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
}
