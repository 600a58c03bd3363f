package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

func TestStorage_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("database ready after migrations", func(t *testing.T) {
		require.NoError(t, CheckDatabaseReady(storage))
	})

	t.Run("register user and duplicate email", func(t *testing.T) {
		uid := createTestUser(t, storage, "alice@example.com")
		require.NotEmpty(t, uid)

		user, err := storage.GetUserByEmail(ctx, "ALICE@example.com")
		require.NoError(t, err)
		// email хранится в нижнем регистре, поиск регистронезависимый
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, uid, user.UID)

		_, err = storage.RegisterUser(ctx, models.User{
			Name:         "Another",
			Email:        "Alice@Example.com",
			PasswordHash: "x",
			Role:         models.RoleCustomer,
		})
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("products catalog", func(t *testing.T) {
		shirtUID := createTestProduct(t, storage, "Shirt", 49.99)
		_ = createTestProduct(t, storage, "Shoes", 100.02)

		all, err := storage.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		featured, err := storage.ListFeaturedProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, featured)

		toggled, err := storage.ToggleFeaturedProduct(ctx, shirtUID)
		require.NoError(t, err)
		assert.True(t, toggled.IsFeatured)

		featured, err = storage.ListFeaturedProducts(ctx)
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, shirtUID, featured[0].UID)

		random, err := storage.ListRandomProducts(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, random, 1)

		_, err = storage.GetProduct(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("cart mutations are cumulative", func(t *testing.T) {
		userUID := createTestUser(t, storage, "cart@example.com")
		productUID := createTestProduct(t, storage, "Cap", 15)

		// двойное добавление наращивает количество одной позиции
		require.NoError(t, storage.AddCartItem(ctx, userUID, productUID))
		require.NoError(t, storage.AddCartItem(ctx, userUID, productUID))

		items, err := storage.ListCartProducts(ctx, userUID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)

		require.NoError(t, storage.IncrementCartItemQuantity(ctx, userUID, productUID, 3))
		items, err = storage.ListCartProducts(ctx, userUID)
		require.NoError(t, err)
		assert.Equal(t, 5, items[0].Quantity)

		err = storage.IncrementCartItemQuantity(ctx, userUID, "00000000-0000-0000-0000-000000000000", 1)
		assert.ErrorIs(t, err, errs.ErrNotFound)

		require.NoError(t, storage.RemoveCartItem(ctx, userUID, productUID))
		err = storage.RemoveCartItem(ctx, userUID, productUID)
		assert.ErrorIs(t, err, errs.ErrNotFound)

		require.NoError(t, storage.AddCartItem(ctx, userUID, productUID))
		require.NoError(t, storage.ClearCart(ctx, userUID))
		items, err = storage.ListCartProducts(ctx, userUID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("coupon per user is replaced", func(t *testing.T) {
		userUID := createTestUser(t, storage, "coupon@example.com")

		_, err := storage.CreateCoupon(ctx, models.Coupon{
			Code:               "FIRST10",
			DiscountPercentage: 10,
			IsActive:           true,
			ExpirationDate:     time.Now().Add(24 * time.Hour),
			UserUID:            userUID,
		})
		require.NoError(t, err)

		// новый купон затирает предыдущий
		_, err = storage.CreateCoupon(ctx, models.Coupon{
			Code:               "GIFTABC123",
			DiscountPercentage: 10,
			IsActive:           true,
			ExpirationDate:     time.Now().Add(24 * time.Hour),
			UserUID:            userUID,
		})
		require.NoError(t, err)

		coupon, err := storage.GetActiveCouponByUser(ctx, userUID)
		require.NoError(t, err)
		assert.Equal(t, "GIFTABC123", coupon.Code)

		_, err = storage.FindActiveCoupon(ctx, "FIRST10", userUID)
		assert.ErrorIs(t, err, errs.ErrNotFound)

		require.NoError(t, storage.DeactivateCoupon(ctx, "GIFTABC123", userUID))
		_, err = storage.GetActiveCouponByUser(ctx, userUID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("orders and analytics", func(t *testing.T) {
		userUID := createTestUser(t, storage, "orders@example.com")
		productUID := createTestProduct(t, storage, "Console", 200)

		orderUID, err := storage.CreateOrder(ctx, models.Order{
			UserUID: userUID,
			Items: []models.OrderItem{
				{ProductUID: productUID, Quantity: 1, Price: 200},
			},
			TotalAmount:     200,
			StripeSessionID: "cs_test_123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, orderUID)

		count, revenue, err := storage.CountOrdersAndRevenue(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.InDelta(t, 200.0, revenue, 0.001)

		now := time.Now().UTC()
		rows, err := storage.DailySales(ctx, now.Add(-24*time.Hour), now.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, now.Format("2006-01-02"), rows[0].Date)
		assert.Equal(t, 1, rows[0].Sales)
		assert.InDelta(t, 200.0, rows[0].Revenue, 0.001)

		users, err := storage.CountUsers(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, users, 1)
	})
}
