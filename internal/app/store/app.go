// Package store собирает приложение интернет-магазина: подключения
// к базе, кэшу и брокеру, платежный шлюз, хранилище изображений,
// сервисы и HTTP-сервер с graceful shutdown.
package store

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/ecommerce-store/internal/cache"
	"github.com/magabrotheeeer/ecommerce-store/internal/config"
	"github.com/magabrotheeeer/ecommerce-store/internal/gateway"
	"github.com/magabrotheeeer/ecommerce-store/internal/imagestore"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/jwt"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/ecommerce-store/internal/migrations"
	"github.com/magabrotheeeer/ecommerce-store/internal/storage/repository"

	analyticsservice "github.com/magabrotheeeer/ecommerce-store/internal/services/analytics"
	authservice "github.com/magabrotheeeer/ecommerce-store/internal/services/auth"
	cartservice "github.com/magabrotheeeer/ecommerce-store/internal/services/cart"
	couponservice "github.com/magabrotheeeer/ecommerce-store/internal/services/coupon"
	paymentservice "github.com/magabrotheeeer/ecommerce-store/internal/services/payment"
	productservice "github.com/magabrotheeeer/ecommerce-store/internal/services/product"

	"github.com/streadway/amqp"
)

// App — собранное приложение магазина.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
	rabbitConn *amqp.Connection
}

// New собирает приложение из конфигурации: подключает зависимости,
// применяет миграции и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitURL, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitChannel, err := rabbitmq.SetupChannel(rabbitConn, cfg.OrderEventQueue)
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewOrderEventPublisher(rabbitChannel)

	paymentGateway, err := gateway.NewStripeGateway(cfg.StripeSecretKey)
	if err != nil {
		return nil, err
	}
	imageStore, err := imagestore.NewCloudinaryStore(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		return nil, err
	}

	tokenMaker := jwt.NewTokenMaker(cfg.AccessSecretKey, cfg.RefreshSecretKey,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authService := authservice.NewAuthService(db, cacheRedis, tokenMaker,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL, logger)
	productService := productservice.NewProductService(db, cacheRedis, imageStore, logger)
	cartService := cartservice.NewCartService(db, db)
	couponService := couponservice.NewCouponService(db)
	paymentService := paymentservice.NewPaymentService(paymentGateway, db, db,
		publisher, cfg.ClientURL, logger)
	analyticsService := analyticsservice.NewAnalyticsService(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:      authService,
		Product:   productService,
		Cart:      cartService,
		Coupon:    couponService,
		Payment:   paymentService,
		Analytics: analyticsService,
	}, cfg.IsProd())

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		rabbitConn: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		_ = a.rabbitConn.Close()
		return err
	}
}
