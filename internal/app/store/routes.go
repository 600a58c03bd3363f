// Package store предоставляет маршруты интернет-магазина.
package store

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	analyticsget "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/analytics/get"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/auth/signin"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/auth/signout"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/auth/signup"
	cartadd "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/cart/add"
	cartclear "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/cart/clear"
	cartlist "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/cart/list"
	cartremove "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/cart/remove"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/cart/updatequantity"
	couponget "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/coupon/get"
	couponvalidate "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/coupon/validate"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/payment/checkoutcreate"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/payment/checkoutsuccess"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/product/category"
	productcreate "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/product/create"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/product/featured"
	productlist "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/product/list"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/product/recommendations"
	productremove "github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/handlers/product/togglefeatured"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"

	analyticsservice "github.com/magabrotheeeer/ecommerce-store/internal/services/analytics"
	authservice "github.com/magabrotheeeer/ecommerce-store/internal/services/auth"
	cartservice "github.com/magabrotheeeer/ecommerce-store/internal/services/cart"
	couponservice "github.com/magabrotheeeer/ecommerce-store/internal/services/coupon"
	paymentservice "github.com/magabrotheeeer/ecommerce-store/internal/services/payment"
	productservice "github.com/magabrotheeeer/ecommerce-store/internal/services/product"
)

// Services — сервисы бизнес-уровня, которыми пользуются обработчики.
type Services struct {
	Auth      *authservice.AuthService
	Product   *productservice.ProductService
	Cart      *cartservice.CartService
	Coupon    *couponservice.CouponService
	Payment   *paymentservice.PaymentService
	Analytics *analyticsservice.AnalyticsService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, secure bool) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	limiter := rate.NewLimiter(20, 60)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

		// Открытые конечные точки
		r.Post("/auth/sign-up", signup.New(logger, s.Auth, secure).ServeHTTP)
		r.Post("/auth/sign-in", signin.New(logger, s.Auth, secure).ServeHTTP)
		r.Post("/auth/sign-out", signout.New(logger, s.Auth, secure).ServeHTTP)
		r.Post("/auth/refresh-token", refresh.New(logger, s.Auth, secure).ServeHTTP)

		r.Get("/products/featured", featured.New(logger, s.Product).ServeHTTP)
		r.Get("/products/recommendations", recommendations.New(logger, s.Product).ServeHTTP)
		r.Get("/products/category/{category}", category.New(logger, s.Product).ServeHTTP)

		// Группа с аутентификацией по access-токену из cookie
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(s.Auth, logger))

			r.Get("/auth/profile", profile.New(logger).ServeHTTP)

			r.Get("/cart", cartlist.New(logger, s.Cart).ServeHTTP)
			r.Post("/cart", cartadd.New(logger, s.Cart).ServeHTTP)
			r.Patch("/cart/{productId}", updatequantity.New(logger, s.Cart).ServeHTTP)
			r.Delete("/cart/{productId}", cartremove.New(logger, s.Cart).ServeHTTP)
			r.Delete("/cart", cartclear.New(logger, s.Cart).ServeHTTP)

			r.Get("/coupons", couponget.New(logger, s.Coupon).ServeHTTP)
			r.Post("/coupons/validate", couponvalidate.New(logger, s.Coupon).ServeHTTP)

			r.Post("/payments/create-checkout-session", checkoutcreate.New(logger, s.Payment).ServeHTTP)
			r.Post("/payments/checkout-success", checkoutsuccess.New(logger, s.Payment).ServeHTTP)

			// Группа только для администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))

				r.Get("/products", productlist.New(logger, s.Product).ServeHTTP)
				r.Post("/products", productcreate.New(logger, s.Product).ServeHTTP)
				r.Patch("/products/{id}", togglefeatured.New(logger, s.Product).ServeHTTP)
				r.Delete("/products/{id}", productremove.New(logger, s.Product).ServeHTTP)

				r.Get("/analytics", analyticsget.New(logger, s.Analytics).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
