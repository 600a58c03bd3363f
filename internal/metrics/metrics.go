// Package metrics содержит prometheus-метрики HTTP-слоя приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal — счетчик HTTP-запросов по методу, маршруту и статусу.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ecommerce_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration — гистограмма длительности обработки запросов.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ecommerce_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// CheckoutSessionsTotal — счетчик созданных checkout-сессий.
var CheckoutSessionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "ecommerce_checkout_sessions_total",
		Help: "Total number of created checkout sessions",
	},
)

// OrdersCreatedTotal — счетчик заказов, созданных после подтверждения оплаты.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "ecommerce_orders_created_total",
		Help: "Total number of orders created after successful payments",
	},
)
