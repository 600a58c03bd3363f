// Package checkoutcreate реализует HTTP-обработчик создания checkout-сессии
// в платежном шлюзе.
package checkoutcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
	services "github.com/magabrotheeeer/ecommerce-store/internal/services/payment"
)

// Handler управляет HTTP-запросами на создание checkout-сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики оформления заказа.
type Service interface {
	CreateCheckoutSession(ctx context.Context, user *models.User,
		products []services.CheckoutProduct, couponCode string) (*services.CheckoutResult, error)
}

// Request — тело запроса создания checkout-сессии.
type Request struct {
	Products   []services.CheckoutProduct `json:"products"`
	CouponCode string                     `json:"couponCode"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать checkout-сессию
// @Description Считает итог заказа, применяет купон и создает сессию в платежном шлюзе.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Позиции заказа и код купона"
// @Success 200 {object} response.Response "Идентификатор сессии и итог заказа"
// @Failure 400 {object} response.ErrorResponse "Пустой список товаров"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Платежный шлюз недоступен"
// @Router /payments/create-checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkoutcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	result, err := h.service.CreateCheckoutSession(r.Context(), user, req.Products, req.CouponCode)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not create checkout session"))
		return
	}

	log.Info("checkout session created", slog.String("session_id", result.SessionID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"sessionId":   result.SessionID,
		"url":         result.URL,
		"totalAmount": result.TotalAmount,
	}))
}
