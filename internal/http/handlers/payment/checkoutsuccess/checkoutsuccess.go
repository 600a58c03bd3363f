// Package checkoutsuccess реализует HTTP-обработчик подтверждения оплаты.
//
// Заказ создается только для сессии со статусом paid.
package checkoutsuccess

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
)

// Handler управляет HTTP-запросами на подтверждение оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подтверждения оплаты.
type Service interface {
	CheckoutSuccess(ctx context.Context, sessionID string) (string, error)
}

// Request — тело запроса подтверждения оплаты.
type Request struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату
// @Description Проверяет статус оплаты сессии, создает заказ и деактивирует использованный купон.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор checkout-сессии"
// @Success 200 {object} response.Response "Заказ создан"
// @Failure 400 {object} response.ErrorResponse "Сессия не оплачена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Сессия не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Платежный шлюз недоступен"
// @Router /payments/checkout-success [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkoutsuccess"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	orderUID, err := h.service.CheckoutSuccess(r.Context(), req.SessionID)
	if err != nil {
		log.Error("failed to confirm checkout", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not confirm checkout"))
		return
	}

	log.Info("order created", slog.String("order_uid", orderUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"orderId": orderUID,
		"message": "payment successful, order created",
	}))
}
