// Package updatequantity реализует HTTP-обработчик изменения количества
// позиции корзины.
//
// Ноль удаляет позицию, положительное значение атомарно прибавляется
// к сохраненному количеству.
package updatequantity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
)

// Handler управляет HTTP-запросами на изменение количества позиции.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	UpdateQuantity(ctx context.Context, userUID, productUID string, quantity int) error
}

// Request — тело запроса изменения количества.
// Quantity — указатель, чтобы отличать отсутствующее поле от нуля.
type Request struct {
	Quantity *int `json:"quantity" validate:"required"`
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
// @Summary Изменить количество позиции
// @Description Ноль удаляет позицию корзины, положительное значение прибавляется к сохраненному количеству.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param productId path string true "UID товара"
// @Param request body Request true "Новое количество"
// @Success 200 {object} response.Response "Количество обновлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или отрицательное количество"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Позиция не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart/{productId} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.updatequantity"
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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	productUID := chi.URLParam(r, "productId")
	if err := h.service.UpdateQuantity(r.Context(), user.UID, productUID, *req.Quantity); err != nil {
		log.Error("failed to update cart item quantity", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not update cart item quantity"))
		return
	}

	log.Info("cart item quantity updated",
		slog.String("product_uid", productUID),
		slog.Int("quantity", *req.Quantity),
	)
	render.JSON(w, r, response.OK("cart item quantity updated"))
}
