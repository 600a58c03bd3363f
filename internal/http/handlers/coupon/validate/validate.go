// Package validate реализует HTTP-обработчик проверки кода купона.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Handler управляет HTTP-запросами на проверку купона.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики купонов.
type Service interface {
	Validate(ctx context.Context, code, userUID string) (*models.Coupon, error)
}

// Request — тело запроса проверки купона.
type Request struct {
	Code string `json:"code" validate:"required"`
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
// @Summary Проверить код купона
// @Description Проверяет, что купон принадлежит пользователю и активен. Истекший купон деактивируется.
// @Tags Coupons
// @Accept  json
// @Produce  json
// @Param request body Request true "Код купона"
// @Success 200 {object} response.Response "Купон действителен"
// @Failure 400 {object} response.ErrorResponse "Купон истек"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Купон не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupons/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.validate"
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

	coupon, err := h.service.Validate(r.Context(), req.Code, user.UID)
	if err != nil {
		log.Error("failed to validate coupon", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		if errors.Is(err, errs.ErrInvalid) {
			render.JSON(w, r, response.Error("coupon is expired"))
			return
		}
		render.JSON(w, r, response.Error("coupon not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"code":               coupon.Code,
		"discountPercentage": coupon.DiscountPercentage,
	}))
}
