// Package get реализует HTTP-обработчик получения активного купона пользователя.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Handler управляет HTTP-запросами на получение купона.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики купонов.
type Service interface {
	GetActive(ctx context.Context, userUID string) (*models.Coupon, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить активный купон
// @Description Возвращает активный купон текущего пользователя или null.
// @Tags Coupons
// @Produce  json
// @Success 200 {object} response.Response "Купон пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.get"
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

	coupon, err := h.service.GetActive(r.Context(), user.UID)
	if err != nil {
		// отсутствие купона не считается ошибкой
		if errors.Is(err, errs.ErrNotFound) {
			render.JSON(w, r, response.OKWithData(map[string]any{
				"coupon": nil,
			}))
			return
		}
		log.Error("failed to get coupon", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not get coupon"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"coupon": coupon,
	}))
}
