// Package list реализует HTTP-обработчик получения корзины пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Handler управляет HTTP-запросами на получение корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.CartProduct, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить корзину
// @Description Возвращает товары корзины текущего пользователя вместе с количеством.
// @Tags Cart
// @Produce  json
// @Success 200 {object} response.Response "Товары корзины"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.list"
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

	items, err := h.service.List(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to list cart products", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not list cart products"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"cartItems": items,
	}))
}
