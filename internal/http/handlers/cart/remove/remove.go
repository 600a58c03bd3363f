// Package remove реализует HTTP-обработчик удаления позиции из корзины.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
)

// Handler управляет HTTP-запросами на удаление позиции корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	RemoveItem(ctx context.Context, userUID, productUID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить позицию из корзины
// @Description Удаляет позицию корзины текущего пользователя.
// @Tags Cart
// @Produce  json
// @Param productId path string true "UID товара"
// @Success 200 {object} response.Response "Позиция удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Позиция не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart/{productId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.remove"
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

	productUID := chi.URLParam(r, "productId")
	if err := h.service.RemoveItem(r.Context(), user.UID, productUID); err != nil {
		log.Error("failed to remove cart item", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not remove cart item"))
		return
	}

	log.Info("cart item removed", slog.String("product_uid", productUID))
	render.JSON(w, r, response.OK("cart item removed"))
}
