// Package togglefeatured реализует HTTP-обработчик переключения флага избранного.
package togglefeatured

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Handler управляет HTTP-запросами на переключение флага избранного.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики избранных товаров.
type Service interface {
	ToggleFeatured(ctx context.Context, productUID string) (*models.Product, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переключить флаг избранного
// @Description Инвертирует флаг избранного товара и перестраивает кэш. Доступно только администратору.
// @Tags Products
// @Produce  json
// @Param id path string true "UID товара"
// @Success 200 {object} response.Response "Обновленный товар"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.togglefeatured"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	productUID := chi.URLParam(r, "id")

	product, err := h.service.ToggleFeatured(r.Context(), productUID)
	if err != nil {
		log.Error("failed to toggle featured product", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not toggle featured product"))
		return
	}

	log.Info("featured flag toggled",
		slog.String("product_uid", product.UID),
		slog.Bool("is_featured", product.IsFeatured),
	)
	render.JSON(w, r, response.OKWithData(product))
}
