// Package category реализует HTTP-обработчик списка товаров категории.
package category

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

// Handler управляет HTTP-запросами на получение товаров категории.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики категорий.
type Service interface {
	ListByCategory(ctx context.Context, category string) ([]*models.Product, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить товары категории
// @Description Возвращает товары заданной категории. Публичная конечная точка.
// @Tags Products
// @Produce  json
// @Param category path string true "Название категории"
// @Success 200 {object} response.Response "Товары категории"
// @Failure 400 {object} response.ErrorResponse "Категория не указана"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/category/{category} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.category"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	category := chi.URLParam(r, "category")
	if category == "" {
		log.Error("category is empty")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("category is required"))
		return
	}

	products, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		log.Error("failed to list products by category", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not list products by category"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
	}))
}
