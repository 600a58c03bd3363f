// Package featured реализует HTTP-обработчик списка избранных товаров.
//
// Список читается сквозь кэш: промах заполняет его из базы.
package featured

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Handler управляет HTTP-запросами на получение избранных товаров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики избранных товаров.
type Service interface {
	ListFeatured(ctx context.Context) ([]*models.Product, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить избранные товары
// @Description Возвращает товары с флагом избранного. Публичная конечная точка.
// @Tags Products
// @Produce  json
// @Success 200 {object} response.Response "Список избранных товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/featured [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.featured"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.ListFeatured(r.Context())
	if err != nil {
		log.Error("failed to list featured products", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not list featured products"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
	}))
}
