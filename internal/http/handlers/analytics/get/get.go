// Package get реализует HTTP-обработчик аналитики для панели администратора.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	services "github.com/magabrotheeeer/ecommerce-store/internal/services/analytics"
)

// Handler управляет HTTP-запросами на получение аналитики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики аналитики.
type Service interface {
	GetSummary(ctx context.Context) (*services.Summary, error)
	GetDailySales(ctx context.Context) ([]services.DailyPoint, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить аналитику магазина
// @Description Возвращает сводные показатели и продажи за последние восемь дней. Доступно только администратору.
// @Tags Analytics
// @Produce  json
// @Success 200 {object} response.Response "Показатели магазина"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		log.Error("failed to get analytics summary", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not get analytics"))
		return
	}

	daily, err := h.service.GetDailySales(r.Context())
	if err != nil {
		log.Error("failed to get daily sales", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not get analytics"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"analyticsData":  summary,
		"dailySalesData": daily,
	}))
}
