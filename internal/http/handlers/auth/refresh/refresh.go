// Package refresh реализует HTTP-обработчик обновления access-токена.
//
// Обработчик читает refresh-токен из cookie, проверяет его побайтовое
// совпадение с session-хранилищем и выставляет новый access-токен.
package refresh

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/cookies"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
)

// Handler управляет HTTP-запросами на обновление access-токена.
type Handler struct {
	log     *slog.Logger
	service Service
	secure  bool
}

// Service описывает интерфейс бизнес-логики обновления токена.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, time.Duration, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, secure bool) *Handler {
	return &Handler{
		log:     log,
		service: service,
		secure:  secure,
	}
}

// ServeHTTP godoc
// @Summary Обновить access-токен
// @Description Обменивает refresh-токен из cookie на новый access-токен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Токен обновлен"
// @Failure 401 {object} response.ErrorResponse "Refresh-токен отсутствует или отозван"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/refresh-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie, err := r.Cookie(cookies.RefreshToken)
	if err != nil {
		log.Info("missing refresh token cookie")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no refresh token provided"))
		return
	}

	accessToken, accessTTL, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		log.Error("failed to refresh token", sl.Err(err))
		render.Status(r, response.StatusFromError(err))
		render.JSON(w, r, response.Error("invalid refresh token"))
		return
	}

	cookies.SetAccess(w, accessToken, accessTTL, h.secure)

	log.Info("access token refreshed")
	render.JSON(w, r, response.OK("token refreshed successfully"))
}
