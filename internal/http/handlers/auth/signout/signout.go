// Package signout реализует HTTP-обработчик выхода из системы.
//
// Выход всегда успешен: refresh-токен отзывается, cookie очищаются,
// нечитаемый или отсутствующий токен не считается ошибкой.
package signout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ecommerce-store/internal/http/response"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/cookies"
)

// Handler управляет HTTP-запросами на выход из системы.
type Handler struct {
	log     *slog.Logger
	service Service
	secure  bool
}

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, refreshToken string)
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
// @Summary Выйти из системы
// @Description Отзывает refresh-токен и очищает cookie. Всегда успешен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Успешный выход"
// @Router /auth/sign-out [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var refreshToken string
	if cookie, err := r.Cookie(cookies.RefreshToken); err == nil {
		refreshToken = cookie.Value
	}
	h.service.Logout(r.Context(), refreshToken)

	cookies.Clear(w, h.secure)

	log.Info("user logged out")
	render.JSON(w, r, response.OK("logged out successfully"))
}
