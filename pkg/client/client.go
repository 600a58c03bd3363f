// Package client предоставляет HTTP-клиент магазина с cookie-сессией
// и прозрачным обновлением access-токена.
//
// Транспорт перехватывает ответ 401, выполняет один общий запрос
// обновления токена (конкурентные запросы разделяют его через
// singleflight) и повторяет исходный запрос ровно один раз.
// При неудачном обновлении сессия очищается, исходный 401 отдается
// вызывающему.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const refreshPath = "/api/v1/auth/refresh-token"

// Заголовок-маркер повторенного запроса, наружу не уходит осмысленно:
// сервер его игнорирует, транспорт по нему отличает повтор от первой попытки.
const retryHeader = "X-Session-Retry"

// Сессионные cookie, которые очищаются при неудачном обновлении.
var sessionCookies = []string{"accessToken", "refreshToken"}

// Client — HTTP-клиент магазина с cookie-jar и автообновлением токена.
type Client struct {
	*http.Client
	baseURL string
}

// New создает клиент для сервера по базовому URL.
func New(baseURL string) (*Client, error) {
	const op = "client.New"

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// путь обязан быть абсолютным: jar отдает cookie только для путей с ведущим слешем
	refreshURL := *parsed
	refreshURL.Path = refreshPath

	transport := &sessionTransport{
		base:       http.DefaultTransport,
		jar:        jar,
		refreshURL: &refreshURL,
		group:      new(singleflight.Group),
	}
	return &Client{
		Client: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		baseURL: parsed.String(),
	}, nil
}

// BaseURL возвращает базовый URL сервера.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// sessionTransport повторяет запрос после обновления access-токена.
type sessionTransport struct {
	base       http.RoundTripper
	jar        http.CookieJar
	refreshURL *url.URL
	group      *singleflight.Group
}

// RoundTrip выполняет запрос и на 401 пытается обновить access-токен.
// Повторяется не более одного раза; сам запрос обновления не повторяется.
func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if req.URL.Path == t.refreshURL.Path || req.Header.Get(retryHeader) != "" {
		return resp, nil
	}
	// запрос с неповторяемым телом не переигрывается
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	// общий запрос обновления для всех конкурентных 401
	if _, err, _ = t.group.Do("refresh", func() (any, error) {
		return nil, t.refresh(req.Context())
	}); err != nil {
		t.clearSession()
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	retry := req.Clone(req.Context())
	retry.Header.Set(retryHeader, "1")
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		retry.Body = body
	}
	// cookie повторного запроса берутся из jar, где уже лежит новый access-токен
	retry.Header.Del("Cookie")
	for _, cookie := range t.jar.Cookies(retry.URL) {
		retry.AddCookie(cookie)
	}
	return t.base.RoundTrip(retry)
}

// refresh выполняет запрос обновления access-токена и кладет
// полученные cookie в jar.
func (t *sessionTransport) refresh(ctx context.Context) error {
	const op = "client.refresh"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, cookie := range t.jar.Cookies(t.refreshURL) {
		req.AddCookie(cookie)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: refresh failed with status %d", op, resp.StatusCode)
	}
	t.jar.SetCookies(t.refreshURL, resp.Cookies())
	return nil
}

// clearSession удаляет сессионные cookie из jar: форсированный выход
// после неудачного обновления токена.
func (t *sessionTransport) clearSession() {
	expired := make([]*http.Cookie, 0, len(sessionCookies))
	for _, name := range sessionCookies {
		expired = append(expired, &http.Cookie{Name: name, Value: "", MaxAge: -1})
	}
	t.jar.SetCookies(t.refreshURL, expired)
}
