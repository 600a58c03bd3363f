// Package cookies инкапсулирует работу с сессионными cookie.
//
// Оба токена выставляются как HttpOnly cookie с SameSite=Strict;
// флаг Secure включается только в production-окружении.
package cookies

import (
	"net/http"
	"time"
)

// Имена сессионных cookie.
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

// SetPair выставляет обе сессионные cookie: access и refresh токены.
func SetPair(w http.ResponseWriter, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration, secure bool) {
	SetAccess(w, accessToken, accessTTL, secure)
	http.SetCookie(w, sessionCookie(RefreshToken, refreshToken, refreshTTL, secure))
}

// SetAccess выставляет только access-cookie. Используется на пути refresh,
// где refresh-токен остается прежним.
func SetAccess(w http.ResponseWriter, accessToken string, accessTTL time.Duration, secure bool) {
	http.SetCookie(w, sessionCookie(AccessToken, accessToken, accessTTL, secure))
}

// Clear сбрасывает обе сессионные cookie.
func Clear(w http.ResponseWriter, secure bool) {
	for _, name := range []string{AccessToken, RefreshToken} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
			Secure:   secure,
		})
	}
}

func sessionCookie(name, value string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   secure,
	}
}
