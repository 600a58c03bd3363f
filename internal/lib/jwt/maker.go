// Package jwt реализует выпуск и проверку пары JWT токенов сессии.
//
// Maker определяет интерфейс для работы с парой токенов: короткоживущий
// access-токен и долгоживущий refresh-токен, подписанные разными секретами.
// MakerImpl — конкретная реализация поверх настроенных секретов и TTL.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и парсинга пары JWT токенов.
//
// Access-токен авторизует отдельные запросы, refresh-токен обменивается
// на новый access-токен; ротация refresh-токена отслеживается во внешнем
// session-хранилище, сам Maker состояния не хранит.
type Maker interface {
	// GeneratePair выпускает пару access+refresh токенов для пользователя.
	GeneratePair(userUID, role string) (accessToken, refreshToken string, err error)
	// GenerateAccess выпускает только новый access-токен (путь refresh).
	GenerateAccess(userUID, role string) (string, error)
	// ParseAccess проверяет access-токен и возвращает его claims.
	ParseAccess(tokenStr string) (*CustomClaims, error)
	// ParseRefresh проверяет refresh-токен и возвращает его claims.
	ParseRefresh(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с двумя секретными ключами
// и временем жизни для каждого из токенов.
type MakerImpl struct {
	accessSecret  string        // Секретный ключ для подписи access-токенов.
	refreshSecret string        // Секретный ключ для подписи refresh-токенов.
	accessTTL     time.Duration // Время жизни access-токена.
	refreshTTL    time.Duration // Время жизни refresh-токена.
}

// NewTokenMaker создаёт новый экземпляр MakerImpl на основе пары секретов и TTL.
func NewTokenMaker(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL возвращает время жизни refresh-токена.
// Используется как TTL записи в session-хранилище и maxAge cookie.
func (j *MakerImpl) RefreshTTL() time.Duration { return j.refreshTTL }

// AccessTTL возвращает время жизни access-токена.
func (j *MakerImpl) AccessTTL() time.Duration { return j.accessTTL }
