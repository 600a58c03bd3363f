// Package jwt реализует выпуск и проверку пары JWT токенов сессии.
//
// CustomClaims расширяет стандартные claims JWT, добавляя идентификатор
// и роль пользователя. Методы Generate*/Parse* реализуют создание и
// валидацию токенов с заданными claims.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string `json:"userId"` // Идентификатор пользователя
	Role                 string `json:"role"`   // Роль пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GeneratePair выпускает пару токенов: access (подписан access-секретом,
// короткий TTL) и refresh (подписан refresh-секретом, длинный TTL).
func (j *MakerImpl) GeneratePair(userUID, role string) (string, string, error) {
	accessToken, err := sign(userUID, role, j.accessSecret, j.accessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := sign(userUID, role, j.refreshSecret, j.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// GenerateAccess выпускает только новый access-токен.
// Используется на пути refresh, где refresh-токен остается прежним.
func (j *MakerImpl) GenerateAccess(userUID, role string) (string, error) {
	return sign(userUID, role, j.accessSecret, j.accessTTL)
}

// ParseAccess парсит access-токен, проверяет подпись и срок действия.
func (j *MakerImpl) ParseAccess(tokenStr string) (*CustomClaims, error) {
	return parse("jwt.ParseAccess", tokenStr, j.accessSecret)
}

// ParseRefresh парсит refresh-токен, проверяет подпись и срок действия.
func (j *MakerImpl) ParseRefresh(tokenStr string) (*CustomClaims, error) {
	return parse("jwt.ParseRefresh", tokenStr, j.refreshSecret)
}

func sign(userUID, role, secret string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		UserUID: userUID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parse(op, tokenStr, secret string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
