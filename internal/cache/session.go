// Session-хранилище refresh-токенов: ключ — идентификатор пользователя,
// значение — текущий действительный refresh-токен, TTL — время жизни токена.
// Перезапись ключа при выпуске новой пары неявно отзывает предыдущий токен,
// поэтому одновременно действителен не более одного refresh-токена на пользователя.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "refresh_token:"

// SaveRefreshToken сохраняет текущий refresh-токен пользователя с TTL,
// затирая предыдущий.
func (c *Cache) SaveRefreshToken(ctx context.Context, userUID, token string, ttl time.Duration) error {
	const op = "cache.SaveRefreshToken"
	if err := c.Db.Set(ctx, refreshTokenKeyPrefix+userUID, token, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetRefreshToken возвращает сохраненный refresh-токен пользователя.
// Возвращает пустую строку без ошибки, если записи нет (токен отозван или истек).
func (c *Cache) GetRefreshToken(ctx context.Context, userUID string) (string, error) {
	const op = "cache.GetRefreshToken"
	val, err := c.Db.Get(ctx, refreshTokenKeyPrefix+userUID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return val, nil
}

// DeleteRefreshToken удаляет запись о refresh-токене пользователя (выход из системы).
func (c *Cache) DeleteRefreshToken(ctx context.Context, userUID string) error {
	const op = "cache.DeleteRefreshToken"
	if err := c.Db.Del(ctx, refreshTokenKeyPrefix+userUID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
