// Package services содержит логику бизнес-уровня жизненного цикла сессии:
// регистрация, вход, выход, ротация refresh-токена и разрешение
// access-токена в пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/jwt"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/password"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или errs.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или errs.ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// SessionStore описывает session-хранилище refresh-токенов.
// Одновременно действителен не более одного refresh-токена на пользователя.
type SessionStore interface {
	SaveRefreshToken(ctx context.Context, userUID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userUID string) (string, error)
	DeleteRefreshToken(ctx context.Context, userUID string) error
}

// Session — результат успешной аутентификации: пользователь без хэша
// пароля и пара токенов с их TTL (для выставления cookie).
type Session struct {
	User         models.User
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// AuthService отвечает за регистрацию, авторизацию и ротацию токенов.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	tokens   jwt.Maker

	accessTTL  time.Duration
	refreshTTL time.Duration

	log *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, tokens jwt.Maker,
	accessTTL, refreshTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью customer,
// затем выпускает сессию. Повторная регистрация email — errs.ErrConflict.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*Session, error) {
	const op = "services.auth.Register"

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrConflict)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleCustomer, // дефолтная роль при регистрации
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.issueSession(ctx, *created)
}

// Login проверяет пароль пользователя и выпускает сессию.
// Неизвестный email — errs.ErrNotFound, неверный пароль — errs.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*Session, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	return s.issueSession(ctx, *user)
}

// Logout отзывает refresh-токен пользователя.
// Нечитаемый токен намеренно игнорируется: выход всегда успешен,
// cookie очищает вызывающий обработчик.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		s.log.Debug("ignoring undecodable refresh token on logout", sl.Err(err))
		return
	}
	if err := s.sessions.DeleteRefreshToken(ctx, claims.UserUID); err != nil {
		s.log.Warn("failed to delete refresh token", sl.Err(err))
	}
}

// Refresh обменивает действительный refresh-токен на новый access-токен.
// Токен должен побайтово совпадать со значением в session-хранилище —
// так обнаруживается повторное использование отозванного токена.
// Refresh-токен при этом не меняется.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (accessToken string, accessTTL time.Duration, err error) {
	const op = "services.auth.Refresh"

	if refreshToken == "" {
		return "", 0, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}

	stored, err := s.sessions.GetRefreshToken(ctx, claims.UserUID)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}
	if stored == "" || stored != refreshToken {
		return "", 0, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}

	accessToken, err = s.tokens.GenerateAccess(claims.UserUID, claims.Role)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}
	return accessToken, s.accessTTL, nil
}

// ResolveAccessToken проверяет access-токен и возвращает пользователя
// без хэша пароля. Любой дефект токена или отсутствие пользователя —
// errs.ErrUnauthorized.
func (s *AuthService) ResolveAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	const op = "services.auth.ResolveAccessToken"

	if accessToken == "" {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// issueSession выпускает пару токенов и сохраняет refresh-токен
// в session-хранилище, затирая предыдущий.
func (s *AuthService) issueSession(ctx context.Context, user models.User) (*Session, error) {
	const op = "services.auth.issueSession"

	accessToken, refreshToken, err := s.tokens.GeneratePair(user.UID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.sessions.SaveRefreshToken(ctx, user.UID, refreshToken, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Session{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    s.accessTTL,
		RefreshTTL:   s.refreshTTL,
	}, nil
}
