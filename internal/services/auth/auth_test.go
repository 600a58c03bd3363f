package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/jwt"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/password"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// SessionStoreStub хранит токены в map, имитируя redis с перезаписью ключа.
type SessionStoreStub struct {
	tokens map[string]string
}

func newSessionStoreStub() *SessionStoreStub {
	return &SessionStoreStub{tokens: make(map[string]string)}
}

func (s *SessionStoreStub) SaveRefreshToken(_ context.Context, userUID, token string, _ time.Duration) error {
	s.tokens[userUID] = token
	return nil
}

func (s *SessionStoreStub) GetRefreshToken(_ context.Context, userUID string) (string, error) {
	return s.tokens[userUID], nil
}

func (s *SessionStoreStub) DeleteRefreshToken(_ context.Context, userUID string) error {
	delete(s.tokens, userUID)
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(users UserRepository, sessions SessionStore) *AuthService {
	maker := jwt.NewTokenMaker("access_secret", "refresh_secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(users, sessions, maker, 15*time.Minute, 7*24*time.Hour, newNoopLogger())
}

func testUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	return &models.User{
		UID:          "uid-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
}

func TestAuthService_Register_Conflict(t *testing.T) {
	users := new(UserRepositoryMock)
	users.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(testUser(t), nil).Once()

	service := newTestService(users, newSessionStoreStub())

	session, err := service.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, errs.ErrConflict)
	users.AssertExpectations(t)
	// повторная регистрация не доходит до RegisterUser
	users.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}

func TestAuthService_Register_Success(t *testing.T) {
	user := testUser(t)
	users := new(UserRepositoryMock)
	users.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(nil, errs.ErrNotFound).Once()
	users.On("RegisterUser", mock.Anything, mock.Anything).Return("uid-1", nil).Once()
	users.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()

	sessions := newSessionStoreStub()
	service := newTestService(users, sessions)

	session, err := service.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", session.User.UID)
	assert.Empty(t, session.User.PasswordHash)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	// refresh-токен сохранен в session-хранилище
	assert.Equal(t, session.RefreshToken, sessions.tokens["uid-1"])
	users.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	user := testUser(t)

	tests := []struct {
		name      string
		email     string
		password  string
		repoUser  *models.User
		repoErr   error
		wantErrIs error
	}{
		{
			name:     "valid credentials",
			email:    "alice@example.com",
			password: "secret123",
			repoUser: user,
		},
		{
			name:      "unknown email",
			email:     "nobody@example.com",
			password:  "secret123",
			repoErr:   errs.ErrNotFound,
			wantErrIs: errs.ErrNotFound,
		},
		{
			name:      "wrong password",
			email:     "alice@example.com",
			password:  "wrongpass",
			repoUser:  user,
			wantErrIs: errs.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepositoryMock)
			users.On("GetUserByEmail", mock.Anything, tt.email).
				Return(tt.repoUser, tt.repoErr).Once()

			sessions := newSessionStoreStub()
			service := newTestService(users, sessions)

			session, err := service.Login(context.Background(), tt.email, tt.password)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, session.RefreshToken, sessions.tokens[user.UID])
			assert.Empty(t, session.User.PasswordHash)
		})
	}
}

func TestAuthService_Refresh_RotationReuseDetected(t *testing.T) {
	user := testUser(t)
	users := new(UserRepositoryMock)
	users.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	sessions := newSessionStoreStub()
	service := newTestService(users, sessions)

	first, err := service.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	// повторный вход выпускает новый refresh-токен и затирает предыдущий
	second, err := service.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// старый токен подписан корректно, но больше не совпадает с хранилищем
	_, _, err = service.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	// текущий токен обменивается на новый access-токен
	accessToken, ttl, err := service.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.Equal(t, 15*time.Minute, ttl)
}

func TestAuthService_Refresh_InvalidTokens(t *testing.T) {
	service := newTestService(new(UserRepositoryMock), newSessionStoreStub())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Refresh(context.Background(), tt.token)
			assert.ErrorIs(t, err, errs.ErrUnauthorized)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	user := testUser(t)
	users := new(UserRepositoryMock)
	users.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	sessions := newSessionStoreStub()
	service := newTestService(users, sessions)

	session, err := service.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, sessions.tokens[user.UID])

	service.Logout(context.Background(), session.RefreshToken)
	assert.Empty(t, sessions.tokens[user.UID])

	// нечитаемый токен игнорируется, выход не падает
	service.Logout(context.Background(), "broken-token")
	service.Logout(context.Background(), "")
}

func TestAuthService_ResolveAccessToken(t *testing.T) {
	user := testUser(t)
	users := new(UserRepositoryMock)
	users.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)
	users.On("GetUser", mock.Anything, user.UID).Return(user, nil)

	service := newTestService(users, newSessionStoreStub())

	session, err := service.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	resolved, err := service.ResolveAccessToken(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.UID, resolved.UID)
	assert.Empty(t, resolved.PasswordHash)

	_, err = service.ResolveAccessToken(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = service.ResolveAccessToken(context.Background(), session.RefreshToken)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestAuthService_ResolveAccessToken_UserDeleted(t *testing.T) {
	user := testUser(t)
	users := new(UserRepositoryMock)
	users.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)
	users.On("GetUser", mock.Anything, user.UID).Return(nil, errs.ErrNotFound)

	service := newTestService(users, newSessionStoreStub())

	session, err := service.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	_, err = service.ResolveAccessToken(context.Background(), session.AccessToken)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}
