package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaker() *MakerImpl {
	return NewTokenMaker("access_secret_1234567890", "refresh_secret_0987654321",
		15*time.Minute, 7*24*time.Hour)
}

func TestTokenMaker_GenerateAndParsePair_ValidCases(t *testing.T) {
	maker := newTestMaker()

	tests := []struct {
		name    string
		userUID string
		role    string
	}{
		{
			name:    "admin user",
			userUID: "a3c1f6e2-0000-4000-8000-000000000001",
			role:    "admin",
		},
		{
			name:    "customer",
			userUID: "a3c1f6e2-0000-4000-8000-000000000002",
			role:    "customer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, refresh, err := maker.GeneratePair(tt.userUID, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, access)
			assert.NotEmpty(t, refresh)
			assert.NotEqual(t, access, refresh)

			accessClaims, err := maker.ParseAccess(access)
			require.NoError(t, err)
			assert.Equal(t, tt.userUID, accessClaims.UserUID)
			assert.Equal(t, tt.role, accessClaims.Role)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), accessClaims.ExpiresAt.Time, time.Second)

			refreshClaims, err := maker.ParseRefresh(refresh)
			require.NoError(t, err)
			assert.Equal(t, tt.userUID, refreshClaims.UserUID)
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), refreshClaims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestTokenMaker_SecretsAreNotInterchangeable(t *testing.T) {
	maker := newTestMaker()

	access, refresh, err := maker.GeneratePair("uid-1", "customer")
	require.NoError(t, err)

	// access-токен не проходит проверку refresh-секретом и наоборот
	claims, err := maker.ParseRefresh(access)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker.ParseAccess(refresh)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenMaker_ParseAccess_InvalidTokens(t *testing.T) {
	maker := newTestMaker()

	validAccess, _, err := maker.GeneratePair("uid-1", "customer")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "tampered token", token: validAccess + "tampered"},
		{name: "expired token", token: createExpiredAccessToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseAccess(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenMaker_GenerateAccess_KeepsRefreshUntouched(t *testing.T) {
	maker := newTestMaker()

	access, err := maker.GenerateAccess("uid-2", "admin")
	require.NoError(t, err)

	claims, err := maker.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "uid-2", claims.UserUID)
	assert.Equal(t, "admin", claims.Role)
}

func createExpiredAccessToken(t *testing.T) string {
	expiredMaker := NewTokenMaker("access_secret_1234567890", "refresh_secret_0987654321",
		-time.Hour, 7*24*time.Hour)
	token, err := expiredMaker.GenerateAccess("uid-1", "customer")
	require.NoError(t, err)
	return token
}
