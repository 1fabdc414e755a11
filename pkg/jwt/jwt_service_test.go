package jwt

import (
	"testing"
	"time"

	"foodgram-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) JWTService {
	t.Setenv("JWT_SECRET", "test-secret")
	return NewJWTService()
}

func TestUserTokenRoundtrip(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateTokenUser("8b7f9e0a-0000-0000-0000-000000000001", domain.RoleAdmin)
	require.NoError(t, err)

	userID, role, err := service.GetUserByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "8b7f9e0a-0000-0000-0000-000000000001", userID)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestUserTokenRejectsGarbage(t *testing.T) {
	service := newTestService(t)

	_, _, err := service.GetUserByToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResetTokenRoundtrip(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateTokenResetPassword("user-1", 15*time.Minute)
	require.NoError(t, err)

	userID, err := service.ValidateTokenResetPassword(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestResetTokenExpires(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateTokenResetPassword("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = service.ValidateTokenResetPassword(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestResetTokenRejectsUserToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	// A login token must not pass as a password reset token.
	_, err = service.ValidateTokenResetPassword(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
