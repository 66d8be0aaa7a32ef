package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamalben22/stadiumport/utils"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	return NewAuthService("admin@stadiumport.com", hash, []byte("test-secret"))
}

func TestLogin_IssuesAdminToken(t *testing.T) {
	svc := newTestAuthService(t)

	signed, err := svc.Login("admin@stadiumport.com", "correct-horse")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "admin@stadiumport.com", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login("admin@stadiumport.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("someone@else.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
