package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuePair_AccessCarriesRoles(t *testing.T) {
	s := NewTokenService(nil, "access-secret", "refresh-secret")
	userID := uuid.New()

	access, refresh, err := s.IssuePair(userID, []string{"admin", "teacher"})
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	parsed, err := jwt.Parse(access, func(tok *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, userID.String(), claims["sub"])
	roles, ok := claims["roles"].([]interface{})
	require.True(t, ok)
	assert.Len(t, roles, 2)
}

func TestVerifyRefresh_RoundTrip(t *testing.T) {
	s := NewTokenService(nil, "access-secret", "refresh-secret")
	userID := uuid.New()

	_, refresh, err := s.IssuePair(userID, nil)
	require.NoError(t, err)

	got, err := s.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	s := NewTokenService(nil, "access-secret", "refresh-secret")

	access, _, err := s.IssuePair(uuid.New(), nil)
	require.NoError(t, err)

	_, err = s.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestVerifyRefresh_RejectsGarbage(t *testing.T) {
	s := NewTokenService(nil, "x", "y")
	_, err := s.VerifyRefresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
