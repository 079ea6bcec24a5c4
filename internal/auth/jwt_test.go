package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("test-secret", 2*time.Hour)

	token, expiresAt, err := m.Generate(42, "dana@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "dana@example.com", claims.Email)
	require.True(t, claims.IsAdmin)
	require.NotEmpty(t, claims.ID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewJWTManager("secret-a", time.Hour).Generate(1, "a@example.com", false)
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate(1, "a@example.com", false)
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("test-secret", time.Hour)

	_, err := m.Validate("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
