package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage-api/internal/config"
)

const testSecret = "test-secret-key-thats-at-least-32-chars"

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

	svc := NewTestJWTService(testSecret, time.Hour, func() time.Time { return now })

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have three segments")

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

	svc := NewTestJWTService(testSecret, time.Hour, func() time.Time { return now })

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		later := NewTestJWTService(testSecret, time.Hour, func() time.Time {
			return now.Add(2 * time.Hour)
		})
		_, err := later.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		other := NewTestJWTService(
			"another-secret-key-thats-32-chars-long!",
			time.Hour,
			func() time.Time { return now },
		)
		_, err := other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + ".eyJ1aWQiOiJ0YW1wZXJlZCJ9." + parts[2]
		_, err := svc.ValidateToken(ctx, tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
