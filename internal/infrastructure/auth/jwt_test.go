package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/auth"
)

func TestJWTService(t *testing.T) {
	svc := auth.NewJWTService("secret", time.Hour)
	operatorID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, expiresAt, err := svc.GenerateAccessToken(operatorID, "ana")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		got, err := svc.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, operatorID, got)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := auth.NewJWTService("other", time.Hour).GenerateAccessToken(operatorID, "ana")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := auth.NewJWTService("secret", -time.Minute).GenerateAccessToken(operatorID, "ana")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := auth.Claims{
			OperatorID: operatorID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}

func TestPasswordHasher(t *testing.T) {
	h := auth.NewPasswordHasher(4)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
