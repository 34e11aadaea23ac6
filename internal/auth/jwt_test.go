package auth

import (
	"testing"

	"envanter-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-en-az-otuz-iki-karakter!"

func TestGenerateToken_RoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Username: "depocu"}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "depocu", claims.Username)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestGenerateToken_WrongSecretRejected(t *testing.T) {
	user := &models.User{ID: 1, Username: "depocu"}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("baska-bir-secret-degeri-32-karakter"), nil
	})
	assert.Error(t, err)
}
