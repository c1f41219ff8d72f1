package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(7, "kasir", "cashier")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "kasir", claims.Username)
	assert.Equal(t, "cashier", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_Blacklisted(t *testing.T) {
	token, err := GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))
	_, err = ValidateToken(token)
	assert.Error(t, err)

	// entri kadaluarsa dibuang saat dicek
	BlacklistToken("old", time.Now().Add(-time.Minute))
	assert.False(t, IsTokenBlacklisted("old"))
}

func TestParseToken_Rejects(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString(JWTSecret)
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{UserID: 1})
	signed, err = other.SignedString([]byte("secret-lain"))
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)
}
