package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	util := NewJWTUtil()

	token, err := util.GenerateToken("user-1", "admin@fleet.example", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@fleet.example", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "fleet-admin", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	util := NewJWTUtil()

	_, err := util.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signer := &JWTUtil{secretKey: []byte("one-secret"), expiry: time.Hour}
	verifier := &JWTUtil{secretKey: []byte("other-secret"), expiry: time.Hour}

	token, err := signer.GenerateToken("user-1", "a@b.c", "viewer")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	util := &JWTUtil{secretKey: []byte("secret"), expiry: -time.Minute}

	token, err := util.GenerateToken("user-1", "a@b.c", "viewer")
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	util := NewJWTUtil()

	token, err := util.GenerateToken("user-1", "a@b.c", "admin")
	require.NoError(t, err)

	refreshed, err := util.RefreshToken(token)
	require.NoError(t, err)

	claims, err := util.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}
