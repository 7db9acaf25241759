package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"timetrack/backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestKey(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}

	path := filepath.Join(t.TempDir(), "private.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&block), 0o600))

	return path
}

func TestGenAndVerifyTokens(t *testing.T) {
	keyPath := writeTestKey(t)

	accessToken, refreshToken, err := GenToken(TokenClaims{ID: 42, Role: auth.RoleAdmin}, keyPath)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, refreshClaims, err := VerifyTokens(accessToken, refreshToken, keyPath)
	require.NoError(t, err)

	assert.Equal(t, 42, accessClaims.UserId)
	assert.Equal(t, auth.RoleAdmin, accessClaims.Role)
	assert.Equal(t, 42, refreshClaims.UserId)
	assert.True(t, accessClaims.Authorized(auth.RoleAdmin))
	assert.False(t, accessClaims.Authorized("DASHBOARD"))
}

func TestVerifyTokensMismatchedPair(t *testing.T) {
	keyPath := writeTestKey(t)

	access, _, err := GenToken(TokenClaims{ID: 1, Role: auth.RoleAdmin}, keyPath)
	require.NoError(t, err)

	_, refresh, err := GenToken(TokenClaims{ID: 2, Role: auth.RoleAdmin}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens(access, refresh, keyPath)
	assert.Error(t, err)
}

func TestVerifyTokensRejectsGarbageRefresh(t *testing.T) {
	keyPath := writeTestKey(t)

	access, _, err := GenToken(TokenClaims{ID: 1, Role: auth.RoleAdmin}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens(access, "not-a-token", keyPath)
	assert.Error(t, err)
}
