package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	secret := []byte("unit-test-secret")

	token, err := GenerateJWT(secret, "alice42", "user")
	require.NoError(t, err)

	uid, role, err := NewJWTVerifier(secret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice42", uid)
	assert.Equal(t, "user", role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT([]byte("secret-a"), "alice42", "user")
	require.NoError(t, err)

	_, _, err = NewJWTVerifier([]byte("secret-b")).Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, _, err := NewJWTVerifier([]byte("secret")).Verify("not-a-token")
	require.Error(t, err)
}
