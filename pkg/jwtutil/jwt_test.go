package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(42, "jane@x.com", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@x.com", claims.Email)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(1, "u@x.com", secret, -1*time.Second)
	require.NoError(t, err)

	_, err = ValidateToken(tok, secret)
	require.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, "u@x.com", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tok, []byte("wrong-secret"))
	require.Error(t, err)
}

func TestValidateToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ValidateToken("not.a.jwt", []byte("k"))
	require.Error(t, err)
}
