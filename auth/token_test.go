package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aggroplatform/aggro-admin/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.JWTSecret = "test-secret"

	token, err := GenerateToken("uid-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	config.JWTSecret = "test-secret"

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	config.JWTSecret = "other-secret"
	token, err := GenerateToken("uid-123")
	require.NoError(t, err)

	config.JWTSecret = "test-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err, "token signed with a different secret fails")
}
