package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("u1", "alder", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alder", claims.Username)
}

func TestParseRejectsBadTokens(t *testing.T) {
	token, err := GenerateToken("u1", "alder", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateToken("u1", "alder", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "secret")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token", "secret")
	assert.Error(t, err)

	anonymous, err := GenerateToken("", "alder", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(anonymous, "secret")
	assert.Error(t, err)
}
