package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("unit-secret")

	token, err := auth.GenerateToken("user-1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)

	// bearer prefix is accepted too
	claims, err = auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestGenerateToken_RequiresInputs(t *testing.T) {
	auth := SetupAuth("unit-secret")

	_, err := auth.GenerateToken("", "a@b.com")
	assert.Error(t, err)
	_, err = auth.GenerateToken("user-1", "")
	assert.Error(t, err)
}

func TestVerifyToken_Rejections(t *testing.T) {
	auth := SetupAuth("unit-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)
	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)
	_, err = auth.VerifyToken("garbage.token.value")
	assert.Error(t, err)

	token, err := SetupAuth("another-secret").GenerateToken("user-1", "a@b.com")
	require.NoError(t, err)
	_, err = auth.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	auth := SetupAuth("unit-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, auth.VerifyPassword("s3cret", string(hashed)))
	assert.Error(t, auth.VerifyPassword("wrong", string(hashed)))
}
