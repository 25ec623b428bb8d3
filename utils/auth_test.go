package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendline/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong-pass", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	user := models.User{Email: "ada@example.com", Role: models.RoleAdvancedUser}
	user.ID = 42

	token, err := GenerateToken(&user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, roles, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	require.Len(t, roles, 1)
	assert.Equal(t, models.RoleAdvancedUser, roles[0])
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	_, _, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "first-secret")
	user := models.User{Email: "ada@example.com", Role: models.RoleCustomer}
	user.ID = 1
	token, err := GenerateToken(&user)
	require.NoError(t, err)

	os.Setenv("JWT_SECRET", "second-secret")
	defer os.Unsetenv("JWT_SECRET")

	_, _, err = ParseToken(token)
	assert.Error(t, err)
}
