package authUtils

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicreport-be/models"
)

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestGenerateTokenStaffCarriesCategory(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("abc123", models.RoleStaff, models.Road)
	require.NoError(t, err)

	claims := parseClaims(t, token, "test-secret")
	assert.Equal(t, "abc123", claims["user_id"])
	assert.Equal(t, models.RoleStaff, claims["role"])
	assert.Equal(t, "Road", claims["category"])
}

func TestGenerateTokenNonStaffOmitsCategory(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("abc123", models.RoleUser, "")
	require.NoError(t, err)

	claims := parseClaims(t, token, "test-secret")
	assert.Equal(t, models.RoleUser, claims["role"])
	_, hasCategory := claims["category"]
	assert.False(t, hasCategory)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken("abc123", models.RoleUser, "")
	assert.Error(t, err)
}
