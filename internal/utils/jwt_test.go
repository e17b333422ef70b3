package utils

import (
	"testing"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "24")

	token, err := GenerateToken(42, "tutor@example.com", []string{domain.RoleTutor})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "tutor@example.com", claims.Email)
	assert.True(t, claims.HasRole(domain.RoleTutor))
	assert.False(t, claims.HasRole(domain.RoleAdmin))
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "24")

	token, err := GenerateToken(1, "user@example.com", nil)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY_HOURS", "24")

	_, err := GenerateToken(1, "user@example.com", nil)
	assert.Error(t, err)
}
