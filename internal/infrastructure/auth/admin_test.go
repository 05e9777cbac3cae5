package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuthenticator(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewAdminAuthenticator("admin", string(hash))
	require.NoError(t, err)

	assert.NoError(t, a.Authenticate("admin", "rahasia"))
	assert.ErrorIs(t, a.Authenticate("admin", "salah"), ErrInvalidCredentials)
	assert.ErrorIs(t, a.Authenticate("root", "rahasia"), ErrInvalidCredentials)
}

func TestNewAdminAuthenticator_Validation(t *testing.T) {
	_, err := NewAdminAuthenticator("", "x")
	assert.Error(t, err)

	_, err = NewAdminAuthenticator("admin", "plaintext")
	assert.ErrorContains(t, err, "bcrypt")
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("rahasia")
	require.NoError(t, err)

	a, err := NewAdminAuthenticator("admin", hash)
	require.NoError(t, err)
	assert.NoError(t, a.Authenticate("admin", "rahasia"))
}
