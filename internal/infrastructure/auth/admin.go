package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AdminAuthenticator checks the single configured back-office account.
type AdminAuthenticator struct {
	username     string
	passwordHash []byte
}

// NewAdminAuthenticator takes the bcrypt hash of the admin password.
func NewAdminAuthenticator(username, passwordHash string) (*AdminAuthenticator, error) {
	if username == "" || passwordHash == "" {
		return nil, errors.New("admin username and password hash are required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, errors.New("admin password hash is not a bcrypt hash")
	}
	return &AdminAuthenticator{username: username, passwordHash: []byte(passwordHash)}, nil
}

// Authenticate always runs the bcrypt comparison so a wrong username takes
// as long as a wrong password.
func (a *AdminAuthenticator) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for admin.password_hash.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}
