package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

const currentUserKey = "currentUser"

var (
	// returned when email/password don't match
	ErrInvalidCredentials = errors.New("invalid email or password")
	// returned when a signup carries no valid invite once an admin exists
	ErrInviteRequired = errors.New("signup is closed: a valid invite code is required")
)

// HashPassword bcrypts a plaintext password for the users table.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a stored bcrypt hash with a login attempt.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidInvite reports whether given matches the configured invite code.
// An empty configured code never matches.
func ValidInvite(configured, given string) bool {
	if configured == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}

// GetCurrentUser returns the admin stored by JWTMiddleware.
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	u, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*model.User)
	return user, ok
}
