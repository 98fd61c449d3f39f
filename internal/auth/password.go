package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CheckPassword compares given against stored. Stored values starting with
// "$2" are bcrypt hashes; anything else is compared as plain text.
func CheckPassword(stored, given string) error {
	if stored == "" || given == "" {
		return ErrInvalidCredentials
	}
	if strings.HasPrefix(stored, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(given)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for the tournaments config.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
