// Package auth verifies the admin credential that gates catalog mutations.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned when a secret does not verify.
var ErrUnauthorized = errors.New("unauthorized")

// Verifier checks an admin secret.
type Verifier interface {
	Verify(secret string) error
}

// BcryptVerifier compares secrets against a bcrypt hash.
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier returns a verifier for hash. An empty hash refuses every secret.
func NewBcryptVerifier(hash string) *BcryptVerifier {
	return &BcryptVerifier{hash: []byte(hash)}
}

func (v *BcryptVerifier) Verify(secret string) error {
	if len(v.hash) == 0 {
		return fmt.Errorf("%w: no admin secret configured", ErrUnauthorized)
	}
	if secret == "" {
		return fmt.Errorf("%w: admin secret required", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(secret)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// HashSecret produces a bcrypt hash suitable for the admin_secret_hash setting.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("secret must not be empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
