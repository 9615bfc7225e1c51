package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// credentialVerifier is the private implementation of [CredentialVerifier].
type credentialVerifier struct {
	cost int
}

// NewCredentialVerifier constructs a [CredentialVerifier] backed by bcrypt
// with a cost factor of 10.
func NewCredentialVerifier() CredentialVerifier {
	return &credentialVerifier{cost: 10}
}

// Hash implements [CredentialVerifier]. Each call produces a different hash
// for the same password because bcrypt embeds a fresh random salt.
func (v *credentialVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify implements [CredentialVerifier]. It reports false for any mismatch
// or malformed hash; the distinction is deliberately not surfaced so callers
// cannot leak which of the two occurred.
func (v *credentialVerifier) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateAccessCode implements [CredentialVerifier]. It draws a uniform
// value in [0, 1000000) from the OS CSPRNG and formats it as a zero-padded
// six-digit string.
func (v *credentialVerifier) GenerateAccessCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
