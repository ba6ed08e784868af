package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into the credential string that gets
// persisted. The plaintext must never cross the persistence boundary.
type Hasher interface {
	Hash(plain string) (string, error)
}

var _ Hasher = (*BcryptHasher)(nil)

// BcryptHasher hashes passwords with bcrypt. Scheme, cost and salt are
// embedded in the output, so later verification needs no side-channel state.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
