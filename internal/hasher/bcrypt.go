package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/offerhub/user-service/internal/model"
)

// Bcrypt implements PasswordHasher using the bcrypt KDF.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given work factor. Costs outside the
// bcrypt range fall back to the library default.
func NewBcrypt(cost int) model.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash generates a salted bcrypt hash of the plaintext password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Check reports whether the plaintext password matches the stored hash.
// A malformed hash is a mismatch, not an error.
func (b *Bcrypt) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
