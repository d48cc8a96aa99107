package model

// PasswordHasher defines the interface for password hashing and verification.
// It abstracts the underlying algorithm, keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// Malformed hashes are a mismatch, never an error.
	Check(password, hash string) bool
}
