// Package service defines interfaces for stateless domain logic whose
// implementations live in internal/infra.
package service

// MaxPasswordBytes is the longest UTF-8 encoded password bcrypt accepts
// without truncating.
const MaxPasswordBytes = 72

// PasswordHasher turns plaintext passwords into storable hashes.
type PasswordHasher interface {
	// Hash always treats its input as plaintext. Inputs longer than
	// MaxPasswordBytes fail with domainerrors.ErrPasswordTooLong before any
	// hashing happens.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash never matches.
	Check(password, hash string) bool
}
