package careers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances hashing time against login throughput. Raise with care,
// every login pays it.
const bcryptCost = 12

// ErrNoEmptyPassword rejects empty plaintexts before bcrypt sees them.
var ErrNoEmptyPassword = errors.New("password must not be empty")

// ErrMismatchedHashAndPassword is returned when a plaintext does not match
// its stored digest.
var ErrMismatchedHashAndPassword = errors.New("password does not match hash")

// HashPassword generates a salted digest. Two calls with the same plaintext
// produce different digests; each embeds its own salt and cost parameters.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// ComparePasswordAndHash validates the cleartext password against the digest.
// A malformed digest is reported as an error, never a panic.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
