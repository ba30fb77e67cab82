package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// credentialHashCost is the bcrypt work factor applied to every stored
// credential.
const credentialHashCost = 12

// ErrPasswordTooLong flags a password beyond bcrypt's 72 byte input limit,
// past which the remainder would be silently ignored.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword hashes a plaintext password with bcrypt at the pinned work
// factor.
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), credentialHashCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
