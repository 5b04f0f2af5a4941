package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes an admin password for storage. Used when seeding the
// bootstrap account; hashes are never compared outside ComparePassword.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks a login attempt against the stored bcrypt hash
func ComparePassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
