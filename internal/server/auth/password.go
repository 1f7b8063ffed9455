package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// prehash condenses password to a fixed 44-byte string, below bcrypt's
// 72-byte input limit, so passwords of any length are accepted and every
// byte counts.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword returns the bcrypt hash of the SHA-256 digest of password at
// the given cost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", common.ErrorValidation)
	}

	h, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePassword reports whether password matches hash. A malformed hash
// never matches.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)) == nil
}
