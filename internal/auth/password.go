package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// The users table still contains rows written by older handler variants that
// stored plaintext passwords. Verification is concentrated here so every
// login path treats both forms identically; re-hashing happens in the
// password migration worker, never inline during a login.

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHashed reports whether the stored value is a bcrypt hash.
func IsHashed(stored string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

// HashPassword creates a bcrypt hash with the default cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword checks a candidate password against the stored value.
// legacy is true when the stored value was plaintext, which tells the
// caller the row is still awaiting migration.
func VerifyPassword(stored, candidate string) (ok bool, legacy bool) {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil, false
	}
	// Legacy plaintext row: constant-time compare.
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1, true
}
