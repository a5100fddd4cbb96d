package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestIsHashed(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)

	assert.True(t, IsHashed(string(hashed)))
	assert.True(t, IsHashed("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, IsHashed("$2b$12$abcdefghijklmnopqrstuv"))
	assert.True(t, IsHashed("$2y$10$abcdefghijklmnopqrstuv"))

	assert.False(t, IsHashed("plaintext-password"))
	assert.False(t, IsHashed(""))
	assert.False(t, IsHashed("$1$legacy-md5-style"))
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("super_password123")
	assert.NoError(t, err)
	assert.True(t, IsHashed(hashed))
	assert.NotEqual(t, "super_password123", hashed)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("super_password123")))
}

func TestVerifyPassword_Hashed(t *testing.T) {
	hashed, err := HashPassword("correct-horse")
	assert.NoError(t, err)

	ok, legacy := VerifyPassword(hashed, "correct-horse")
	assert.True(t, ok)
	assert.False(t, legacy)

	ok, legacy = VerifyPassword(hashed, "wrong-horse")
	assert.False(t, ok)
	assert.False(t, legacy)
}

func TestVerifyPassword_LegacyPlaintext(t *testing.T) {
	ok, legacy := VerifyPassword("plaintext123", "plaintext123")
	assert.True(t, ok)
	assert.True(t, legacy)

	ok, legacy = VerifyPassword("plaintext123", "different")
	assert.False(t, ok)
	assert.True(t, legacy)
}
