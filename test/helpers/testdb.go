package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"nibash_backend/internal/auth"
	"nibash_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// UniqueEmail builds a collision-free address for parallel tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateUser inserts a user, hashing the password unless the caller already
// stored a bcrypt value. Passing plaintext deliberately exercises the legacy
// verification path.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, hashPassword bool) {
	t.Helper()

	if hashPassword && !auth.IsHashed(user.Password) {
		hashed, err := auth.HashPassword(user.Password)
		require.NoError(t, err, "hashing test password must not fail")
		user.Password = hashed
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.FullName == "" {
		user.FullName = "Test User"
	}

	require.NoError(t, db.Create(user).Error, "creating test user must not fail")
}

// CreateAndLoginUser creates an account and logs it in through the API,
// returning the issued token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, email, password string, role models.UserRole) (string, *models.User) {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: password,
		FullName: "Test User",
		Phone:    "01712345678",
		Role:     role,
		Status:   models.UserStatusActive,
	}
	CreateUser(t, ts.DB, user, true)

	res, body := ts.SendRequest(t, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: "+body)

	var loginResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginAdmin provisions an admin and returns its token.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	t.Helper()
	return CreateAndLoginUser(t, ts, UniqueEmail("admin"), "admin_password123", models.UserRoleAdmin)
}
