package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"nibash_backend/internal/models"
	"nibash_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsers(t *testing.T) {
	ts := GetTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	customerEmail := helpers.UniqueEmail("listed")
	helpers.CreateAndLoginUser(t, ts, customerEmail, "super_password123", models.UserRoleCustomer)

	res, body := ts.SendRequest(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		Success       bool                  `json:"success"`
		Users         []json.RawMessage     `json:"users"`
		Professionals []models.Professional `json:"professionals"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.Success)
	assert.GreaterOrEqual(t, len(resp.Users), 2)
	assert.Contains(t, body, customerEmail)
	assert.NotContains(t, body, "super_password123")
}

func TestAdminListUsers_ForbiddenForCustomer(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("notadmin"), "super_password123", models.UserRoleCustomer)

	res, _ := ts.SendRequest(t, http.MethodGet, "/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdminApproveProfessional(t *testing.T) {
	ts := GetTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	// Register a professional through the API: lands pending.
	email := helpers.UniqueEmail("approveme")
	res, body := ts.SendRequest(t, http.MethodPost, "/signup", "", map[string]interface{}{
		"email":        email,
		"password":     "super_password123",
		"full_name":    "Pending Professional",
		"phone":        "01712345678",
		"role":         "professional",
		"nid_number":   "1990123456789",
		"service_type": "electrical",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var user models.User
	require.NoError(t, ts.DB.Where("email = ?", email).First(&user).Error)

	res, body = ts.SendRequest(t, http.MethodPatch, "/admin/users/"+user.ID+"/status",
		adminToken, map[string]interface{}{"status": "approved"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Approval flips the account status and the profile verification flag.
	require.NoError(t, ts.DB.Where("email = ?", email).First(&user).Error)
	assert.Equal(t, models.UserStatusApproved, user.Status)

	var professional models.Professional
	require.NoError(t, ts.DB.Where("user_id = ?", user.ID).First(&professional).Error)
	assert.True(t, professional.IsVerified)

	// An approved professional can now log in.
	loginRes, loginBody := ts.SendRequest(t, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusOK, loginRes.StatusCode, loginBody)
}

func TestAdminUpdateStatus_Invalid(t *testing.T) {
	ts := GetTestServer(t)
	adminToken, admin := helpers.CreateAndLoginAdmin(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPatch, "/admin/users/"+admin.ID+"/status",
		adminToken, map[string]interface{}{"status": "banned-forever"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPatch,
		"/admin/users/00000000-0000-0000-0000-000000000000/status",
		adminToken, map[string]interface{}{"status": "suspended"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
