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

func createServiceRequest(t *testing.T, ts *helpers.TestServer, token, serviceType string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/services/create", token, map[string]interface{}{
		"service_id":     "svc-" + serviceType,
		"service_type":   serviceType,
		"description":    "Kitchen sink is leaking",
		"preferred_date": "2026-09-15",
		"preferred_time": "10:00",
		"address":        "House 12, Road 5, Dhanmondi, Dhaka",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var resp struct {
		Request struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"request"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "pending", resp.Request.Status)
	return resp.Request.ID
}

func TestServiceRequestCreate(t *testing.T) {
	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("requester"), "super_password123", models.UserRoleCustomer)

	id := createServiceRequest(t, ts, token, "plumbing")

	var request models.ServiceRequest
	require.NoError(t, ts.DB.First(&request, "id = ?", id).Error)
	assert.Equal(t, user.ID, request.CustomerID)
	// Blank contact fields fall back to the account's own.
	assert.Equal(t, user.FullName, request.CustomerName)
	assert.Equal(t, user.Phone, request.CustomerPhone)
}

func TestServiceRequestCreate_MissingFields(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("sloppy"), "super_password123", models.UserRoleCustomer)

	res, body := ts.SendRequest(t, http.MethodPost, "/services/create", token, map[string]interface{}{
		"service_type": "plumbing",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "description")
}

func TestServiceRequestMine_OwnRequestsOnly(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("mine"), "super_password123", models.UserRoleCustomer)
	otherToken, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("other"), "super_password123", models.UserRoleCustomer)

	createServiceRequest(t, ts, token, "cleaning")
	createServiceRequest(t, ts, otherToken, "painting")

	res, body := ts.SendRequest(t, http.MethodGet, "/services/mine", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "cleaning")
	assert.NotContains(t, body, "painting")

	res, _ = ts.SendRequest(t, http.MethodGet, "/services/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestServiceRequestList_RoleEnforced(t *testing.T) {
	ts := GetTestServer(t)

	customerToken, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("customer"), "super_password123", models.UserRoleCustomer)
	createServiceRequest(t, ts, customerToken, "electrical")

	// Customers cannot read the queue.
	res, _ := ts.SendRequest(t, http.MethodGet, "/services/list", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	proToken, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("worker"), "super_password123", models.UserRoleProfessional)

	res, body := ts.SendRequest(t, http.MethodGet, "/services/list", proToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "electrical")

	// Status filter selects a different, empty queue.
	res, body = ts.SendRequest(t, http.MethodGet, "/services/list?status=completed", proToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"requests":[]`)

	// Unknown status values are rejected, not silently defaulted.
	res, _ = ts.SendRequest(t, http.MethodGet, "/services/list?status=bogus", proToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
