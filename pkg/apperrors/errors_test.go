package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := InternalError(inner)

	assert.ErrorIs(t, wrapped, inner)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestAppError_MarshalHidesInternals(t *testing.T) {
	appErr := Wrap(errors.New("pq: relation does not exist"),
		CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "pq: relation")
	assert.NotContains(t, string(raw), "HTTPCode")
	assert.Contains(t, string(raw), `"code":"INTERNAL_ERROR"`)
}

func TestErrAccountStatus(t *testing.T) {
	appErr := ErrAccountStatus("suspended")

	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "suspended")
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "suspended", details["account_status"])
}

func TestHandleError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	HandleError(c, ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Domain  string `json:"domain"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "auth", resp.Error.Domain)
	assert.Equal(t, "Invalid email or password", resp.Error.Message)
}

func TestHandleError_WrapsUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)

	HandleError(c, errors.New("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, CodeInternalError, resp.Error.Code)
}
