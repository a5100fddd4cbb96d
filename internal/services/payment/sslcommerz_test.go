package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"nibash_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, sessionHandler, validationHandler http.HandlerFunc) *Client {
	t.Helper()

	sessionSrv := httptest.NewServer(sessionHandler)
	t.Cleanup(sessionSrv.Close)
	validationSrv := httptest.NewServer(validationHandler)
	t.Cleanup(validationSrv.Close)

	cfg := &config.Config{}
	cfg.SSLCommerz.StoreID = "teststore"
	cfg.SSLCommerz.StorePassword = "testpass"
	cfg.SSLCommerz.Sandbox = true

	client := NewClient(cfg)
	client.SetEndpoints(sessionSrv.URL, validationSrv.URL)
	return client
}

func TestCreateSession_Success(t *testing.T) {
	var gotForm map[string]string

	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotForm = map[string]string{
				"store_id":     r.PostFormValue("store_id"),
				"total_amount": r.PostFormValue("total_amount"),
				"currency":     r.PostFormValue("currency"),
				"tran_id":      r.PostFormValue("tran_id"),
				"cus_email":    r.PostFormValue("cus_email"),
				"cus_name":     r.PostFormValue("cus_name"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"SUCCESS","sessionkey":"SK123","GatewayPageURL":"https://sandbox.sslcommerz.com/EasyCheckOut/SK123"}`))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)

	session, err := client.CreateSession(context.Background(), SessionRequest{
		Amount:        1500.50,
		Currency:      "BDT",
		TranID:        "NIBASH_123_ABCD1234",
		CustomerEmail: "customer@test.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "SK123", session.SessionKey)
	assert.Contains(t, session.GatewayPageURL, "EasyCheckOut")

	assert.Equal(t, "teststore", gotForm["store_id"])
	assert.Equal(t, "1500.50", gotForm["total_amount"])
	assert.Equal(t, "BDT", gotForm["currency"])
	assert.Equal(t, "NIBASH_123_ABCD1234", gotForm["tran_id"])
	assert.Equal(t, "customer@test.com", gotForm["cus_email"])
	// Blank optional fields get defaults the gateway accepts.
	assert.Equal(t, "Customer", gotForm["cus_name"])
}

func TestCreateSession_Failed(t *testing.T) {
	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"FAILED","failedreason":"Store Credential Error"}`))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)

	_, err := client.CreateSession(context.Background(), SessionRequest{
		Amount:        100,
		Currency:      "BDT",
		TranID:        "NIBASH_1",
		CustomerEmail: "customer@test.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Store Credential Error")
}

func TestValidateTransaction(t *testing.T) {
	client := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "VAL123", r.URL.Query().Get("val_id"))
			assert.Equal(t, "teststore", r.URL.Query().Get("store_id"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"VALID","tran_id":"NIBASH_123_ABCD1234","val_id":"VAL123","amount":"1500.50","currency":"BDT"}`))
		},
	)

	validation, err := client.ValidateTransaction(context.Background(), "VAL123")
	require.NoError(t, err)

	assert.True(t, validation.IsValid())
	assert.Equal(t, "NIBASH_123_ABCD1234", validation.TranID)
}

func TestValidationResponse_IsValid(t *testing.T) {
	assert.True(t, (&ValidationResponse{Status: "VALID"}).IsValid())
	assert.True(t, (&ValidationResponse{Status: "VALIDATED"}).IsValid())
	assert.False(t, (&ValidationResponse{Status: "INVALID_TRANSACTION"}).IsValid())
	assert.False(t, (&ValidationResponse{Status: ""}).IsValid())
}
