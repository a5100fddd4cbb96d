package integration_test

import (
	"net/http"
	"testing"

	"nibash_backend/internal/models"
	"nibash_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentIPN_UpsertIsIdempotent(t *testing.T) {
	ts := GetTestServer(t)

	form := map[string]string{
		"tran_id":  "NIBASH_1700000000001_TESTIPN1",
		"val_id":   "VAL-TEST-1",
		"status":   "VALID",
		"amount":   "2500.00",
		"currency": "BDT",
	}

	res, body := ts.SendForm(t, "/payment/validate", form)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// The gateway retries IPNs; the second delivery must not create a
	// second row.
	res, body = ts.SendForm(t, "/payment/validate", form)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var count int64
	require.NoError(t, ts.DB.Model(&models.Payment{}).
		Where("tran_id = ?", form["tran_id"]).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var payment models.Payment
	require.NoError(t, ts.DB.Where("tran_id = ?", form["tran_id"]).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, "VAL-TEST-1", payment.ValID)
	assert.NotNil(t, payment.PaidAt)
	assert.NotEmpty(t, payment.GatewayPayload)
	// An IPN carries no authenticated customer; the column stays NULL.
	assert.Nil(t, payment.CustomerID)
}

func TestPaymentIPN_KeepsCustomerOnExistingPayment(t *testing.T) {
	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("ipnowner"), "super_password123", models.UserRoleCustomer)

	res, body := ts.SendRequest(t, http.MethodPost, "/payments/create", token, map[string]interface{}{
		"payment_id": "NIBASH_1700000000005_OWNIPN01",
		"service_id": "svc-1",
		"amount":     500.0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendForm(t, "/payment/validate", map[string]string{
		"tran_id":  "NIBASH_1700000000005_OWNIPN01",
		"val_id":   "VAL-TEST-5",
		"status":   "VALID",
		"amount":   "500.00",
		"currency": "BDT",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var payment models.Payment
	require.NoError(t, ts.DB.Where("tran_id = ?", "NIBASH_1700000000005_OWNIPN01").
		First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	// The notification updates the row it conflicts with instead of
	// clobbering who initiated it.
	require.NotNil(t, payment.CustomerID)
	assert.Equal(t, user.ID, *payment.CustomerID)
}

func TestPaymentIPN_FailedStatus(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendForm(t, "/payment/validate", map[string]string{
		"tran_id": "NIBASH_1700000000002_TESTIPN2",
		"status":  "FAILED",
		"amount":  "100.00",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var payment models.Payment
	require.NoError(t, ts.DB.Where("tran_id = ?", "NIBASH_1700000000002_TESTIPN2").
		First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Nil(t, payment.PaidAt)
}

func TestPaymentIPN_MissingTranID(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendForm(t, "/payment/validate", map[string]string{
		"status": "VALID",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "tran_id")
}

func TestPaymentCreateAndLookup(t *testing.T) {
	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("payer"), "super_password123", models.UserRoleCustomer)

	res, body := ts.SendRequest(t, http.MethodPost, "/payments/create", token, map[string]interface{}{
		"payment_id": "NIBASH_1700000000003_MANUAL01",
		"service_id": "svc-cleaning-1",
		"amount":     750.0,
		"status":     "paid",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet,
		"/payments/lookup?tran_id=NIBASH_1700000000003_MANUAL01", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "NIBASH_1700000000003_MANUAL01")
	assert.Contains(t, body, user.ID)
}

func TestPaymentLookup_OwnerOrAdminOnly(t *testing.T) {
	ts := GetTestServer(t)
	ownerToken, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("owner"), "super_password123", models.UserRoleCustomer)
	strangerToken, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("stranger"), "super_password123", models.UserRoleCustomer)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/payments/create", ownerToken, map[string]interface{}{
		"payment_id": "NIBASH_1700000000004_OWNED001",
		"service_id": "svc-1",
		"amount":     100.0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	path := "/payments/lookup?tran_id=NIBASH_1700000000004_OWNED001"

	res, _ = ts.SendRequest(t, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestPaymentInitiate_RequiresAuthAndAmount(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts,
		helpers.UniqueEmail("initiator"), "super_password123", models.UserRoleCustomer)

	// Unauthenticated
	res, _ := ts.SendRequest(t, http.MethodPost, "/payment/initiate", "", map[string]interface{}{
		"total_amount": 100.0,
		"cus_email":    "c@test.com",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Invalid amount never reaches the gateway.
	res, body := ts.SendRequest(t, http.MethodPost, "/payment/initiate", token, map[string]interface{}{
		"total_amount": -5.0,
		"cus_email":    "c@test.com",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}
