package services

import (
	"regexp"
	"testing"

	"nibash_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewTranID(t *testing.T) {
	re := regexp.MustCompile(`^NIBASH_\d+_[0-9A-F]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newTranID()
		assert.Regexp(t, re, id)
		// SSLCommerz rejects tran_ids over 30 characters.
		assert.LessOrEqual(t, len(id), 30)
		assert.False(t, seen[id], "tran ids must not collide")
		seen[id] = true
	}
}

func TestMapGatewayStatus(t *testing.T) {
	assert.Equal(t, models.PaymentStatusPaid, mapGatewayStatus("VALID"))
	assert.Equal(t, models.PaymentStatusPaid, mapGatewayStatus("VALIDATED"))
	assert.Equal(t, models.PaymentStatusPaid, mapGatewayStatus("valid"))
	assert.Equal(t, models.PaymentStatusCancelled, mapGatewayStatus("CANCELLED"))
	assert.Equal(t, models.PaymentStatusFailed, mapGatewayStatus("FAILED"))
	assert.Equal(t, models.PaymentStatusFailed, mapGatewayStatus(""))
	assert.Equal(t, models.PaymentStatusFailed, mapGatewayStatus("UNRECOGNIZED"))
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 1500.50, parseAmount("1500.50"))
	assert.Equal(t, 0.0, parseAmount(""))
	assert.Equal(t, 0.0, parseAmount("not-a-number"))
}

func TestFlattenForm(t *testing.T) {
	flat := flattenForm(map[string][]string{
		"tran_id": {"NIBASH_1"},
		"status":  {"VALID", "ignored-second"},
		"empty":   {},
	})

	assert.Equal(t, "NIBASH_1", flat["tran_id"])
	assert.Equal(t, "VALID", flat["status"])
	_, ok := flat["empty"]
	assert.False(t, ok)
}
