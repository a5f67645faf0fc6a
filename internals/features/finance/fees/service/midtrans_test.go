package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signNotif(orderID, statusCode, gross, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + gross + serverKey))
	return hex.EncodeToString(sum[:])
}

func TestVerifyWebhookSignature(t *testing.T) {
	key := "server-key"
	sig := signNotif("ONL-20260828120000-7F3A1C", "200", "100.00", key)

	assert.True(t, verifyWebhookSignature("ONL-20260828120000-7F3A1C", "200", "100.00", sig, key))
	// Midtrans mengirim hex lowercase; uppercase tetap diterima
	assert.True(t, verifyWebhookSignature("ONL-20260828120000-7F3A1C", "200", "100.00", strings.ToUpper(sig), key))

	assert.False(t, verifyWebhookSignature("ONL-20260828120000-7F3A1C", "200", "100.00", sig, "other-key"))
	assert.False(t, verifyWebhookSignature("ONL-20260828120000-7F3A1C", "200", "999.00", sig, key))
	assert.False(t, verifyWebhookSignature("ONL-20260828120000-7F3A1C", "200", "100.00", "", key))
}

// A settlement notification whose signature does not match the server key is
// rejected before any lookup, so no ledger entry can be minted by a forger.
func TestWebhookRejectsForgedSettlement(t *testing.T) {
	InitMidtrans("server-key", false)
	s := &FeeLedgerService{} // rejection happens before any DB access

	err := s.HandleMidtransWebhook(context.Background(), map[string]interface{}{
		"order_id":           "ONL-20260828120000-7F3A1C",
		"transaction_status": "settlement",
		"status_code":        "200",
		"gross_amount":       "100.00",
		"signature_key":      "deadbeef",
	})
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindValidation, kind)
	assert.Contains(t, err.Error(), "signature")
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	InitMidtrans("server-key", false)
	s := &FeeLedgerService{}

	err := s.HandleMidtransWebhook(context.Background(), map[string]interface{}{
		"order_id":           "ONL-20260828120000-7F3A1C",
		"transaction_status": "settlement",
	})
	require.Error(t, err)

	kind, _ := KindOf(err)
	assert.Equal(t, ErrKindValidation, kind)
}

func TestCheckoutGrossUnits(t *testing.T) {
	units, err := checkoutGrossUnits(cents(10000)) // 100.00
	require.NoError(t, err)
	assert.Equal(t, int64(100), units)

	// 100.50 would make the gateway collect less than the ledger records
	_, err = checkoutGrossUnits(cents(10050))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindValidation, kind)
	assert.Contains(t, err.Error(), "100.50")
}
