package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func checkoutPayload(customer, email string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_123",
		"object": "event",
		"api_version": "2020-08-27",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"customer": %q,
				"customer_details": {"email": %q},
				"status": "complete"
			}
		}
	}`, customer, email))
}

func sign(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestParseEventValidSignature(t *testing.T) {
	v := NewVerifier(testSecret)
	payload := checkoutPayload("cus_123", "john@example.com")

	evt, err := v.ParseEvent(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutSessionCompleted, string(evt.Type))

	checkout, err := CheckoutFromEvent(evt)
	require.NoError(t, err)
	assert.Equal(t, "evt_123", checkout.EventID)
	assert.Equal(t, "cs_test_1", checkout.SessionID)
	assert.Equal(t, "cus_123", checkout.CustomerID)
	assert.Equal(t, "john@example.com", checkout.CustomerEmail)
	assert.Equal(t, "complete", checkout.Status)
}

func TestParseEventRejections(t *testing.T) {
	v := NewVerifier(testSecret)
	payload := checkoutPayload("cus_123", "john@example.com")

	tests := []struct {
		name      string
		payload   []byte
		signature string
		want      error
	}{
		{"missing header", payload, "", ErrMissingSignature},
		{"wrong secret", payload, sign(payload, "whsec_other", time.Now()), ErrInvalidSignature},
		{"tampered body", []byte(`{"id":"evt_evil"}`), sign(payload, testSecret, time.Now()), ErrInvalidSignature},
		{"expired timestamp", payload, sign(payload, testSecret, time.Now().Add(-time.Hour)), ErrInvalidSignature},
		{"garbage header", payload, "not-a-signature", ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ParseEvent(tt.payload, tt.signature)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseEventWithoutSecretSkipsVerification(t *testing.T) {
	v := NewVerifier("")
	assert.False(t, v.Enabled())

	evt, err := v.ParseEvent(checkoutPayload("cus_9", "a@b.com"), "")
	require.NoError(t, err)
	assert.Equal(t, "evt_123", evt.ID)

	_, err = v.ParseEvent([]byte("{nope"), "")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestCheckoutFromEventMissingCustomer(t *testing.T) {
	v := NewVerifier("")
	payload := []byte(`{
		"id": "evt_2",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_2", "object": "checkout.session", "status": "complete"}}
	}`)

	evt, err := v.ParseEvent(payload, "")
	require.NoError(t, err)

	checkout, err := CheckoutFromEvent(evt)
	require.NoError(t, err)
	assert.Empty(t, checkout.CustomerID)
	assert.Empty(t, checkout.CustomerEmail)
}
