package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/foozbat/integrations-demo/internal/infra/integration/stripe"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

const stripeTestSecret = "whsec_handler_test"

func stripeEvent(eventType, customer, email string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"type": %q,
		"data": {"object": {"id": "cs_1", "object": "checkout.session", "customer": %q, "customer_details": {"email": %q}, "status": "complete"}}
	}`, eventType, customer, email))
}

func stripeSignature(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func postStripe(h *PaymentWebhookHandler, payload []byte, signature string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set(stripe.SignatureHeader, signature)
	}
	h.Handle(rec, req)
	return rec
}

func TestStripeWebhookLinksCustomer(t *testing.T) {
	uc := new(MockPaymentLinker)
	h := NewPaymentWebhookHandler(stripe.NewVerifier(stripeTestSecret), uc, nil)
	payload := stripeEvent("checkout.session.completed", "cus_1", "john@example.com")

	uc.On("Execute", mock.Anything, usecase.LinkPaymentCustomerInput{
		CustomerID:    "cus_1",
		CustomerEmail: "john@example.com",
		SessionStatus: "complete",
	}).Return(&usecase.LinkPaymentCustomerOutput{Message: "Payment processed successfully.", ID: 7, PaymentCustomerID: "cus_1"}, nil)

	rec := postStripe(h, payload, stripeSignature(payload, stripeTestSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Payment processed successfully.","id":7,"payment_customer_id":"cus_1"}`, rec.Body.String())
}

func TestStripeWebhookSignatureFailures(t *testing.T) {
	payload := stripeEvent("checkout.session.completed", "cus_1", "john@example.com")

	t.Run("missing header", func(t *testing.T) {
		uc := new(MockPaymentLinker)
		h := NewPaymentWebhookHandler(stripe.NewVerifier(stripeTestSecret), uc, nil)

		rec := postStripe(h, payload, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing signature header.")
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("wrong secret is reported", func(t *testing.T) {
		uc := new(MockPaymentLinker)
		reporter := new(MockSignatureReporter)
		reporter.On("ReportSignatureFailure", mock.Anything, "stripe", mock.Anything).Return()
		h := NewPaymentWebhookHandler(stripe.NewVerifier(stripeTestSecret), uc, reporter)

		rec := postStripe(h, payload, stripeSignature(payload, "whsec_wrong"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid signature.")
		reporter.AssertExpectations(t)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})
}

func TestStripeWebhookIgnoresOtherEvents(t *testing.T) {
	uc := new(MockPaymentLinker)
	h := NewPaymentWebhookHandler(stripe.NewVerifier(stripeTestSecret), uc, nil)
	payload := stripeEvent("invoice.paid", "cus_1", "john@example.com")

	rec := postStripe(h, payload, stripeSignature(payload, stripeTestSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event type not handled.")
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestStripeWebhookUseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing customer", usecase.NewValidationError([]usecase.ValidationError{{Field: "customer_id", Message: "is required"}}), http.StatusBadRequest},
		{"unknown email", usecase.NewNotFoundError("Lead not found with the specified email."), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockPaymentLinker)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			// sem secret: verificação desligada
			h := NewPaymentWebhookHandler(stripe.NewVerifier(""), uc, nil)

			rec := postStripe(h, stripeEvent("checkout.session.completed", "", "ghost@example.com"), "")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestStripeWebhookMalformedBody(t *testing.T) {
	h := NewPaymentWebhookHandler(stripe.NewVerifier(""), new(MockPaymentLinker), nil)

	rec := postStripe(h, []byte("{not json"), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to parse Stripe event.")
}
