package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/foozbat/integrations-demo/internal/infra/http/middleware"
	"github.com/foozbat/integrations-demo/internal/infra/integration/stripe"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

const maxStripePayload = 65536

type PaymentLinker interface {
	Execute(ctx context.Context, input usecase.LinkPaymentCustomerInput) (*usecase.LinkPaymentCustomerOutput, error)
}

type SignatureFailureReporter interface {
	ReportSignatureFailure(ctx context.Context, source string, err error)
}

type PaymentWebhookHandler struct {
	Verifier *stripe.Verifier
	LinkUC   PaymentLinker
	Reporter SignatureFailureReporter
}

func NewPaymentWebhookHandler(verifier *stripe.Verifier, uc PaymentLinker, reporter SignatureFailureReporter) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		Verifier: verifier,
		LinkUC:   uc,
		Reporter: reporter,
	}
}

// Handle (POST /webhooks/stripe)
func (h *PaymentWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxStripePayload))
	if err != nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "READ_ERROR", "Failed to read request body.")
		return
	}

	evt, err := h.Verifier.ParseEvent(payload, r.Header.Get(stripe.SignatureHeader))
	switch {
	case errors.Is(err, stripe.ErrMissingSignature):
		log.Println("⚠️ [STRIPE] webhook sem Stripe-Signature")
		middleware.RecordInboundWebhook("stripe", "missing_signature")
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_SIGNATURE", "Missing signature header.")
		return
	case errors.Is(err, stripe.ErrInvalidSignature):
		log.Printf("🚨 [STRIPE] assinatura inválida: %v", err)
		middleware.RecordInboundWebhook("stripe", "invalid_signature")
		if h.Reporter != nil {
			h.Reporter.ReportSignatureFailure(r.Context(), "stripe", err)
		}
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_SIGNATURE", "Invalid signature.")
		return
	case err != nil:
		middleware.RecordInboundWebhook("stripe", "bad_request")
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Failed to parse Stripe event.")
		return
	}

	log.Printf("📩 [STRIPE] evento %s (%s)", evt.Type, evt.ID)

	if string(evt.Type) != stripe.EventCheckoutSessionCompleted {
		middleware.RecordInboundWebhook("stripe", "ignored")
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Event type not handled."})
		return
	}

	checkout, err := stripe.CheckoutFromEvent(evt)
	if err != nil {
		middleware.RecordInboundWebhook("stripe", "bad_request")
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid checkout session data.")
		return
	}

	output, err := h.LinkUC.Execute(r.Context(), usecase.LinkPaymentCustomerInput{
		CustomerID:    checkout.CustomerID,
		CustomerEmail: checkout.CustomerEmail,
		SessionStatus: checkout.Status,
	})
	if err != nil {
		middleware.RecordInboundWebhook("stripe", outcomeFor(err))
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordInboundWebhook("stripe", "linked")
	writeJSON(w, http.StatusOK, output)
}
