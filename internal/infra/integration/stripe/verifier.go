package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	SignatureHeader               = "Stripe-Signature"
	EventCheckoutSessionCompleted = "checkout.session.completed"
)

var (
	ErrMissingSignature = errors.New("missing signature header")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPayload   = errors.New("failed to parse stripe event")
	ErrInvalidSession   = errors.New("invalid checkout session data")
)

// Verifier valida o Stripe-Signature. Sem secret configurado aceita o evento sem checar (só dev).
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	if secret == "" {
		log.Println("⚠️ STRIPE_WEBHOOK_SECRET não configurado, assinatura do Stripe NÃO será verificada")
	}
	return &Verifier{secret: secret}
}

func (v *Verifier) Enabled() bool {
	return v.secret != ""
}

func (v *Verifier) ParseEvent(payload []byte, signature string) (stripeapi.Event, error) {
	var evt stripeapi.Event

	if !v.Enabled() {
		if err := json.Unmarshal(payload, &evt); err != nil {
			return evt, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return evt, nil
	}

	if strings.TrimSpace(signature) == "" {
		return evt, ErrMissingSignature
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return evt, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return evt, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return evt, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

// CheckoutCompleted é o que interessa de um checkout.session.completed.
type CheckoutCompleted struct {
	EventID       string
	SessionID     string
	CustomerID    string
	CustomerEmail string
	Status        string
}

func CheckoutFromEvent(evt stripeapi.Event) (*CheckoutCompleted, error) {
	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return nil, ErrInvalidSession
	}

	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	out := &CheckoutCompleted{
		EventID:   evt.ID,
		SessionID: session.ID,
		Status:    string(session.Status),
	}
	// customer só vem preenchido quando é assinatura
	if session.Customer != nil {
		out.CustomerID = session.Customer.ID
	}
	if session.CustomerDetails != nil {
		out.CustomerEmail = session.CustomerDetails.Email
	}
	return out, nil
}
