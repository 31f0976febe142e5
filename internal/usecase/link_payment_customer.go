package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/infra/queue"
)

const defaultSessionStatus = "complete"

type LinkPaymentCustomerUseCase struct {
	Repo  entity.LeadRepositoryInterface
	Queue LeadLinkedPublisher
}

func NewLinkPaymentCustomerUseCase(repo entity.LeadRepositoryInterface, publisher LeadLinkedPublisher) *LinkPaymentCustomerUseCase {
	return &LinkPaymentCustomerUseCase{
		Repo:  repo,
		Queue: publisher,
	}
}

func (uc *LinkPaymentCustomerUseCase) Execute(ctx context.Context, input LinkPaymentCustomerInput) (*LinkPaymentCustomerOutput, error) {
	input.CustomerID = strings.TrimSpace(input.CustomerID)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	input.SessionStatus = strings.TrimSpace(input.SessionStatus)

	if validationErrors := ValidatePaymentLinkInput(input); len(validationErrors) > 0 {
		return nil, NewValidationError(validationErrors)
	}

	status := input.SessionStatus
	if status == "" {
		status = defaultSessionStatus
	}

	lead, err := uc.Repo.ApplyPartialUpdate(ctx, entity.ByEmail(input.CustomerEmail), entity.LeadPatch{
		PaymentCustomerID:  entity.Set(input.CustomerID),
		SubscriptionStatus: entity.Set(status),
	})
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, NewNotFoundError("Lead not found with the specified email.")
	}
	if err != nil {
		return nil, newDatabaseError("failed to link payment customer", err)
	}

	log.Printf("💳 [PAYMENT] lead %d vinculado ao customer %s correlation_id=%s", lead.ID, input.CustomerID, lead.CorrelationID)

	uc.publish(ctx, lead)

	return &LinkPaymentCustomerOutput{
		Message:           "Payment processed successfully.",
		ID:                lead.ID,
		PaymentCustomerID: input.CustomerID,
	}, nil
}

// publish é best-effort: o lead já está vinculado no banco, falha na fila só vai pro log.
func (uc *LinkPaymentCustomerUseCase) publish(ctx context.Context, lead *entity.Lead) {
	if uc.Queue == nil {
		return
	}

	payload := queue.LeadLinkedPayload{
		LeadID:        lead.ID,
		CorrelationID: lead.CorrelationID,
		FirstName:     lead.FirstName,
		LastName:      lead.LastName,
		Email:         lead.Email,
		Plan:          lead.Plan,
		Origin:        queue.OriginPaymentWebhook,
	}
	if lead.PaymentCustomerID != nil {
		payload.PaymentCustomerID = *lead.PaymentCustomerID
	}
	if lead.SubscriptionStatus != nil {
		payload.SubscriptionStatus = *lead.SubscriptionStatus
	}

	if err := uc.Queue.PublishLeadLinked(ctx, payload); err != nil {
		log.Printf("⚠️ CRITICAL: lead %d vinculado no banco, mas falha na fila: %v", lead.ID, err)
	}
}
