package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/infra/webhook"
)

type CreateLeadUseCase struct {
	Repo            entity.LeadRepositoryInterface
	Dispatcher      WebhookDispatcher
	WorkflowURL     string
	WorkflowTimeout time.Duration
}

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	dispatcher WebhookDispatcher,
	workflowURL string,
	workflowTimeout time.Duration,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:            repo,
		Dispatcher:      dispatcher,
		WorkflowURL:     workflowURL,
		WorkflowTimeout: workflowTimeout,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	input = input.normalized()

	if validationErrors := ValidateCreateLeadInput(input); len(validationErrors) > 0 {
		return nil, NewValidationError(validationErrors)
	}

	exists, err := uc.Repo.EmailExists(ctx, input.Email, 0)
	if err != nil {
		return nil, newDatabaseError("failed to check email", err)
	}
	if exists {
		return nil, NewConflictError(entity.ErrEmailAlreadyExists.Error())
	}

	lead := entity.NewLead(input.FirstName, input.LastName, input.Email, input.Phone, input.Plan)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		// Corrida entre o EmailExists e o INSERT: a constraint decide
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewConflictError(err.Error())
		}
		return nil, newDatabaseError("failed to persist lead", err)
	}

	log.Printf("✅ Lead %d criado correlation_id=%s", lead.ID, lead.CorrelationID)

	if uc.WorkflowURL == "" {
		log.Printf("⚠️ WORKFLOW_WEBHOOK_URL vazio, webhook não enviado correlation_id=%s", lead.CorrelationID)
	} else {
		// Fire-and-forget: o resultado só vai para log e métricas
		snapshot := *lead
		uc.Dispatcher.Dispatch(ctx, webhook.DeliveryRequest{
			URL:           uc.WorkflowURL,
			Payload:       snapshot,
			CorrelationID: lead.CorrelationID,
			Timeout:       uc.WorkflowTimeout,
		})
	}

	return &CreateLeadOutput{
		Message: "Signup successful.",
		User:    lead,
	}, nil
}
