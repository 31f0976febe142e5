package usecase

import (
	"context"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/infra/queue"
	"github.com/foozbat/integrations-demo/internal/infra/webhook"
)

// WebhookDispatcher entrega o lead para o workflow sem bloquear o request.
type WebhookDispatcher interface {
	Dispatch(ctx context.Context, req webhook.DeliveryRequest) <-chan webhook.DeliveryOutcome
}

type LeadLinkedPublisher interface {
	PublishLeadLinked(ctx context.Context, payload queue.LeadLinkedPayload) error
}

type ErrorReporter interface {
	ReportWorkflowFailure(ctx context.Context, report *entity.WorkflowErrorReport, failedActions string)
}
