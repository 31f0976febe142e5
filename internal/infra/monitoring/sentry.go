package monitoring

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/foozbat/integrations-demo/internal/entity"
)

const maxBreadcrumbs = 50

// Init liga o Sentry. Sem DSN o SDK fica desligado e só avisamos no log.
func Init(dsn, environment, release string) (bool, error) {
	if dsn == "" {
		log.Println("⚠️ SENTRY_DSN não configurado, Sentry desligado")
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return false, fmt.Errorf("sentry init: %w", err)
	}

	log.Printf("✅ Sentry inicializado (env=%s)", environment)
	return true, nil
}

func Flush() {
	sentry.Flush(2 * time.Second)
}

type Reporter struct {
	hub *sentry.Hub
}

func NewReporter(hub *sentry.Hub) *Reporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Reporter{hub: hub}
}

// hubFor prefere o hub do request (sentryhttp) para herdar as tags do middleware.
func (r *Reporter) hubFor(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return r.hub
}

func (r *Reporter) ReportWorkflowFailure(ctx context.Context, report *entity.WorkflowErrorReport, failedActions string) {
	hub := r.hubFor(ctx)

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetTag("integration", "workflow-engine")
		scope.SetTag("workflow_name", report.WorkflowName)
		scope.SetTag("workflow_run_id", report.WorkflowRunID)
		scope.SetTag("failed_actions", failedActions)

		scope.SetContext("workflow", sentry.Context{
			"trigger_time": report.TriggerTime.Format(time.RFC3339),
			"lead_data":    report.TriggerData,
			"actions":      report.ErrorDetails,
		})

		for _, a := range report.ErrorDetails {
			level := sentry.LevelInfo
			if a.Status != "Succeeded" {
				level = sentry.LevelError
			}
			scope.AddBreadcrumb(&sentry.Breadcrumb{
				Category: "workflow",
				Message:  fmt.Sprintf("Action: %s - %s", a.Name, a.Status),
				Level:    level,
			}, maxBreadcrumbs)
		}

		if email := report.LeadEmail(); email != "" {
			scope.SetUser(sentry.User{Email: email})
		}

		hub.CaptureMessage("Workflow failed: " + failedActions)
	})
}

// ReportSignatureFailure registra webhook de pagamento com assinatura inválida.
func (r *Reporter) ReportSignatureFailure(ctx context.Context, source string, err error) {
	hub := r.hubFor(ctx)

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelWarning)
		scope.SetTag("integration", source)
		scope.SetTag("failure", "invalid_signature")
		hub.CaptureException(err)
	})
}
