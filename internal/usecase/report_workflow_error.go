package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/foozbat/integrations-demo/internal/entity"
)

type ReportWorkflowErrorUseCase struct {
	Reporter ErrorReporter
}

func NewReportWorkflowErrorUseCase(reporter ErrorReporter) *ReportWorkflowErrorUseCase {
	return &ReportWorkflowErrorUseCase{Reporter: reporter}
}

func (uc *ReportWorkflowErrorUseCase) Execute(ctx context.Context, report *entity.WorkflowErrorReport) (*ReportWorkflowErrorOutput, error) {
	if validationErrors := validateStruct(report); len(validationErrors) > 0 {
		return nil, NewValidationError(validationErrors)
	}

	failed := report.FailedActions()
	names := make([]string, 0, len(failed))
	for _, a := range failed {
		names = append(names, a.Name)
	}
	failedNames := strings.Join(names, ", ")

	log.Printf("❌ [WORKFLOW] run %s (%s) falhou: %s", report.WorkflowRunID, report.WorkflowName, failedNames)

	if uc.Reporter != nil {
		uc.Reporter.ReportWorkflowFailure(ctx, report, failedNames)
	}

	return &ReportWorkflowErrorOutput{
		Message:       "Error logged to Sentry",
		FailedActions: failedNames,
	}, nil
}
