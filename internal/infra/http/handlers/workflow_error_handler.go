package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/infra/http/middleware"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

type WorkflowErrorExecutor interface {
	Execute(ctx context.Context, report *entity.WorkflowErrorReport) (*usecase.ReportWorkflowErrorOutput, error)
}

type WorkflowErrorHandler struct {
	ReportUC WorkflowErrorExecutor
}

func NewWorkflowErrorHandler(uc WorkflowErrorExecutor) *WorkflowErrorHandler {
	return &WorkflowErrorHandler{ReportUC: uc}
}

// Handle (POST /webhooks/logic-apps/error)
func (h *WorkflowErrorHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var report entity.WorkflowErrorReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.ReportUC.Execute(r.Context(), &report)
	if err != nil {
		middleware.RecordInboundWebhook("workflow", outcomeFor(err))
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordInboundWebhook("workflow", "reported")
	writeJSON(w, http.StatusOK, output)
}
