package entity

import "time"

// WorkflowErrorReport é o que o Logic App manda quando um run falha.
type WorkflowErrorReport struct {
	WorkflowRunID string           `json:"workflowRunId" validate:"required"`
	WorkflowName  string           `json:"workflowName" validate:"required"`
	TriggerTime   time.Time        `json:"triggerTime"`
	TriggerData   map[string]any   `json:"triggerData,omitempty"`
	ErrorDetails  []WorkflowAction `json:"errorDetails,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

type WorkflowAction struct {
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Code      string     `json:"code,omitempty"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

func (a WorkflowAction) Failed() bool {
	return a.Status == "Failed" || a.Status == "TimedOut"
}

func (r *WorkflowErrorReport) FailedActions() []WorkflowAction {
	var failed []WorkflowAction
	for _, a := range r.ErrorDetails {
		if a.Failed() {
			failed = append(failed, a)
		}
	}
	return failed
}

// LeadEmail procura o email do lead nos dados do trigger.
func (r *WorkflowErrorReport) LeadEmail() string {
	if r.TriggerData == nil {
		return ""
	}
	if email, ok := r.TriggerData["email"].(string); ok {
		return email
	}
	return ""
}
