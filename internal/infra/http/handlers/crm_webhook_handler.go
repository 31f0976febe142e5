package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/foozbat/integrations-demo/internal/infra/http/middleware"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

type CRMLinker interface {
	Execute(ctx context.Context, input usecase.LinkCRMContactInput) (*usecase.LinkCRMContactOutput, error)
}

type CRMWebhookHandler struct {
	LinkUC CRMLinker
}

func NewCRMWebhookHandler(uc CRMLinker) *CRMWebhookHandler {
	return &CRMWebhookHandler{LinkUC: uc}
}

// flexibleID aceita o id do CRM como string ou número. 0 e null contam como ausente.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	if n.String() == "0" {
		*f = ""
		return nil
	}
	*f = flexibleID(n.String())
	return nil
}

type crmLinkRequest struct {
	ExternalContactID flexibleID `json:"external_contact_id"`
	CRMContactID      flexibleID `json:"crm_contact_id"`
	HubspotContactID  flexibleID `json:"hubspot_contact_id"`
}

func (req crmLinkRequest) input() usecase.LinkCRMContactInput {
	crmID := req.CRMContactID
	if crmID == "" {
		crmID = req.HubspotContactID
	}
	return usecase.LinkCRMContactInput{
		ExternalContactID: string(req.ExternalContactID),
		CRMContactID:      string(crmID),
	}
}

// Handle (POST /webhooks/hubspot)
func (h *CRMWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req crmLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RecordInboundWebhook("crm", "bad_request")
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON: "+err.Error())
		return
	}

	output, err := h.LinkUC.Execute(r.Context(), req.input())
	if err != nil {
		middleware.RecordInboundWebhook("crm", outcomeFor(err))
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordInboundWebhook("crm", "linked")
	writeJSON(w, http.StatusOK, output)
}

func outcomeFor(err error) string {
	if domainErr, ok := usecase.AsDomainError(err); ok {
		return strings.ToLower(domainErr.Code)
	}
	return "error"
}
