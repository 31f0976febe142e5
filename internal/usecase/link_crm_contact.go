package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/foozbat/integrations-demo/internal/entity"
)

type LinkCRMContactUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewLinkCRMContactUseCase(repo entity.LeadRepositoryInterface) *LinkCRMContactUseCase {
	return &LinkCRMContactUseCase{Repo: repo}
}

// Execute grava só o crm_contact_id no lead cujo correlation_id bate com external_contact_id.
// Lead desconhecido vira NOT_FOUND e nada é criado.
func (uc *LinkCRMContactUseCase) Execute(ctx context.Context, input LinkCRMContactInput) (*LinkCRMContactOutput, error) {
	input.ExternalContactID = strings.TrimSpace(input.ExternalContactID)
	input.CRMContactID = strings.TrimSpace(input.CRMContactID)

	if validationErrors := ValidateCRMLinkInput(input); len(validationErrors) > 0 {
		return nil, NewValidationError(validationErrors)
	}

	key := entity.ByCorrelationID(input.ExternalContactID)
	lead, err := uc.Repo.ApplyPartialUpdate(ctx, key, entity.LeadPatch{
		CRMContactID: entity.Set(input.CRMContactID),
	})
	if errors.Is(err, entity.ErrLeadNotFound) {
		log.Printf("⚠️ [CRM] nenhum lead para correlation_id=%s", input.ExternalContactID)
		return nil, NewNotFoundError("Lead not found with the specified external_contact_id.")
	}
	if err != nil {
		return nil, newDatabaseError("failed to link crm contact", err)
	}

	log.Printf("🔗 [CRM] lead %d vinculado ao contato %s correlation_id=%s", lead.ID, input.CRMContactID, lead.CorrelationID)

	return &LinkCRMContactOutput{
		Message:       "CRM contact registered.",
		ID:            lead.ID,
		CorrelationID: lead.CorrelationID,
		CRMContactID:  input.CRMContactID,
	}, nil
}
