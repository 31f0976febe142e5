package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/foozbat/integrations-demo/internal/entity"
)

type UpdateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id int64, input UpdateLeadInput) (*UpdateLeadOutput, error) {
	input = input.normalized()

	if validationErrors := ValidateUpdateLeadInput(input); len(validationErrors) > 0 {
		return nil, NewValidationError(validationErrors)
	}

	if input.Email != nil {
		exists, err := uc.Repo.EmailExists(ctx, *input.Email, id)
		if err != nil {
			return nil, newDatabaseError("failed to check email", err)
		}
		if exists {
			return nil, NewConflictError(entity.ErrEmailAlreadyExists.Error())
		}
	}

	lead, err := uc.Repo.ApplyPartialUpdate(ctx, entity.ByID(id), input.patch())
	switch {
	case errors.Is(err, entity.ErrLeadNotFound):
		return nil, NewNotFoundError("User not found.")
	case errors.Is(err, entity.ErrEmailAlreadyExists):
		return nil, NewConflictError(err.Error())
	case err != nil:
		return nil, newDatabaseError("failed to update lead", err)
	}

	log.Printf("✏️ Lead %d atualizado", lead.ID)

	return &UpdateLeadOutput{
		Message: "User updated successfully.",
		User:    lead,
	}, nil
}
