package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/foozbat/integrations-demo/internal/entity"
)

type DeleteLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewDeleteLeadUseCase(repo entity.LeadRepositoryInterface) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Repo: repo}
}

// Execute apaga de vez (não existe soft-delete).
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, id int64) (*DeleteLeadOutput, error) {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewNotFoundError("User not found.")
		}
		return nil, newDatabaseError("failed to delete lead", err)
	}

	log.Printf("🗑️ Lead %d removido", id)

	return &DeleteLeadOutput{
		Message: "User deleted successfully.",
		UserID:  id,
	}, nil
}
