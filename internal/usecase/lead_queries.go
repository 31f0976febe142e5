package usecase

import (
	"context"
	"errors"

	"github.com/foozbat/integrations-demo/internal/entity"
)

type LeadQueryUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewLeadQueryUseCase(repo entity.LeadRepositoryInterface) *LeadQueryUseCase {
	return &LeadQueryUseCase{Repo: repo}
}

func (uc *LeadQueryUseCase) List(ctx context.Context) ([]*entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, newDatabaseError("failed to list leads", err)
	}
	return leads, nil
}

func (uc *LeadQueryUseCase) Get(ctx context.Context, id int64) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, NewNotFoundError("User not found.")
	}
	if err != nil {
		return nil, newDatabaseError("failed to load lead", err)
	}
	return lead, nil
}
