package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/infra/queue"
	"github.com/foozbat/integrations-demo/internal/infra/webhook"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByCorrelationKey(ctx context.Context, key entity.CorrelationKey) (*entity.Lead, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.Lead), args.Bool(1), args.Error(2)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ApplyPartialUpdate(ctx context.Context, key entity.CorrelationKey, patch entity.LeadPatch) (*entity.Lead, error) {
	args := m.Called(ctx, key, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) CountAwaitingLinkage(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, req webhook.DeliveryRequest) <-chan webhook.DeliveryOutcome {
	m.Called(ctx, req)
	ch := make(chan webhook.DeliveryOutcome, 1)
	ch <- webhook.DeliveryOutcome{Success: true, CorrelationID: req.CorrelationID}
	close(ch)
	return ch
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadLinked(ctx context.Context, payload queue.LeadLinkedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockErrorReporter
type MockErrorReporter struct {
	mock.Mock
}

func (m *MockErrorReporter) ReportWorkflowFailure(ctx context.Context, report *entity.WorkflowErrorReport, failedActions string) {
	m.Called(ctx, report, failedActions)
}

func strPtr(s string) *string {
	return &s
}
