package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

type MockCreateLead struct{ mock.Mock }

func (m *MockCreateLead) Execute(ctx context.Context, input usecase.CreateLeadInput) (*usecase.CreateLeadOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.CreateLeadOutput)
	return out, args.Error(1)
}

type MockUpdateLead struct{ mock.Mock }

func (m *MockUpdateLead) Execute(ctx context.Context, id int64, input usecase.UpdateLeadInput) (*usecase.UpdateLeadOutput, error) {
	args := m.Called(ctx, id, input)
	out, _ := args.Get(0).(*usecase.UpdateLeadOutput)
	return out, args.Error(1)
}

type MockDeleteLead struct{ mock.Mock }

func (m *MockDeleteLead) Execute(ctx context.Context, id int64) (*usecase.DeleteLeadOutput, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*usecase.DeleteLeadOutput)
	return out, args.Error(1)
}

type MockLeadQuery struct{ mock.Mock }

func (m *MockLeadQuery) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]*entity.Lead)
	return out, args.Error(1)
}

func (m *MockLeadQuery) Get(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.Lead)
	return out, args.Error(1)
}

type MockCRMLinker struct{ mock.Mock }

func (m *MockCRMLinker) Execute(ctx context.Context, input usecase.LinkCRMContactInput) (*usecase.LinkCRMContactOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.LinkCRMContactOutput)
	return out, args.Error(1)
}

type MockPaymentLinker struct{ mock.Mock }

func (m *MockPaymentLinker) Execute(ctx context.Context, input usecase.LinkPaymentCustomerInput) (*usecase.LinkPaymentCustomerOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.LinkPaymentCustomerOutput)
	return out, args.Error(1)
}

type MockSignatureReporter struct{ mock.Mock }

func (m *MockSignatureReporter) ReportSignatureFailure(ctx context.Context, source string, err error) {
	m.Called(ctx, source, err)
}

type MockWorkflowError struct{ mock.Mock }

func (m *MockWorkflowError) Execute(ctx context.Context, report *entity.WorkflowErrorReport) (*usecase.ReportWorkflowErrorOutput, error) {
	args := m.Called(ctx, report)
	out, _ := args.Get(0).(*usecase.ReportWorkflowErrorOutput)
	return out, args.Error(1)
}
