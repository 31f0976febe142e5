package usecase

import (
	"strings"

	"github.com/foozbat/integrations-demo/internal/entity"
)

type CreateLeadInput struct {
	FirstName string `json:"first_name" validate:"required,max=200"`
	LastName  string `json:"last_name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=200"`
	Phone     string `json:"phone" validate:"required,max=50"`
	Plan      string `json:"plan" validate:"omitempty,max=50"`
}

func (in CreateLeadInput) normalized() CreateLeadInput {
	return CreateLeadInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Plan:      strings.TrimSpace(in.Plan),
	}
}

type CreateLeadOutput struct {
	Message string       `json:"message"`
	User    *entity.Lead `json:"user"`
}

// UpdateLeadInput: campo ausente (nil) ou em branco não altera nada.
// IDs externos só chegam pelos webhooks; o cliente não consegue mexer neles.
type UpdateLeadInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=200"`
	LastName  *string `json:"last_name" validate:"omitempty,max=200"`
	Email     *string `json:"email" validate:"omitempty,email,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Plan      *string `json:"plan" validate:"omitempty,max=50"`
}

func (in UpdateLeadInput) normalized() UpdateLeadInput {
	return UpdateLeadInput{
		FirstName: trimPtr(in.FirstName),
		LastName:  trimPtr(in.LastName),
		Email:     trimPtr(in.Email),
		Phone:     trimPtr(in.Phone),
		Plan:      trimPtr(in.Plan),
	}
}

func (in UpdateLeadInput) patch() entity.LeadPatch {
	return entity.LeadPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Plan:      in.Plan,
	}
}

type UpdateLeadOutput struct {
	Message string       `json:"message"`
	User    *entity.Lead `json:"user"`
}

type DeleteLeadOutput struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// LinkCRMContactInput chega do CRM. ExternalContactID é o correlation_id que mandamos no signup.
type LinkCRMContactInput struct {
	ExternalContactID string `json:"external_contact_id" validate:"required,max=100"`
	CRMContactID      string `json:"crm_contact_id" validate:"required,max=100"`
}

type LinkCRMContactOutput struct {
	Message       string `json:"message"`
	ID            int64  `json:"id"`
	CorrelationID string `json:"correlation_id"`
	CRMContactID  string `json:"crm_contact_id"`
}

// LinkPaymentCustomerInput sai de um checkout.session.completed já verificado.
type LinkPaymentCustomerInput struct {
	CustomerID    string `json:"customer_id" validate:"required,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required"`
	SessionStatus string `json:"session_status"`
}

type LinkPaymentCustomerOutput struct {
	Message           string `json:"message"`
	ID                int64  `json:"id"`
	PaymentCustomerID string `json:"payment_customer_id"`
}

type ReportWorkflowErrorOutput struct {
	Message       string `json:"message"`
	FailedActions string `json:"failed_actions"`
}
