package entity

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists = errors.New("a user with this email already exists")
	ErrLeadNotFound       = errors.New("lead not found")
)

type LinkageState string

const (
	LinkageCreated  LinkageState = "CREATED"
	LinkageAwaiting LinkageState = "AWAITING_LINKAGE"
	LinkageLinked   LinkageState = "LINKED"
)

// Lead é o registro de signup. CorrelationID é gerado aqui e nunca muda;
// os IDs externos só chegam pelos webhooks de entrada.
type Lead struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Plan          string `json:"plan,omitempty"`
	CorrelationID string `json:"correlation_id"`

	// IDs externos
	CRMContactID       *string `json:"crm_contact_id,omitempty"`
	PaymentCustomerID  *string `json:"payment_customer_id,omitempty"`
	SubscriptionStatus *string `json:"subscription_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(firstName, lastName, email, phone, plan string) *Lead {
	return &Lead{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Phone:         phone,
		Plan:          plan,
		CorrelationID: uuid.New().String(),
	}
}

func (l *Lead) LinkageState() LinkageState {
	if l.ID == 0 {
		return LinkageCreated
	}
	if hasValue(l.CRMContactID) || hasValue(l.PaymentCustomerID) {
		return LinkageLinked
	}
	return LinkageAwaiting
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}

type CorrelationKind string

const (
	KeyID            CorrelationKind = "id"
	KeyCorrelationID CorrelationKind = "correlation_id"
	KeyEmail         CorrelationKind = "email"
)

// CorrelationKey diz como um webhook de entrada encontra o registro.
type CorrelationKey struct {
	Kind  CorrelationKind
	Value string
	ID    int64
}

func ByID(id int64) CorrelationKey {
	return CorrelationKey{Kind: KeyID, ID: id, Value: strconv.FormatInt(id, 10)}
}

func ByCorrelationID(correlationID string) CorrelationKey {
	return CorrelationKey{Kind: KeyCorrelationID, Value: correlationID}
}

func ByEmail(email string) CorrelationKey {
	return CorrelationKey{Kind: KeyEmail, Value: email}
}

func (k CorrelationKey) String() string {
	return string(k.Kind) + "=" + k.Value
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindByCorrelationKey(ctx context.Context, key CorrelationKey) (*Lead, bool, error)
	List(ctx context.Context) ([]*Lead, error)
	ApplyPartialUpdate(ctx context.Context, key CorrelationKey, patch LeadPatch) (*Lead, error)
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	CountAwaitingLinkage(ctx context.Context) (int, error)
}
