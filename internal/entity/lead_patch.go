package entity

import (
	"strings"
	"time"
)

// LeadPatch é a atualização parcial: campo nil ou vazio fica como está.
// ID, CorrelationID e CreatedAt não entram aqui de propósito.
type LeadPatch struct {
	FirstName          *string
	LastName           *string
	Email              *string
	Phone              *string
	Plan               *string
	CRMContactID       *string
	PaymentCustomerID  *string
	SubscriptionStatus *string
}

func Set(s string) *string {
	return &s
}

func (p LeadPatch) IsEmpty() bool {
	for _, f := range p.fields() {
		if provided(f) {
			return false
		}
	}
	return true
}

// Apply mescla os campos informados no lead e carimba UpdatedAt.
func (p LeadPatch) Apply(l *Lead, now time.Time) {
	mergeString(&l.FirstName, p.FirstName)
	mergeString(&l.LastName, p.LastName)
	mergeString(&l.Email, p.Email)
	mergeString(&l.Phone, p.Phone)
	mergeString(&l.Plan, p.Plan)
	mergeOptional(&l.CRMContactID, p.CRMContactID)
	mergeOptional(&l.PaymentCustomerID, p.PaymentCustomerID)
	mergeOptional(&l.SubscriptionStatus, p.SubscriptionStatus)

	if now.Before(l.CreatedAt) {
		now = l.CreatedAt
	}
	l.UpdatedAt = now
}

func (p LeadPatch) fields() []*string {
	return []*string{
		p.FirstName, p.LastName, p.Email, p.Phone, p.Plan,
		p.CRMContactID, p.PaymentCustomerID, p.SubscriptionStatus,
	}
}

func provided(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func mergeString(dst *string, v *string) {
	if provided(v) {
		*dst = strings.TrimSpace(*v)
	}
}

func mergeOptional(dst **string, v *string) {
	if provided(v) {
		s := strings.TrimSpace(*v)
		*dst = &s
	}
}
