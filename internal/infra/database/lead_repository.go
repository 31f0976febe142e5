package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/foozbat/integrations-demo/internal/entity"
)

const (
	uniqueViolation     = "23505"
	emailUniqueKey      = "leads_email_key"
	leadColumns         = `id, first_name, last_name, email, phone, plan, correlation_id, crm_contact_id, payment_customer_id, subscription_status, created_at, updated_at`
	selectLeadsByColumn = `SELECT ` + leadColumns + ` FROM leads WHERE `
)

type LeadRepository struct {
	DB  DBTX
	now func() time.Time
}

func NewLeadRepository(db DBTX) *LeadRepository {
	return &LeadRepository{
		DB:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (first_name, last_name, email, phone, plan, correlation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := r.now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	err := r.DB.QueryRow(ctx, query,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Plan,
		lead.CorrelationID,
		lead.CreatedAt,
		lead.UpdatedAt,
	).Scan(&lead.ID)

	if err != nil {
		if isUniqueViolation(err, emailUniqueKey) {
			return entity.ErrEmailAlreadyExists
		}
		log.Printf("Erro crítico no banco: %v", err)
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	lead, found, err := r.FindByCorrelationKey(ctx, entity.ByID(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, entity.ErrLeadNotFound
	}
	return lead, nil
}

// FindByCorrelationKey devolve found=false quando não existe; isso não é erro.
func (r *LeadRepository) FindByCorrelationKey(ctx context.Context, key entity.CorrelationKey) (*entity.Lead, bool, error) {
	column, arg, err := keyColumn(key)
	if err != nil {
		return nil, false, err
	}

	lead, err := scanLead(r.DB.QueryRow(ctx, selectLeadsByColumn+column+` = $1`, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find lead by %s: %w", key.Kind, err)
	}
	return lead, true, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// ApplyPartialUpdate trava a linha (FOR UPDATE), mescla o patch e grava tudo de volta.
// Dois webhooks no mesmo lead ficam serializados: o último a pegar o lock vence.
func (r *LeadRepository) ApplyPartialUpdate(ctx context.Context, key entity.CorrelationKey, patch entity.LeadPatch) (*entity.Lead, error) {
	column, arg, err := keyColumn(key)
	if err != nil {
		return nil, err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	lead, err := scanLead(tx.QueryRow(ctx, selectLeadsByColumn+column+` = $1 FOR UPDATE`, arg))
	if err != nil {
		tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to lock lead by %s: %w", key.Kind, err)
	}

	patch.Apply(lead, r.now())

	query := `
		UPDATE leads SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone = $5,
			plan = $6,
			crm_contact_id = $7,
			payment_customer_id = $8,
			subscription_status = $9,
			updated_at = $10
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Plan,
		lead.CRMContactID,
		lead.PaymentCustomerID,
		lead.SubscriptionStatus,
		lead.UpdatedAt,
	)
	if err != nil {
		tx.Rollback(ctx)
		if isUniqueViolation(err, emailUniqueKey) {
			return nil, entity.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to update lead %d: %w", lead.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit lead %d: %w", lead.ID, err)
	}
	return lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// EmailExists ignora o próprio lead (excludeID) no update; no create passe 0.
func (r *LeadRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM leads WHERE email = $1 AND id <> $2)`
	if err := r.DB.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return exists, nil
}

func (r *LeadRepository) CountAwaitingLinkage(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM leads WHERE crm_contact_id IS NULL AND payment_customer_id IS NULL`
	if err := r.DB.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leads awaiting linkage: %w", err)
	}
	return count, nil
}

func keyColumn(key entity.CorrelationKey) (string, any, error) {
	switch key.Kind {
	case entity.KeyID:
		return "id", key.ID, nil
	case entity.KeyCorrelationID:
		return "correlation_id", key.Value, nil
	case entity.KeyEmail:
		return "email", key.Value, nil
	default:
		return "", nil, fmt.Errorf("unsupported correlation key %q", key.Kind)
	}
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	lead := &entity.Lead{}
	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.Plan,
		&lead.CorrelationID,
		&lead.CRMContactID,
		&lead.PaymentCustomerID,
		&lead.SubscriptionStatus,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}
