package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/repository"
)

type paymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new PostgreSQL payment repository
func NewPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts a payment. The primary key on payment_id is what makes the
// id allocation safe: a lost race comes back as ErrConflict and the caller
// retries with a fresh read.
func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			payment_id, tenant_id, amount, payment_status, payment_date,
			remarks, created_at
		) VALUES (
			:payment_id, :tenant_id, :amount, :payment_status, :payment_date,
			:remarks, NOW()
		)`

	_, err := r.db.NamedExecContext(ctx, query, payment)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("payment id %s already allocated: %w", payment.ID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// MaxIDForDay returns the greatest existing payment id for a YYYYMMDD
// prefix, or "" for an empty day. Counter segments are zero-padded so
// lexicographic MAX is also the numeric max.
func (r *paymentRepository) MaxIDForDay(ctx context.Context, dayPrefix string) (string, error) {
	query := `
		SELECT COALESCE(MAX(payment_id), '')
		FROM payments
		WHERE payment_id LIKE $1 || '-%'`

	var maxID string
	if err := r.db.GetContext(ctx, &maxID, query, dayPrefix); err != nil {
		return "", fmt.Errorf("failed to get max payment id for day: %w", err)
	}

	return maxID, nil
}

// GetByID retrieves a payment by its human-readable id
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, tenant_id, amount, payment_status, payment_date,
			   remarks, created_at
		FROM payments
		WHERE payment_id = $1`

	var payment domain.Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment by id: %w", err)
	}

	return &payment, nil
}

// List retrieves all payments, newest first
func (r *paymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	query := `
		SELECT payment_id, tenant_id, amount, payment_status, payment_date,
			   remarks, created_at
		FROM payments
		ORDER BY payment_id DESC`

	var payments []*domain.Payment
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

// ListByTenant retrieves a tenant's payments, newest first
func (r *paymentRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	query := `
		SELECT payment_id, tenant_id, amount, payment_status, payment_date,
			   remarks, created_at
		FROM payments
		WHERE tenant_id = $1
		ORDER BY payment_id DESC`

	var payments []*domain.Payment
	if err := r.db.SelectContext(ctx, &payments, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list payments by tenant: %w", err)
	}

	return payments, nil
}
