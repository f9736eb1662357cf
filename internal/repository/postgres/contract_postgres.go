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

type contractRepository struct {
	db *sqlx.DB
}

// NewContractRepository creates a new PostgreSQL contract repository
func NewContractRepository(db *sqlx.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

// Create inserts a contract. A duplicate contract_id surfaces as
// ErrConflict so the probing allocator can continue past it.
func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	query := `
		INSERT INTO contracts (
			contract_id, tenant_id, file_name, document, uploaded_at
		) VALUES (
			:contract_id, :tenant_id, :file_name, :document, NOW()
		)`

	_, err := r.db.NamedExecContext(ctx, query, contract)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contract id %s already allocated: %w", contract.ID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create contract: %w", err)
	}

	return nil
}

// Exists reports whether a contract id is already taken
func (r *contractRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM contracts WHERE contract_id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check contract existence: %w", err)
	}
	return exists, nil
}

// GetByID retrieves a contract including its document blob
func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `
		SELECT contract_id, tenant_id, file_name, document, uploaded_at
		FROM contracts
		WHERE contract_id = $1`

	var contract domain.Contract
	err := r.db.GetContext(ctx, &contract, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contract not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contract by id: %w", err)
	}

	return &contract, nil
}

// ListByTenant retrieves contract metadata for a tenant, without blobs
func (r *contractRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Contract, error) {
	query := `
		SELECT contract_id, tenant_id, file_name, uploaded_at
		FROM contracts
		WHERE tenant_id = $1
		ORDER BY contract_id DESC`

	var contracts []*domain.Contract
	if err := r.db.SelectContext(ctx, &contracts, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list contracts by tenant: %w", err)
	}

	return contracts, nil
}
