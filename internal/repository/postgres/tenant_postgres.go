package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/repository"
)

const tenantColumns = `tenant_id, first_name, last_name, contact_no, email_address,
	   username, password_hash, active, rental_start, lease_end,
	   room_number, avatar, session_token_hash, created_at, updated_at`

// Columns TenantPatch.Apply may name. Anything else is a programming error.
var patchableTenantColumns = map[string]bool{
	"first_name":    true,
	"last_name":     true,
	"contact_no":    true,
	"email_address": true,
	"room_number":   true,
	"avatar":        true,
	"rental_start":  true,
}

type tenantRepository struct {
	db *sqlx.DB
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db *sqlx.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

// Create inserts a new tenant and returns the generated numeric id
func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (int64, error) {
	query := `
		INSERT INTO tenants (
			first_name, last_name, contact_no, email_address,
			active, rental_start, lease_end, room_number, avatar,
			created_at, updated_at
		) VALUES (
			:first_name, :last_name, :contact_no, :email_address,
			FALSE, :rental_start, :lease_end, :room_number, :avatar,
			NOW(), NOW()
		)
		RETURNING tenant_id`

	rows, err := r.db.NamedQueryContext(ctx, query, tenant)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("contact_no or email_address already registered: %w", domain.ErrConflict)
		}
		return 0, fmt.Errorf("failed to create tenant: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, fmt.Errorf("create tenant returned no id")
	}

	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to scan tenant id: %w", err)
	}

	return id, nil
}

// GetByID retrieves a tenant by its numeric id
func (r *tenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1`

	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant by id: %w", err)
	}

	return &tenant, nil
}

// GetByUsername retrieves a tenant by login username
func (r *tenantRepository) GetByUsername(ctx context.Context, username string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE username = $1`

	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant by username: %w", err)
	}

	return &tenant, nil
}

// GetBySessionTokenHash resolves an active tenant session; inactive rows never match.
func (r *tenantRepository) GetBySessionTokenHash(ctx context.Context, tokenHash string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE session_token_hash = $1 AND active = TRUE`

	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant by session token: %w", err)
	}

	return &tenant, nil
}

// List retrieves all tenants ordered by registration time
func (r *tenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC`

	var tenants []*domain.Tenant
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return tenants, nil
}

// UpdateColumns writes only the named columns, taken from the patched row.
func (r *tenantRepository) UpdateColumns(ctx context.Context, tenant *domain.Tenant, columns []string) error {
	if len(columns) == 0 {
		return nil
	}

	assignments := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		if !patchableTenantColumns[col] {
			return fmt.Errorf("column %q is not patchable", col)
		}
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}
	assignments = append(assignments, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE tenants SET %s WHERE tenant_id = :tenant_id",
		strings.Join(assignments, ", "),
	)

	result, err := r.db.NamedExecContext(ctx, query, tenant)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contact_no or email_address already registered: %w", domain.ErrConflict)
		}
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}

	return nil
}

// SetCredentials completes the create-account step for a tenant
func (r *tenantRepository) SetCredentials(ctx context.Context, id int64, username, passwordHash string) error {
	query := `
		UPDATE tenants
		SET username = $2,
			password_hash = $3,
			updated_at = NOW()
		WHERE tenant_id = $1`

	result, err := r.db.ExecContext(ctx, query, id, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username already taken: %w", domain.ErrConflict)
		}
		return fmt.Errorf("failed to set tenant credentials: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}

	return nil
}

// SetSessionToken stores a fresh token hash and activates the tenant in one
// statement; any previously issued token stops matching immediately.
func (r *tenantRepository) SetSessionToken(ctx context.Context, id int64, tokenHash string) error {
	query := `
		UPDATE tenants
		SET session_token_hash = $2,
			active = TRUE,
			updated_at = NOW()
		WHERE tenant_id = $1`

	result, err := r.db.ExecContext(ctx, query, id, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to set tenant session token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}

	return nil
}

// ClearSessionByUsername deactivates the tenant's session
func (r *tenantRepository) ClearSessionByUsername(ctx context.Context, username string) error {
	query := `
		UPDATE tenants
		SET session_token_hash = NULL,
			active = FALSE,
			updated_at = NOW()
		WHERE username = $1 AND active = TRUE`

	result, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("failed to clear tenant session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM tenants WHERE username = $1)`, username); err != nil {
		return fmt.Errorf("failed to check tenant existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("tenant already inactive: %w", domain.ErrNotActive)
}

// Delete removes a tenant row
func (r *tenantRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE tenant_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}

	return nil
}

// RenewLeaseFrom restarts the lease at the given date with an open end
func (r *tenantRepository) RenewLeaseFrom(ctx context.Context, id int64, start time.Time) error {
	query := `
		UPDATE tenants
		SET rental_start = $2,
			lease_end = NULL,
			updated_at = NOW()
		WHERE tenant_id = $1`

	return r.execLeaseUpdate(ctx, query, id, start)
}

// ClearLeaseEnd extends the current term indefinitely without touching rental_start
func (r *tenantRepository) ClearLeaseEnd(ctx context.Context, id int64) error {
	query := `
		UPDATE tenants
		SET lease_end = NULL,
			updated_at = NOW()
		WHERE tenant_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to clear lease end: %w", err)
	}
	return checkFound(result)
}

// TerminateLease sets the lease end date
func (r *tenantRepository) TerminateLease(ctx context.Context, id int64, end time.Time) error {
	query := `
		UPDATE tenants
		SET lease_end = $2,
			updated_at = NOW()
		WHERE tenant_id = $1`

	return r.execLeaseUpdate(ctx, query, id, end)
}

func (r *tenantRepository) execLeaseUpdate(ctx context.Context, query string, id int64, date time.Time) error {
	result, err := r.db.ExecContext(ctx, query, id, date)
	if err != nil {
		return fmt.Errorf("failed to update lease: %w", err)
	}
	return checkFound(result)
}

func checkFound(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	return nil
}
