package repository

import (
	"context"
	"time"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	GetByUsername(ctx context.Context, username string) (*domain.Tenant, error)
	GetBySessionTokenHash(ctx context.Context, tokenHash string) (*domain.Tenant, error)
	List(ctx context.Context) ([]*domain.Tenant, error)
	// UpdateColumns writes only the named columns of the row; the set comes
	// from TenantPatch.Apply, never from request-driven string assembly.
	UpdateColumns(ctx context.Context, tenant *domain.Tenant, columns []string) error
	SetCredentials(ctx context.Context, id int64, username, passwordHash string) error
	// SetSessionToken stores a fresh token hash and sets active in one
	// statement (re-login implicitly revokes the previous token).
	SetSessionToken(ctx context.Context, id int64, tokenHash string) error
	// ClearSessionByUsername deactivates the tenant. ErrNotActive if the row
	// exists but is already inactive, ErrNotFound if there is no such username.
	ClearSessionByUsername(ctx context.Context, username string) error
	Delete(ctx context.Context, id int64) error

	// Lease operations are deliberately separate (renew-from-date vs clear
	// end vs terminate) so callers choose the semantics explicitly.
	RenewLeaseFrom(ctx context.Context, id int64, start time.Time) error
	ClearLeaseEnd(ctx context.Context, id int64) error
	TerminateLease(ctx context.Context, id int64, end time.Time) error
}
