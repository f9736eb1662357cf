package repository

import (
	"context"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

type UserRepository interface {
	// UpsertByGoogleID inserts the user or refreshes profile fields and the
	// token bundle for an existing google_id, reactivating the row.
	UpsertByGoogleID(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	// GetBySessionTokenHash only matches active rows; inactive sessions fail closed.
	GetBySessionTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	// SetSessionToken overwrites any prior token and marks the row active in
	// a single statement.
	SetSessionToken(ctx context.Context, googleID, tokenHash string) error
	// ClearSessionByTokenHash revokes the session holding the token. Returns
	// ErrNotFound when no row holds it (already revoked tokens no longer
	// match, which is the idempotent case the caller wants).
	ClearSessionByTokenHash(ctx context.Context, tokenHash string) error
	// DeactivateByGoogleID is the account-deletion trigger: same effect as a
	// revoke, addressed by external id. ErrNotActive when already inactive.
	DeactivateByGoogleID(ctx context.Context, googleID string) error
}
