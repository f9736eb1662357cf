package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// UpsertByGoogleID inserts or refreshes the user row keyed by google_id.
// Profile fields and the token bundle are updated on conflict and the row
// is reactivated; the session token is set separately by SetSessionToken.
func (r *userRepository) UpsertByGoogleID(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users (
			id, google_id, name, email, picture, oauth_tokens,
			is_active, created_at, updated_at
		) VALUES (
			:id, :google_id, :name, :email, :picture, :oauth_tokens,
			TRUE, NOW(), NOW()
		)
		ON CONFLICT (google_id) DO UPDATE
		SET name = EXCLUDED.name,
			email = EXCLUDED.email,
			picture = EXCLUDED.picture,
			oauth_tokens = EXCLUDED.oauth_tokens,
			is_active = TRUE,
			updated_at = NOW()
		RETURNING id, google_id, name, email, picture, oauth_tokens,
				  is_active, session_token_hash, created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("upsert user returned no row")
	}

	var stored domain.User
	if err := rows.StructScan(&stored); err != nil {
		return nil, fmt.Errorf("failed to scan upserted user: %w", err)
	}

	return &stored, nil
}

// GetByGoogleID retrieves a user by their external identity key
func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `
		SELECT id, google_id, name, email, picture, oauth_tokens,
			   is_active, session_token_hash, created_at, updated_at
		FROM users
		WHERE google_id = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by google id: %w", err)
	}

	return &user, nil
}

// GetBySessionTokenHash resolves an active session; inactive rows never match.
func (r *userRepository) GetBySessionTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `
		SELECT id, google_id, name, email, picture, oauth_tokens,
			   is_active, session_token_hash, created_at, updated_at
		FROM users
		WHERE session_token_hash = $1 AND is_active = TRUE`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by session token: %w", err)
	}

	return &user, nil
}

// SetSessionToken overwrites the stored token hash and activates the row in
// a single statement, so a concurrent logout cannot interleave.
func (r *userRepository) SetSessionToken(ctx context.Context, googleID, tokenHash string) error {
	query := `
		UPDATE users
		SET session_token_hash = $2,
			is_active = TRUE,
			updated_at = NOW()
		WHERE google_id = $1`

	result, err := r.db.ExecContext(ctx, query, googleID, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to set session token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	return nil
}

// ClearSessionByTokenHash revokes the session that holds the token. A token
// that no longer matches any row has already been revoked.
func (r *userRepository) ClearSessionByTokenHash(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE users
		SET session_token_hash = NULL,
			is_active = FALSE,
			updated_at = NOW()
		WHERE session_token_hash = $1`

	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found: %w", domain.ErrNotFound)
	}

	return nil
}

// DeactivateByGoogleID clears the session addressed by external id.
func (r *userRepository) DeactivateByGoogleID(ctx context.Context, googleID string) error {
	query := `
		UPDATE users
		SET session_token_hash = NULL,
			is_active = FALSE,
			updated_at = NOW()
		WHERE google_id = $1 AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query, googleID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// Distinguish an already-inactive row from a missing one
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE google_id = $1)`, googleID); err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("user already inactive: %w", domain.ErrNotActive)
}
