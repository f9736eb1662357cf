package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a Google-authenticated admin identity. The session token is never
// stored in the clear: SessionTokenHash holds a SHA-256 of the opaque token
// handed to the client, and is NULL while the user is logged out.
type User struct {
	ID               uuid.UUID `json:"id" db:"id"`
	GoogleID         string    `json:"google_id" db:"google_id"`
	Name             string    `json:"name" db:"name"`
	Email            string    `json:"email" db:"email"`
	Picture          string    `json:"picture" db:"picture"`
	OAuthTokens      string    `json:"-" db:"oauth_tokens"` // serialized provider token bundle
	IsActive         bool      `json:"is_active" db:"is_active"`
	SessionTokenHash *string   `json:"-" db:"session_token_hash"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
