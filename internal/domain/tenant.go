package domain

import (
	"time"
)

// Tenant is a boarder. Username/password are set after registration via the
// separate create-account step; until then the tenant cannot log in.
// PasswordHash is an argon2id PHC string, never a plaintext password.
type Tenant struct {
	ID               int64      `json:"tenant_id" db:"tenant_id"`
	FirstName        string     `json:"first_name" db:"first_name"`
	LastName         string     `json:"last_name" db:"last_name"`
	ContactNo        string     `json:"contact_no" db:"contact_no"`
	EmailAddress     string     `json:"email_address" db:"email_address"`
	Username         *string    `json:"username,omitempty" db:"username"`
	PasswordHash     *string    `json:"-" db:"password_hash"`
	Active           bool       `json:"active" db:"active"`
	RentalStart      time.Time  `json:"rental_start" db:"rental_start"`
	LeaseEnd         *time.Time `json:"lease_end,omitempty" db:"lease_end"`
	RoomNumber       *string    `json:"room_number,omitempty" db:"room_number"`
	Avatar           *string    `json:"avatar,omitempty" db:"avatar"`
	SessionTokenHash *string    `json:"-" db:"session_token_hash"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// HasAccount reports whether the create-account step has been completed.
func (t *Tenant) HasAccount() bool {
	return t.Username != nil && t.PasswordHash != nil
}

// TenantPatch carries a partial tenant update. Nil fields are left
// untouched; the update statement is built from the changed-column set
// returned by Apply, never from string assembly.
type TenantPatch struct {
	FirstName    *string    `json:"first_name,omitempty"`
	LastName     *string    `json:"last_name,omitempty"`
	ContactNo    *string    `json:"contact_no,omitempty"`
	EmailAddress *string    `json:"email_address,omitempty"`
	RoomNumber   *string    `json:"room_number,omitempty"`
	Avatar       *string    `json:"avatar,omitempty"`
	RentalStart  *time.Time `json:"rental_start,omitempty"`
}

// Apply returns a copy of current with the patch applied plus the set of
// column names that actually changed. A pointer that matches the current
// value does not count as a change.
func (p TenantPatch) Apply(current Tenant) (Tenant, []string) {
	next := current
	var changed []string

	if p.FirstName != nil && *p.FirstName != current.FirstName {
		next.FirstName = *p.FirstName
		changed = append(changed, "first_name")
	}
	if p.LastName != nil && *p.LastName != current.LastName {
		next.LastName = *p.LastName
		changed = append(changed, "last_name")
	}
	if p.ContactNo != nil && *p.ContactNo != current.ContactNo {
		next.ContactNo = *p.ContactNo
		changed = append(changed, "contact_no")
	}
	if p.EmailAddress != nil && *p.EmailAddress != current.EmailAddress {
		next.EmailAddress = *p.EmailAddress
		changed = append(changed, "email_address")
	}
	if p.RoomNumber != nil && (current.RoomNumber == nil || *p.RoomNumber != *current.RoomNumber) {
		next.RoomNumber = p.RoomNumber
		changed = append(changed, "room_number")
	}
	if p.Avatar != nil && (current.Avatar == nil || *p.Avatar != *current.Avatar) {
		next.Avatar = p.Avatar
		changed = append(changed, "avatar")
	}
	if p.RentalStart != nil && !p.RentalStart.Equal(current.RentalStart) {
		next.RentalStart = *p.RentalStart
		changed = append(changed, "rental_start")
	}

	return next, changed
}
