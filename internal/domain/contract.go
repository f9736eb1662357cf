package domain

import "time"

// Contract stores the signed lease document for a tenant. The id is the
// human-readable form YYYYMMDDCONTRACTNNNN, allocated at upload time from
// the current date.
type Contract struct {
	ID         string    `json:"contract_id" db:"contract_id"`
	TenantID   int64     `json:"tenant_id" db:"tenant_id"`
	FileName   string    `json:"file_name" db:"file_name"`
	Document   []byte    `json:"-" db:"document"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}
