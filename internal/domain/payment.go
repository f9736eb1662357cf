package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// Payment id is the human-readable form YYYYMMDD-NNNN where the date segment
// comes from the payment date and NNNN is a per-day counter.
type Payment struct {
	ID          string        `json:"payment_id" db:"payment_id"`
	TenantID    int64         `json:"tenant_id" db:"tenant_id"`
	Amount      float64       `json:"amount" db:"amount"`
	Status      PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentDate time.Time     `json:"payment_date" db:"payment_date"`
	Remarks     *string       `json:"remarks,omitempty" db:"remarks"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
