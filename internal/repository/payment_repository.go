package repository

import (
	"context"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

type PaymentRepository interface {
	// Create surfaces a duplicate payment_id as domain.ErrConflict so the
	// allocator can retry with a fresh read.
	Create(ctx context.Context, payment *domain.Payment) error
	// MaxIDForDay returns the lexicographically greatest id with the given
	// YYYYMMDD prefix, or "" when the day has no payments yet.
	MaxIDForDay(ctx context.Context, dayPrefix string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error)
}
