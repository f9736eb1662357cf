package repository

import (
	"context"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

type ContractRepository interface {
	// Create surfaces a duplicate contract_id as domain.ErrConflict.
	Create(ctx context.Context, contract *domain.Contract) error
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	// ListByTenant returns contract metadata without the document blobs.
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Contract, error)
}
