package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/idgen"
	"github.com/casamia/boardinghouse-api/internal/repository"
)

type ContractService struct {
	contractRepo repository.ContractRepository
	tenantRepo   repository.TenantRepository
	maxAttempts  int
	now          func() time.Time
}

func NewContractService(contractRepo repository.ContractRepository, tenantRepo repository.TenantRepository, maxAttempts int) *ContractService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &ContractService{
		contractRepo: contractRepo,
		tenantRepo:   tenantRepo,
		maxAttempts:  maxAttempts,
		now:          time.Now,
	}
}

// Upload stores a contract document under a freshly probed id. Contract ids
// are scoped to the upload date and take the smallest unused counter; a
// concurrent upload can win the probed slot, in which case the insert comes
// back as a conflict and the probe starts over.
func (s *ContractService) Upload(ctx context.Context, tenantID int64, fileName string, document []byte) (*domain.Contract, error) {
	if len(document) == 0 {
		return nil, fmt.Errorf("contract document is empty: %w", domain.ErrValidation)
	}

	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return nil, err
	}

	today := s.now()

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		id, err := s.probeFreeID(ctx, today)
		if err != nil {
			return nil, err
		}

		contract := &domain.Contract{
			ID:       id,
			TenantID: tenantID,
			FileName: fileName,
			Document: document,
		}

		err = s.contractRepo.Create(ctx, contract)
		if err == nil {
			contract.UploadedAt = today
			return contract, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("contract id allocation contended %d times: %w", s.maxAttempts, domain.ErrConflict)
}

// probeFreeID walks the day's counter space upward and returns the smallest
// unused id.
func (s *ContractService) probeFreeID(ctx context.Context, date time.Time) (string, error) {
	for n := 1; n <= idgen.CounterMax; n++ {
		id, err := idgen.ContractID(date, n)
		if err != nil {
			return "", err
		}
		taken, err := s.contractRepo.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", domain.ErrCounterExhausted
}

func (s *ContractService) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contractRepo.GetByID(ctx, id)
}

func (s *ContractService) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Contract, error) {
	return s.contractRepo.ListByTenant(ctx, tenantID)
}
