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

const paymentDayLayout = "20060102"

type PaymentService struct {
	paymentRepo repository.PaymentRepository
	tenantRepo  repository.TenantRepository
	maxAttempts int
}

func NewPaymentService(paymentRepo repository.PaymentRepository, tenantRepo repository.TenantRepository, maxAttempts int) *PaymentService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		maxAttempts: maxAttempts,
	}
}

type RecordPaymentRequest struct {
	TenantID    int64   `json:"tenant_id" form:"tenant_id" validate:"required,gt=0"`
	Amount      float64 `json:"amount" form:"amount" validate:"required,gt=0"`
	PaymentDate string  `json:"payment_date" form:"payment_date" validate:"required,datetime=2006-01-02"`
	Remarks     *string `json:"remarks,omitempty" form:"remarks"`
}

// RecordPayment allocates the next id for the payment's date and persists
// the row. The read-increment-insert is not atomic, so a concurrent
// allocation for the same day can collide on the primary key; the loop
// retries with a fresh read, bounded by maxAttempts.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*domain.Payment, error) {
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid payment_date: %w", domain.ErrValidation)
	}

	if _, err := s.tenantRepo.GetByID(ctx, req.TenantID); err != nil {
		return nil, err
	}

	dayPrefix := paymentDate.Format(paymentDayLayout)

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		maxID, err := s.paymentRepo.MaxIDForDay(ctx, dayPrefix)
		if err != nil {
			return nil, err
		}

		id, err := idgen.NextPaymentID(paymentDate, maxID)
		if err != nil {
			return nil, err
		}

		payment := &domain.Payment{
			ID:          id,
			TenantID:    req.TenantID,
			Amount:      req.Amount,
			Status:      domain.PaymentStatusPaid,
			PaymentDate: paymentDate,
			Remarks:     req.Remarks,
		}

		err = s.paymentRepo.Create(ctx, payment)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		// Lost the allocation race; re-read the max and try again.
	}

	return nil, fmt.Errorf("payment id allocation contended %d times: %w", s.maxAttempts, domain.ErrConflict)
}

func (s *PaymentService) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context) ([]*domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}

func (s *PaymentService) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	return s.paymentRepo.ListByTenant(ctx, tenantID)
}
