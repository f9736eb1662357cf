package service

import (
	"context"
	"fmt"
	"time"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/repository"
	"github.com/casamia/boardinghouse-api/pkg/hash"
)

type TenantService struct {
	tenantRepo repository.TenantRepository
}

func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

type RegisterTenantRequest struct {
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	ContactNo    string  `json:"contact_no" validate:"required"`
	EmailAddress string  `json:"email_address" validate:"required,email"`
	RentalStart  string  `json:"rental_start" validate:"required,datetime=2006-01-02"`
	RoomNumber   *string `json:"room_number,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
}

// Register creates a tenant without login credentials; the create-account
// step grants those later.
func (s *TenantService) Register(ctx context.Context, req RegisterTenantRequest) (*domain.Tenant, error) {
	rentalStart, err := time.Parse("2006-01-02", req.RentalStart)
	if err != nil {
		return nil, fmt.Errorf("invalid rental_start: %w", domain.ErrValidation)
	}

	tenant := &domain.Tenant{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContactNo:    req.ContactNo,
		EmailAddress: req.EmailAddress,
		RentalStart:  rentalStart,
		RoomNumber:   req.RoomNumber,
		Avatar:       req.Avatar,
	}

	id, err := s.tenantRepo.Create(ctx, tenant)
	if err != nil {
		return nil, err
	}
	tenant.ID = id

	return tenant, nil
}

// CreateAccount sets the tenant's login credentials. The password is stored
// as an argon2id hash only.
func (s *TenantService) CreateAccount(ctx context.Context, id int64, username, password string) error {
	passwordHash, err := hash.Password(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.tenantRepo.SetCredentials(ctx, id, username, passwordHash)
}

// UpdatePatch applies a partial update and returns the new row together
// with the columns that actually changed.
func (s *TenantService) UpdatePatch(ctx context.Context, id int64, patch domain.TenantPatch) (*domain.Tenant, []string, error) {
	current, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	next, changed := patch.Apply(*current)
	if len(changed) == 0 {
		return current, nil, nil
	}

	if err := s.tenantRepo.UpdateColumns(ctx, &next, changed); err != nil {
		return nil, nil, err
	}

	return &next, changed, nil
}

func (s *TenantService) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

func (s *TenantService) List(ctx context.Context) ([]*domain.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

func (s *TenantService) Delete(ctx context.Context, id int64) error {
	return s.tenantRepo.Delete(ctx, id)
}

// RenewLeaseFrom restarts the lease at the given date and leaves it
// open-ended. Distinct from ClearLeaseEnd, which keeps the original start.
func (s *TenantService) RenewLeaseFrom(ctx context.Context, id int64, start time.Time) error {
	return s.tenantRepo.RenewLeaseFrom(ctx, id, start)
}

// ClearLeaseEnd removes the end date of the current term without resetting
// rental_start.
func (s *TenantService) ClearLeaseEnd(ctx context.Context, id int64) error {
	return s.tenantRepo.ClearLeaseEnd(ctx, id)
}

// TerminateLease sets the lease end date.
func (s *TenantService) TerminateLease(ctx context.Context, id int64, end time.Time) error {
	return s.tenantRepo.TerminateLease(ctx, id, end)
}
