package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

func seedTenant(t *testing.T, repo *fakeTenantRepo) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Tenant{
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		ContactNo:    "09170000001",
		EmailAddress: "juan@example.com",
		RentalStart:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("first payment of the day gets 0001", func(t *testing.T) {
		payments := newFakePaymentRepo()
		tenants := newFakeTenantRepo()
		tenantID := seedTenant(t, tenants)
		svc := NewPaymentService(payments, tenants, 5)

		payment, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			TenantID:    tenantID,
			Amount:      3500,
			PaymentDate: "2025-01-15",
		})
		require.NoError(t, err)
		assert.Equal(t, "20250115-0001", payment.ID)
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	})

	t.Run("counter advances past the stored max", func(t *testing.T) {
		payments := newFakePaymentRepo()
		tenants := newFakeTenantRepo()
		tenantID := seedTenant(t, tenants)
		svc := NewPaymentService(payments, tenants, 5)

		for _, want := range []string{"20250115-0001", "20250115-0002", "20250115-0003"} {
			payment, err := svc.RecordPayment(ctx, RecordPaymentRequest{
				TenantID:    tenantID,
				Amount:      3500,
				PaymentDate: "2025-01-15",
			})
			require.NoError(t, err)
			assert.Equal(t, want, payment.ID)
		}

		// a different day starts its own sequence
		payment, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			TenantID:    tenantID,
			Amount:      3500,
			PaymentDate: "2025-01-16",
		})
		require.NoError(t, err)
		assert.Equal(t, "20250116-0001", payment.ID)
	})

	t.Run("concurrent allocations for one day stay unique", func(t *testing.T) {
		payments := newFakePaymentRepo()
		tenants := newFakeTenantRepo()
		tenantID := seedTenant(t, tenants)
		svc := NewPaymentService(payments, tenants, 10)

		const workers = 6
		ids := make(chan string, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				payment, err := svc.RecordPayment(ctx, RecordPaymentRequest{
					TenantID:    tenantID,
					Amount:      3500,
					PaymentDate: "2025-01-15",
				})
				assert.NoError(t, err)
				if err == nil {
					ids <- payment.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[string]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
		for _, want := range []string{"20250115-0001", "20250115-0006"} {
			assert.True(t, seen[want], "missing %s", want)
		}
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		payments := newFakePaymentRepo()
		tenants := newFakeTenantRepo()
		tenantID := seedTenant(t, tenants)
		svc := NewPaymentService(&alwaysConflictPaymentRepo{fakePaymentRepo: payments}, tenants, 3)

		_, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			TenantID:    tenantID,
			Amount:      3500,
			PaymentDate: "2025-01-15",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("exhausted day counter is surfaced", func(t *testing.T) {
		payments := newFakePaymentRepo()
		tenants := newFakeTenantRepo()
		tenantID := seedTenant(t, tenants)
		require.NoError(t, payments.Create(ctx, &domain.Payment{ID: "20250115-9999", TenantID: tenantID}))
		svc := NewPaymentService(payments, tenants, 5)

		_, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			TenantID:    tenantID,
			Amount:      3500,
			PaymentDate: "2025-01-15",
		})
		assert.ErrorIs(t, err, domain.ErrCounterExhausted)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		svc := NewPaymentService(newFakePaymentRepo(), newFakeTenantRepo(), 5)
		_, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			TenantID:    99,
			Amount:      3500,
			PaymentDate: "2025-01-15",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unparseable date", func(t *testing.T) {
		tenants := newFakeTenantRepo()
		tenantID := seedTenant(t, tenants)
		svc := NewPaymentService(newFakePaymentRepo(), tenants, 5)
		_, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			TenantID:    tenantID,
			Amount:      3500,
			PaymentDate: "15-01-2025",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// alwaysConflictPaymentRepo rejects every insert, as if another writer keeps
// winning the same slot.
type alwaysConflictPaymentRepo struct {
	*fakePaymentRepo
}

func (r *alwaysConflictPaymentRepo) Create(context.Context, *domain.Payment) error {
	return domain.ErrConflict
}
