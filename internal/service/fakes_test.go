package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/pkg/google"
)

// In-memory fakes shared by the service tests. The payment and contract
// fakes are mutex-protected so the allocation tests can hammer them from
// several goroutines; like the real store, the uniqueness check happens
// inside Create, not in the read that precedes it.

type fakePaymentRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{rows: make(map[string]*domain.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.rows[payment.ID]; taken {
		return fmt.Errorf("payment id %s already allocated: %w", payment.ID, domain.ErrConflict)
	}
	stored := *payment
	r.rows[payment.ID] = &stored
	return nil
}

func (r *fakePaymentRepo) MaxIDForDay(_ context.Context, dayPrefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID string
	for id := range r.rows {
		if strings.HasPrefix(id, dayPrefix+"-") && id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("payment not found: %w", domain.ErrNotFound)
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePaymentRepo) List(_ context.Context) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payments := make([]*domain.Payment, 0, len(r.rows))
	for _, payment := range r.rows {
		copied := *payment
		payments = append(payments, &copied)
	}
	return payments, nil
}

func (r *fakePaymentRepo) ListByTenant(_ context.Context, tenantID int64) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payments []*domain.Payment
	for _, payment := range r.rows {
		if payment.TenantID == tenantID {
			copied := *payment
			payments = append(payments, &copied)
		}
	}
	return payments, nil
}

type fakeContractRepo struct {
	mu sync.Mutex
	rows map[string]*domain.Contract
	// failCreates makes the next n Create calls conflict, simulating a
	// concurrent upload winning the probed slot.
	failCreates int
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{rows: make(map[string]*domain.Contract)}
}

func (r *fakeContractRepo) Create(_ context.Context, contract *domain.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates > 0 {
		r.failCreates--
		// The winner takes the slot before the loser's insert lands
		stored := *contract
		stored.TenantID = -1
		r.rows[contract.ID] = &stored
		return fmt.Errorf("contract id %s already allocated: %w", contract.ID, domain.ErrConflict)
	}
	if _, taken := r.rows[contract.ID]; taken {
		return fmt.Errorf("contract id %s already allocated: %w", contract.ID, domain.ErrConflict)
	}
	stored := *contract
	r.rows[contract.ID] = &stored
	return nil
}

func (r *fakeContractRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, taken := r.rows[id]
	return taken, nil
}

func (r *fakeContractRepo) GetByID(_ context.Context, id string) (*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contract, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("contract not found: %w", domain.ErrNotFound)
	}
	copied := *contract
	return &copied, nil
}

func (r *fakeContractRepo) ListByTenant(_ context.Context, tenantID int64) ([]*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var contracts []*domain.Contract
	for _, contract := range r.rows {
		if contract.TenantID == tenantID {
			copied := *contract
			copied.Document = nil
			contracts = append(contracts, &copied)
		}
	}
	return contracts, nil
}

type fakeTenantRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{nextID: 1, rows: make(map[int64]*domain.Tenant)}
}

func (r *fakeTenantRepo) Create(_ context.Context, tenant *domain.Tenant) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	stored := *tenant
	stored.ID = id
	r.rows[id] = &stored
	return id, nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	copied := *tenant
	return &copied, nil
}

func (r *fakeTenantRepo) GetByUsername(_ context.Context, username string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tenant := range r.rows {
		if tenant.Username != nil && *tenant.Username == username {
			copied := *tenant
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
}

func (r *fakeTenantRepo) GetBySessionTokenHash(_ context.Context, tokenHash string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tenant := range r.rows {
		if tenant.Active && tenant.SessionTokenHash != nil && *tenant.SessionTokenHash == tokenHash {
			copied := *tenant
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
}

func (r *fakeTenantRepo) List(_ context.Context) ([]*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenants := make([]*domain.Tenant, 0, len(r.rows))
	for _, tenant := range r.rows {
		copied := *tenant
		tenants = append(tenants, &copied)
	}
	return tenants, nil
}

func (r *fakeTenantRepo) UpdateColumns(_ context.Context, tenant *domain.Tenant, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[tenant.ID]; !ok {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	stored := *tenant
	r.rows[tenant.ID] = &stored
	return nil
}

func (r *fakeTenantRepo) SetCredentials(_ context.Context, id int64, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	tenant.Username = &username
	tenant.PasswordHash = &passwordHash
	return nil
}

func (r *fakeTenantRepo) SetSessionToken(_ context.Context, id int64, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	tenant.SessionTokenHash = &tokenHash
	tenant.Active = true
	return nil
}

func (r *fakeTenantRepo) ClearSessionByUsername(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tenant := range r.rows {
		if tenant.Username != nil && *tenant.Username == username {
			if !tenant.Active {
				return fmt.Errorf("tenant already inactive: %w", domain.ErrNotActive)
			}
			tenant.Active = false
			tenant.SessionTokenHash = nil
			return nil
		}
	}
	return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
}

func (r *fakeTenantRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeTenantRepo) RenewLeaseFrom(_ context.Context, id int64, start time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	tenant.RentalStart = start
	tenant.LeaseEnd = nil
	return nil
}

func (r *fakeTenantRepo) ClearLeaseEnd(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	tenant.LeaseEnd = nil
	return nil
}

func (r *fakeTenantRepo) TerminateLease(_ context.Context, id int64, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("tenant not found: %w", domain.ErrNotFound)
	}
	tenant.LeaseEnd = &end
	return nil
}

type fakeUserRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.User // keyed by google_id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) UpsertByGoogleID(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[user.GoogleID]
	if !ok {
		stored := *user
		stored.ID = uuid.New()
		stored.IsActive = true
		r.rows[user.GoogleID] = &stored
		copied := stored
		return &copied, nil
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.Picture = user.Picture
	existing.OAuthTokens = user.OAuthTokens
	existing.IsActive = true
	copied := *existing
	return &copied, nil
}

func (r *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.rows[googleID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetBySessionTokenHash(_ context.Context, tokenHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.rows {
		if user.IsActive && user.SessionTokenHash != nil && *user.SessionTokenHash == tokenHash {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
}

func (r *fakeUserRepo) SetSessionToken(_ context.Context, googleID, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.rows[googleID]
	if !ok {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	user.SessionTokenHash = &tokenHash
	user.IsActive = true
	return nil
}

func (r *fakeUserRepo) ClearSessionByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.rows {
		if user.SessionTokenHash != nil && *user.SessionTokenHash == tokenHash {
			user.SessionTokenHash = nil
			user.IsActive = false
			return nil
		}
	}
	return fmt.Errorf("session not found: %w", domain.ErrNotFound)
}

func (r *fakeUserRepo) DeactivateByGoogleID(_ context.Context, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.rows[googleID]
	if !ok {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if !user.IsActive {
		return fmt.Errorf("user already inactive: %w", domain.ErrNotActive)
	}
	user.IsActive = false
	user.SessionTokenHash = nil
	return nil
}

// fakeSessionCache mirrors sessioncache.SessionCache semantics: Invalidate
// tombstones the hash and Put never overwrites an existing entry, tombstone
// included.
type fakeSessionCache struct {
	mu         sync.Mutex
	entries    map[string]domain.Identity
	tombstoned map[string]bool
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{
		entries:    make(map[string]domain.Identity),
		tombstoned: make(map[string]bool),
	}
}

func (c *fakeSessionCache) Get(_ context.Context, tokenHash string) (*domain.Identity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	identity, ok := c.entries[tokenHash]
	if !ok {
		return nil, nil
	}
	copied := identity
	return &copied, nil
}

func (c *fakeSessionCache) Put(_ context.Context, tokenHash string, identity domain.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tombstoned[tokenHash] {
		return nil
	}
	if _, ok := c.entries[tokenHash]; ok {
		return nil
	}
	c.entries[tokenHash] = identity
	return nil
}

func (c *fakeSessionCache) Invalidate(_ context.Context, tokenHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tokenHash)
	c.tombstoned[tokenHash] = true
	return nil
}

type fakeExchanger struct {
	profile google.Profile
}

func (e *fakeExchanger) Exchange(_ context.Context, _ string) (*google.Profile, string, error) {
	copied := e.profile
	return &copied, `{"access_token":"stub"}`, nil
}
