package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/casamia/boardinghouse-api/internal/config"
	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/repository"
	"github.com/casamia/boardinghouse-api/pkg/google"
	"github.com/casamia/boardinghouse-api/pkg/hash"
	"github.com/casamia/boardinghouse-api/pkg/token"
)

// SessionCache is the resolution cache contract, satisfied by
// sessioncache.SessionCache. Get returns (nil, nil) on a miss. Invalidate
// must win against a concurrent Put for the same hash, whatever the
// ordering: a revoked token may never come back from Get.
type SessionCache interface {
	Get(ctx context.Context, tokenHash string) (*domain.Identity, error)
	Put(ctx context.Context, tokenHash string, identity domain.Identity) error
	Invalidate(ctx context.Context, tokenHash string) error
}

// AuthService owns the session lifecycle for both identity kinds. Users
// authenticate through the Google OAuth callback, tenants with username and
// password; both end up holding the same opaque session token artifact.
type AuthService struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	cache      SessionCache
	exchanger  google.Exchanger
	cfg        *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	cache SessionCache,
	exchanger google.Exchanger,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		cache:      cache,
		exchanger:  exchanger,
		cfg:        cfg,
	}
}

// GoogleLoginResult carries everything the callback handler needs to set
// the response cookies.
type GoogleLoginResult struct {
	User         *domain.User
	SessionToken string
	UserData     string
}

// HandleGoogleCallback exchanges the authorization code, upserts the user
// by google_id and issues a fresh session. Any previously issued token for
// the same identity stops resolving.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*GoogleLoginResult, error) {
	profile, tokenBundle, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	user := &domain.User{
		GoogleID:    profile.ID,
		Name:        profile.Name,
		Email:       profile.Email,
		Picture:     profile.Picture,
		OAuthTokens: tokenBundle,
	}

	stored, err := s.userRepo.UpsertByGoogleID(ctx, user)
	if err != nil {
		return nil, err
	}

	// Drop the old token from the cache before it is overwritten
	if stored.SessionTokenHash != nil {
		s.invalidateCache(ctx, *stored.SessionTokenHash)
	}

	sessionToken, err := token.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := s.userRepo.SetSessionToken(ctx, stored.GoogleID, token.HashSessionToken(sessionToken)); err != nil {
		return nil, err
	}
	stored.IsActive = true

	userData, err := token.SignUserData(
		s.cfg.Session.SigningSecret,
		stored.GoogleID, stored.Name, stored.Email, stored.Picture,
		s.cfg.Session.TTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sign user data: %w", err)
	}

	return &GoogleLoginResult{
		User:         stored,
		SessionToken: sessionToken,
		UserData:     userData,
	}, nil
}

// TenantLogin authenticates a tenant and issues a session token. A missing
// username is ErrNotFound, a wrong password (or a tenant whose account was
// never created) is ErrInvalidCredentials. Success marks the tenant active.
func (s *AuthService) TenantLogin(ctx context.Context, username, password string) (*domain.Tenant, string, error) {
	tenant, err := s.tenantRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}

	if !tenant.HasAccount() {
		return nil, "", fmt.Errorf("tenant has no account: %w", domain.ErrInvalidCredentials)
	}

	ok, err := hash.Verify(password, *tenant.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, "", domain.ErrInvalidCredentials
	}

	if tenant.SessionTokenHash != nil {
		s.invalidateCache(ctx, *tenant.SessionTokenHash)
	}

	sessionToken, err := token.NewSessionToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := s.tenantRepo.SetSessionToken(ctx, tenant.ID, token.HashSessionToken(sessionToken)); err != nil {
		return nil, "", err
	}
	tenant.Active = true

	return tenant, sessionToken, nil
}

// ResolveSession maps an opaque token to its identity. It fails closed:
// anything but an active row holding the token is ErrUnauthorized.
func (s *AuthService) ResolveSession(ctx context.Context, sessionToken string) (*domain.Identity, error) {
	if sessionToken == "" {
		return nil, domain.ErrUnauthorized
	}

	tokenHash := token.HashSessionToken(sessionToken)

	if cached, err := s.cache.Get(ctx, tokenHash); err != nil {
		log.Printf("session cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	var identity domain.Identity

	user, err := s.userRepo.GetBySessionTokenHash(ctx, tokenHash)
	switch {
	case err == nil:
		identity = domain.UserIdentity(user)
	case errors.Is(err, domain.ErrNotFound):
		tenant, terr := s.tenantRepo.GetBySessionTokenHash(ctx, tokenHash)
		if terr != nil {
			if errors.Is(terr, domain.ErrNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, terr
		}
		identity = domain.TenantIdentity(tenant)
	default:
		return nil, err
	}

	if err := s.cache.Put(ctx, tokenHash, identity); err != nil {
		log.Printf("session cache write failed: %v", err)
	}

	return &identity, nil
}

// Logout revokes a user session by its token. Revoking a token that no
// longer resolves reports ErrNotFound; the caller may treat that as an
// already-logged-out success.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	tokenHash := token.HashSessionToken(sessionToken)
	s.invalidateCache(ctx, tokenHash)
	return s.userRepo.ClearSessionByTokenHash(ctx, tokenHash)
}

// TenantLogout deactivates a tenant session by username. Already-inactive
// tenants report ErrNotActive, unknown usernames ErrNotFound.
func (s *AuthService) TenantLogout(ctx context.Context, username string) error {
	tenant, err := s.tenantRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if tenant.SessionTokenHash != nil {
		s.invalidateCache(ctx, *tenant.SessionTokenHash)
	}

	return s.tenantRepo.ClearSessionByUsername(ctx, username)
}

// DeactivateByGoogleID is the account-deletion trigger: same effect as a
// logout, addressed by the external identity key.
func (s *AuthService) DeactivateByGoogleID(ctx context.Context, googleID string) error {
	user, err := s.userRepo.GetByGoogleID(ctx, googleID)
	if err != nil {
		return err
	}

	if user.SessionTokenHash != nil {
		s.invalidateCache(ctx, *user.SessionTokenHash)
	}

	return s.userRepo.DeactivateByGoogleID(ctx, googleID)
}

func (s *AuthService) invalidateCache(ctx context.Context, tokenHash string) {
	if err := s.cache.Invalidate(ctx, tokenHash); err != nil {
		log.Printf("session cache invalidation failed: %v", err)
	}
}
