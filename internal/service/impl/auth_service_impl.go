package impl

import (
	"context"
	"errors"
	"strings"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
	"loyalty/internal/observability/metrics"
	"loyalty/internal/service"
	"loyalty/internal/store"
)

type AuthServiceImpl struct {
	store     *store.Store
	passwords service.PasswordService
	tokens    service.TokenService
}

func NewAuthServiceImpl(st *store.Store, passwords service.PasswordService, tokens service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{store: st, passwords: passwords, tokens: tokens}
}

func (a *AuthServiceImpl) LoginUser(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.TokenPair, error) {
	result := "failure"
	defer func() {
		metrics.LoginsTotal.WithLabelValues("user", result).Inc()
	}()

	if r.Email == "" || r.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	u, err := a.store.Users().GetByEmail(ctx, strings.ToLower(r.Email))
	if err != nil {
		// Same answer whether the account exists or the password is
		// wrong.
		return nil, domain.ErrInvalidCredentials
	}
	if u.IsBanned {
		return nil, domain.ErrAccountSuspended
	}
	if !a.passwords.Verify(r.Password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	kind := domain.ActorUser
	if u.Role == domain.RoleAdmin {
		kind = domain.ActorAdmin
	}
	pair, err := a.tokens.Issue(ctx, domain.Actor{Kind: kind, User: u}, ip, ua)
	if err != nil {
		return nil, err
	}
	result = "success"
	return pair, nil
}

func (a *AuthServiceImpl) LoginBusiness(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.TokenPair, error) {
	result := "failure"
	defer func() {
		metrics.LoginsTotal.WithLabelValues("business", result).Inc()
	}()

	if r.Email == "" || r.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	b, err := a.store.Businesses().GetByEmail(ctx, strings.ToLower(r.Email))
	if err != nil || !b.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if b.PasswordHash == nil {
		// Admin-created record with no credentials; indistinguishable
		// from a wrong password on purpose.
		return nil, domain.ErrInvalidCredentials
	}
	if !a.passwords.Verify(r.Password, *b.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !b.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	pair, err := a.tokens.Issue(ctx, domain.Actor{Kind: domain.ActorBusiness, Business: b}, ip, ua)
	if err != nil {
		return nil, err
	}
	result = "success"
	return pair, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := a.tokens.RevokeByRefresh(ctx, refreshToken)
	if errors.Is(err, domain.ErrNotAuthenticated) {
		// Logout with a garbage cookie is still a logout.
		return nil
	}
	return err
}
