package impl

import (
	"context"
	"errors"
	"testing"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
	"loyalty/internal/store"
)

func newAuth(t *testing.T) (*AuthServiceImpl, *store.Store) {
	t.Helper()
	st := setupStore(t)
	pw := NewPasswordServiceArgon2id()
	ts := NewTokenServiceHS256(testTokenConfig(), st)
	return NewAuthServiceImpl(st, pw, ts), st
}

func seedCredentialedUser(t *testing.T, st *store.Store, email, password, role string, banned bool) *domain.User {
	t.Helper()
	hash, err := NewPasswordServiceArgon2id().Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsBanned:     banned,
	}
	if err := st.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedCredentialedBusiness(t *testing.T, st *store.Store, email, password string, verified, active bool) *domain.Business {
	t.Helper()
	hash, err := NewPasswordServiceArgon2id().Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b := &domain.Business{
		Name:          "Seeded",
		Email:         &email,
		PasswordHash:  &hash,
		EmailVerified: verified,
		IsActive:      active,
	}
	if err := st.Businesses().Create(context.Background(), b); err != nil {
		t.Fatalf("seed business: %v", err)
	}
	return b
}

func TestLoginUserSuccess(t *testing.T) {
	svc, st := newAuth(t)
	seedCredentialedUser(t, st, "admin@test.com", "longenough1", domain.RoleAdmin, false)

	// Casing of the submitted email does not matter.
	pair, err := svc.LoginUser(context.Background(), dto.LoginRequest{
		Email: "Admin@Test.com", Password: "longenough1",
	}, "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
}

func TestLoginUserNeutralFailures(t *testing.T) {
	svc, st := newAuth(t)
	seedCredentialedUser(t, st, "user@test.com", "longenough1", domain.RoleUser, false)

	cases := []dto.LoginRequest{
		{Email: "nobody@test.com", Password: "longenough1"}, // unknown account
		{Email: "user@test.com", Password: "wrongpassword"}, // wrong password
		{Email: "", Password: ""},                           // empty submission
	}
	for i, r := range cases {
		if _, err := svc.LoginUser(context.Background(), r, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("case %d: expected invalid-credentials, got %v", i, err)
		}
	}
}

func TestLoginUserBanned(t *testing.T) {
	svc, st := newAuth(t)
	seedCredentialedUser(t, st, "banned@test.com", "longenough1", domain.RoleUser, true)

	_, err := svc.LoginUser(context.Background(), dto.LoginRequest{
		Email: "banned@test.com", Password: "longenough1",
	}, "", "")
	if !errors.Is(err, domain.ErrAccountSuspended) {
		t.Fatalf("expected suspension, got %v", err)
	}
}

func TestLoginBusinessSuccess(t *testing.T) {
	svc, st := newAuth(t)
	seedCredentialedBusiness(t, st, "biz@test.com", "longenough1", true, true)

	pair, err := svc.LoginBusiness(context.Background(), dto.LoginRequest{
		Email: "biz@test.com", Password: "longenough1",
	}, "", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatalf("expected access token")
	}
}

func TestLoginBusinessUnverifiedEmail(t *testing.T) {
	svc, st := newAuth(t)
	seedCredentialedBusiness(t, st, "new@test.com", "longenough1", false, true)

	_, err := svc.LoginBusiness(context.Background(), dto.LoginRequest{
		Email: "new@test.com", Password: "longenough1",
	}, "", "")
	if !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("expected unverified-email rejection, got %v", err)
	}
}

func TestLoginBusinessInactiveOrCredentialless(t *testing.T) {
	svc, st := newAuth(t)

	seedCredentialedBusiness(t, st, "inactive@test.com", "longenough1", true, false)
	if _, err := svc.LoginBusiness(context.Background(), dto.LoginRequest{
		Email: "inactive@test.com", Password: "longenough1",
	}, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected neutral rejection for inactive business, got %v", err)
	}

	// Admin-created record with no password set at all.
	bare := &domain.Business{Name: "Bare", IsActive: true}
	if err := st.Businesses().Create(context.Background(), bare); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.LoginBusiness(context.Background(), dto.LoginRequest{
		Email: "bare@test.com", Password: "longenough1",
	}, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected neutral rejection for credential-less business, got %v", err)
	}
}

func TestLogoutTolerant(t *testing.T) {
	svc, st := newAuth(t)
	seedCredentialedUser(t, st, "logout@test.com", "longenough1", domain.RoleUser, false)

	pair, err := svc.LoginUser(context.Background(), dto.LoginRequest{
		Email: "logout@test.com", Password: "longenough1",
	}, "", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	// Logged-out sessions cannot refresh.
	ts := NewTokenServiceHS256(testTokenConfig(), st)
	if _, err := ts.Refresh(context.Background(), pair.RefreshToken, "", ""); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected revoked session, got %v", err)
	}

	// Garbage or missing cookies are not an error.
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout with garbage cookie: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without cookie: %v", err)
	}
}
