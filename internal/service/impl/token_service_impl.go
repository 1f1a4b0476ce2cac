package impl

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
	"loyalty/internal/observability/middleware"
	"loyalty/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenConfig struct {
	Issuer     string
	Audience   string
	AccessTTL  time.Duration // e.g. 15 * time.Minute
	RefreshTTL time.Duration // e.g. 7 * 24h
	SigningKey []byte        // HS256 secret
}

type AccessClaims struct {
	SID  string `json:"sid"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	SID                  string `json:"sid"`
	jwt.RegisteredClaims        // jti == refresh_id
}

type TokenServiceImpl struct {
	cfg   TokenConfig
	store *store.Store
}

func NewTokenServiceHS256(cfg TokenConfig, st *store.Store) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg, store: st}
}

// Issue creates a Session row (with a fresh RefreshID) and returns access+refresh tokens.
func (t *TokenServiceImpl) Issue(ctx context.Context, actor domain.Actor, ip, ua string) (*dto.TokenPair, error) {
	now := time.Now().UTC()

	sess := &domain.Session{
		ID:        uuid.New(),
		ActorKind: actor.Kind,
		ActorID:   actor.Subject(),
		RefreshID: uuid.New(),
		ExpiresAt: now.Add(t.cfg.RefreshTTL),
		CreatedAt: now,
		IP:        ip,
		UserAgent: ua,
	}
	if err := t.store.Sessions().Create(ctx, sess); err != nil {
		return nil, err
	}

	access, err := t.signAccess(sess, now)
	if err != nil {
		return nil, err
	}
	refresh, err := t.signRefresh(sess, now)
	if err != nil {
		return nil, err
	}

	slog.Info("issued tokens",
		"session_id", sess.ID,
		"actor_kind", sess.ActorKind,
		"actor_id", sess.ActorID,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)

	return &dto.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(t.cfg.AccessTTL.Seconds()),
	}, nil
}

// Refresh validates the refresh JWT, checks session state, rotates the
// refresh id, and returns new tokens. A replayed old refresh token no
// longer matches any session row after rotation.
func (t *TokenServiceImpl) Refresh(ctx context.Context, refreshToken, ip, ua string) (*dto.TokenPair, error) {
	now := time.Now().UTC()

	claims, err := t.parseRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	rid, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	sess, err := t.store.Sessions().GetByRefreshID(ctx, rid)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	if sess.RevokedAt != nil || now.After(sess.ExpiresAt) {
		return nil, domain.ErrNotAuthenticated
	}

	newRID := uuid.New()
	newExp := now.Add(t.cfg.RefreshTTL)
	if err := t.store.Sessions().Rotate(ctx, sess.ID, newRID, newExp, ip, ua); err != nil {
		return nil, err
	}
	sess.RefreshID = newRID
	sess.ExpiresAt = newExp

	access, err := t.signAccess(sess, now)
	if err != nil {
		return nil, err
	}
	refresh, err := t.signRefresh(sess, now)
	if err != nil {
		return nil, err
	}

	slog.Info("refreshed tokens",
		"session_id", sess.ID,
		"actor_kind", sess.ActorKind,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)

	return &dto.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(t.cfg.AccessTTL.Seconds()),
	}, nil
}

// VerifyAccess parses the access token and resolves the live actor
// behind it. Role state (banned user, deactivated business) is
// re-checked against the store so a stale token cannot outlive a ban.
func (t *TokenServiceImpl) VerifyAccess(ctx context.Context, accessToken string) (domain.Actor, error) {
	claims := &AccessClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil || !tok.Valid {
		return domain.Actor{}, domain.ErrNotAuthenticated
	}
	if claims.Issuer != t.cfg.Issuer || !containsAudience(claims.Audience, t.cfg.Audience) {
		return domain.Actor{}, domain.ErrNotAuthenticated
	}

	switch domain.ActorKind(claims.Role) {
	case domain.ActorBusiness:
		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			return domain.Actor{}, domain.ErrNotAuthenticated
		}
		b, err := t.store.Businesses().GetByID(ctx, uint(id))
		if err != nil {
			return domain.Actor{}, domain.ErrNotAuthenticated
		}
		if !b.IsActive {
			return domain.Actor{}, domain.ErrAccountSuspended
		}
		return domain.Actor{Kind: domain.ActorBusiness, Business: b}, nil

	case domain.ActorAdmin, domain.ActorUser:
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return domain.Actor{}, domain.ErrNotAuthenticated
		}
		u, err := t.store.Users().GetByID(ctx, id)
		if err != nil {
			return domain.Actor{}, domain.ErrNotAuthenticated
		}
		if u.IsBanned {
			return domain.Actor{}, domain.ErrAccountSuspended
		}
		kind := domain.ActorUser
		if u.Role == domain.RoleAdmin {
			kind = domain.ActorAdmin
		}
		return domain.Actor{Kind: kind, User: u}, nil

	default:
		return domain.Actor{}, domain.ErrNotAuthenticated
	}
}

func (t *TokenServiceImpl) RevokeByRefresh(ctx context.Context, refreshToken string) error {
	claims, err := t.parseRefresh(refreshToken)
	if err != nil {
		return domain.ErrNotAuthenticated
	}
	sid, err := uuid.Parse(claims.SID)
	if err != nil {
		return domain.ErrNotAuthenticated
	}
	return t.store.Sessions().Revoke(ctx, sid, time.Now().UTC())
}

// ====== Helpers ======

func (t *TokenServiceImpl) signAccess(sess *domain.Session, now time.Time) (string, error) {
	claims := AccessClaims{
		SID:  sess.ID.String(),
		Role: string(sess.ActorKind),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   sess.ActorID,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

func (t *TokenServiceImpl) signRefresh(sess *domain.Session, now time.Time) (string, error) {
	claims := RefreshClaims{
		SID: sess.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   sess.ActorID,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sess.RefreshID.String(), // binds the JWT to the session row
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

func (t *TokenServiceImpl) parseRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Issuer != t.cfg.Issuer {
		return nil, errors.New("bad issuer")
	}
	if !containsAudience(claims.Audience, t.cfg.Audience) {
		return nil, errors.New("bad audience")
	}
	return claims, nil
}

func containsAudience(aud jwt.ClaimStrings, expected string) bool {
	for _, a := range aud {
		if a == expected {
			return true
		}
	}
	return false
}
