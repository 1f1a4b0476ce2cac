package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"loyalty/internal/domain"
	"loyalty/internal/observability/metrics"
	"loyalty/internal/observability/middleware"
	"loyalty/internal/service"
	"loyalty/internal/store"
)

// DefaultExpirationHours applies when the admin sends no expiry (or a
// non-positive one).
const DefaultExpirationHours = 2

type UniqueLinkServiceImpl struct {
	store *store.Store
}

func NewUniqueLinkService(st *store.Store) *UniqueLinkServiceImpl {
	return &UniqueLinkServiceImpl{store: st}
}

func (s *UniqueLinkServiceImpl) Issue(ctx context.Context, adminID domain.UserID, expirationHours float64) (*domain.UniqueLink, error) {
	if expirationHours <= 0 {
		expirationHours = DefaultExpirationHours
	}

	token, err := domain.NewLinkToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	link := &domain.UniqueLink{
		Token:     token.Reveal(),
		ExpiresAt: now.Add(time.Duration(expirationHours * float64(time.Hour))),
		CreatedAt: now,
	}
	if err := s.store.UniqueLinks().Create(ctx, link); err != nil {
		return nil, err
	}

	// The token itself stays out of the log line.
	slog.Info("unique link issued",
		"link_id", link.ID,
		"admin_id", adminID,
		"expires_at", link.ExpiresAt,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)
	return link, nil
}

func (s *UniqueLinkServiceImpl) Validate(ctx context.Context, token string) (service.ValidationResult, error) {
	parsed, err := domain.ParseLinkToken(token)
	if err != nil {
		// Too short to ever match a row; same answer as an unknown
		// token so nothing about stored values leaks.
		metrics.LinkValidationsTotal.WithLabelValues("not_found").Inc()
		return service.ValidationResult{Reason: domain.ErrLinkNotFound}, nil
	}

	link, err := s.store.UniqueLinks().GetByToken(ctx, parsed)
	if errors.Is(err, store.ErrRecordNotFound) {
		metrics.LinkValidationsTotal.WithLabelValues("not_found").Inc()
		return service.ValidationResult{Reason: domain.ErrLinkNotFound}, nil
	}
	if err != nil {
		metrics.LinkValidationsTotal.WithLabelValues("error").Inc()
		return service.ValidationResult{}, err
	}

	if time.Now().UTC().After(link.ExpiresAt) {
		exp := link.ExpiresAt
		metrics.LinkValidationsTotal.WithLabelValues("expired").Inc()
		return service.ValidationResult{Reason: domain.ErrLinkExpired, ExpiresAt: &exp}, nil
	}

	metrics.LinkValidationsTotal.WithLabelValues("valid").Inc()
	return service.ValidationResult{Valid: true, Link: link}, nil
}
