package service

import (
	"context"
	"time"

	"loyalty/internal/domain"
)

// ValidationResult is the outcome of a single link check. Reason is one
// of domain.ErrLinkNotFound or domain.ErrLinkExpired when Valid is
// false; ExpiresAt accompanies the expired case for display.
type ValidationResult struct {
	Valid     bool
	Reason    error
	ExpiresAt *time.Time
	Link      *domain.UniqueLink
}

type UniqueLinkService interface {
	// Issue mints a fresh link expiring expirationHours from now.
	// Values <= 0 fall back to the 2-hour default. The returned row
	// carries the plaintext token; it is shown once to the admin.
	Issue(ctx context.Context, adminID domain.UserID, expirationHours float64) (*domain.UniqueLink, error)

	// Validate is a pure read and the single choke point every guarded
	// action passes through. The error return is for storage failures
	// only; invalid tokens come back in the result.
	Validate(ctx context.Context, token string) (ValidationResult, error)
}
