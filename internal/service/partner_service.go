package service

import (
	"context"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
)

// PartnerService holds the guarded actions: writes an unauthenticated
// holder of a valid unique link may perform. Callers must have passed
// UniqueLinkService.Validate before invoking any of these.
type PartnerService interface {
	// RegisterBusiness is the credentialed self-registration flow:
	// name, email and password are all required.
	RegisterBusiness(ctx context.Context, r dto.RegisterBusinessRequest) (*dto.BusinessResponse, error)

	// CreateBusiness is the looser partner-upload flow: only name is
	// required; email and password are hashed/stored when present.
	CreateBusiness(ctx context.Context, r dto.RegisterBusinessRequest) (*dto.BusinessResponse, error)

	UploadBenefit(ctx context.Context, r dto.UploadBenefitRequest) (*domain.Benefit, error)

	ListBusinesses(ctx context.Context) ([]dto.BusinessSummary, error)

	CheckEmail(ctx context.Context, email string) (bool, error)
}
