package impl

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
	"loyalty/internal/observability/metrics"
	"loyalty/internal/service"
	"loyalty/internal/store"

	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type PartnerServiceImpl struct {
	store     *store.Store
	passwords service.PasswordService
}

func NewPartnerService(st *store.Store, passwords service.PasswordService) *PartnerServiceImpl {
	return &PartnerServiceImpl{store: st, passwords: passwords}
}

func (p *PartnerServiceImpl) RegisterBusiness(ctx context.Context, r dto.RegisterBusinessRequest) (*dto.BusinessResponse, error) {
	result := "failure"
	defer func() {
		metrics.GuardedActionsTotal.WithLabelValues("register_business", result).Inc()
	}()

	if r.Name == "" || r.Email == "" || r.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrMissingFields)
	}
	out, err := p.createBusiness(ctx, r)
	if err != nil {
		return nil, err
	}
	result = "success"
	return out, nil
}

func (p *PartnerServiceImpl) CreateBusiness(ctx context.Context, r dto.RegisterBusinessRequest) (*dto.BusinessResponse, error) {
	result := "failure"
	defer func() {
		metrics.GuardedActionsTotal.WithLabelValues("create_business", result).Inc()
	}()

	if r.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrMissingFields)
	}
	out, err := p.createBusiness(ctx, r)
	if err != nil {
		return nil, err
	}
	result = "success"
	return out, nil
}

// createBusiness runs the whole check-and-insert inside one
// transaction. The pre-check gives a friendly duplicate message; the
// unique index on the lower-cased email is what actually closes the
// race, with the constraint violation mapped back to ErrEmailTaken.
func (p *PartnerServiceImpl) createBusiness(ctx context.Context, r dto.RegisterBusinessRequest) (*dto.BusinessResponse, error) {
	var email *string
	if r.Email != "" {
		if !emailRe.MatchString(r.Email) {
			return nil, domain.ErrInvalidEmail
		}
		lower := strings.ToLower(r.Email)
		email = &lower
	}

	var passwordHash *string
	if r.Password != "" {
		if len(r.Password) < 8 {
			return nil, domain.ErrPasswordTooShort
		}
		hashed, err := p.passwords.Hash(r.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hashed
	}

	var created domain.Business
	err := p.store.WithTx(ctx, func(tx *store.Store) error {
		if email != nil {
			if _, err := tx.Businesses().GetByEmail(ctx, *email); err == nil {
				return domain.ErrEmailTaken
			} else if !errors.Is(err, store.ErrRecordNotFound) {
				return err
			}
		}

		b := domain.Business{
			Name:          r.Name,
			Email:         email,
			PasswordHash:  passwordHash,
			EmailVerified: false,
			IsActive:      true,
			Location:      r.Location,
			URLImage:      r.URLImage,
		}
		if err := tx.Businesses().Create(ctx, &b); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrEmailTaken
			}
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.BusinessResponse{
		ID:            created.ID,
		Name:          created.Name,
		Email:         created.Email,
		EmailVerified: created.EmailVerified,
		IsActive:      created.IsActive,
		Location:      created.Location,
		URLImage:      created.URLImage,
		CreatedAt:     created.CreatedAt,
	}, nil
}

func (p *PartnerServiceImpl) UploadBenefit(ctx context.Context, r dto.UploadBenefitRequest) (*domain.Benefit, error) {
	result := "failure"
	defer func() {
		metrics.GuardedActionsTotal.WithLabelValues("upload_benefit", result).Inc()
	}()

	// Zero stands in for "absent or non-numeric" here, matching the
	// coercion the upload form relies on.
	businessID := r.IDBusinessDiscount.IntOr(0)
	if r.Name == "" || businessID <= 0 {
		return nil, fmt.Errorf("%w: name and business are required", domain.ErrMissingFields)
	}

	benefit := &domain.Benefit{
		Name:               r.Name,
		QOfCodes:           r.QOfCodes.IntOr(0),
		Discount:           r.Discount.IntOr(0),
		IDBusinessDiscount: uint(businessID),
	}
	if err := p.store.Benefits().Create(ctx, benefit); err != nil {
		return nil, err
	}
	result = "success"
	return benefit, nil
}

func (p *PartnerServiceImpl) ListBusinesses(ctx context.Context) ([]dto.BusinessSummary, error) {
	businesses, err := p.store.Businesses().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BusinessSummary, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, dto.BusinessSummary{
			ID:       b.ID,
			Name:     b.Name,
			Location: b.Location,
			URLImage: b.URLImage,
		})
	}
	return out, nil
}

func (p *PartnerServiceImpl) CheckEmail(ctx context.Context, email string) (bool, error) {
	_, err := p.store.Businesses().GetByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, store.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
