package store

import (
	"context"
	"time"

	"loyalty/internal/domain"

	"gorm.io/gorm"
)

type BenefitStore struct{ db *gorm.DB }

func (s *Store) Benefits() *BenefitStore { return &BenefitStore{db: s.DB} }

func (bs *BenefitStore) Create(ctx context.Context, b *domain.Benefit) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return bs.db.WithContext(ctx).Create(b).Error
}

func (bs *BenefitStore) CountForBusiness(ctx context.Context, businessID uint) (int64, error) {
	var n int64
	err := bs.db.WithContext(ctx).Model(&domain.Benefit{}).
		Where("id_business_discount = ?", businessID).
		Count(&n).Error
	return n, err
}
