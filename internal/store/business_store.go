package store

import (
	"context"
	"errors"
	"time"

	"loyalty/internal/domain"

	"gorm.io/gorm"
)

type BusinessStore struct{ db *gorm.DB }

func (s *Store) Businesses() *BusinessStore { return &BusinessStore{db: s.DB} }

func (bs *BusinessStore) Create(ctx context.Context, b *domain.Business) error {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return bs.db.WithContext(ctx).Create(b).Error
}

func (bs *BusinessStore) GetByID(ctx context.Context, id uint) (*domain.Business, error) {
	var b domain.Business
	if err := bs.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByEmail expects an already lower-cased email.
func (bs *BusinessStore) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	var b domain.Business
	if err := bs.db.WithContext(ctx).First(&b, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (bs *BusinessStore) List(ctx context.Context) ([]domain.Business, error) {
	var out []domain.Business
	if err := bs.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
