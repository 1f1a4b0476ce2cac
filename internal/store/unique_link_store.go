package store

import (
	"context"
	"errors"
	"time"

	"loyalty/internal/domain"

	"gorm.io/gorm"
)

type UniqueLinkStore struct{ db *gorm.DB }

func (s *Store) UniqueLinks() *UniqueLinkStore { return &UniqueLinkStore{db: s.DB} }

func (ls *UniqueLinkStore) Create(ctx context.Context, link *domain.UniqueLink) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	return ls.db.WithContext(ctx).Create(link).Error
}

func (ls *UniqueLinkStore) GetByToken(ctx context.Context, token domain.LinkToken) (*domain.UniqueLink, error) {
	var link domain.UniqueLink
	if err := ls.db.WithContext(ctx).First(&link, "token = ?", token.Reveal()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &link, nil
}
