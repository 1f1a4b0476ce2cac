package store

import (
	"context"
	"errors"
	"time"

	"loyalty/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStore struct{ db *gorm.DB }

func (s *Store) Sessions() *SessionStore { return &SessionStore{db: s.DB} }

func (ss *SessionStore) Create(ctx context.Context, sess *domain.Session) error {
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	if sess.RefreshID == uuid.Nil {
		sess.RefreshID = uuid.New()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	return ss.db.WithContext(ctx).Create(sess).Error
}

func (ss *SessionStore) GetByRefreshID(ctx context.Context, rid uuid.UUID) (*domain.Session, error) {
	var sess domain.Session
	if err := ss.db.WithContext(ctx).First(&sess, "refresh_id = ?", rid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (ss *SessionStore) Rotate(ctx context.Context, id domain.SessionID, newRID uuid.UUID, newExp time.Time, ip, ua string) error {
	return ss.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"refresh_id": newRID,
			"expires_at": newExp,
			"ip":         ip,
			"user_agent": ua,
		}).Error
}

func (ss *SessionStore) Revoke(ctx context.Context, id domain.SessionID, at time.Time) error {
	return ss.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", id).
		Update("revoked_at", at).Error
}
