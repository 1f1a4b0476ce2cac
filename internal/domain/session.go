package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session backs refresh-token rotation for both users and businesses.
// ActorKind + ActorID identify the principal; RefreshID is rotated on
// every refresh so a replayed old refresh token fails the lookup.
type Session struct {
	ID        SessionID  `gorm:"type:uuid;primaryKey" db:"id"`
	ActorKind ActorKind  `gorm:"type:text;not null" db:"actor_kind"`
	ActorID   string     `gorm:"type:text;not null;index" db:"actor_id"`
	RefreshID uuid.UUID  `gorm:"type:uuid;uniqueIndex:ux_sessions_refreshid" db:"refresh_id"`
	ExpiresAt time.Time  `gorm:"not null" db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `gorm:"not null" db:"created_at"`
	IP        string     `gorm:"type:text" db:"ip"`
	UserAgent string     `gorm:"type:text" db:"user_agent"`
}

func (Session) TableName() string { return "sessions" }
