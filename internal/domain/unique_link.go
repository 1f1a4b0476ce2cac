package domain

import "time"

// UniqueLink is a single admin-issued capability: whoever holds the
// token may perform partner uploads until ExpiresAt. Rows are created
// once and never updated; expiry is the only deactivation mechanism,
// so a still-valid link may be used more than once.
type UniqueLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:text;uniqueIndex:ux_unique_links_token;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UniqueLink) TableName() string { return "unique_links" }
