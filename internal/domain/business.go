package domain

import "time"

// Business rows come from two paths: admin CRUD (no credentials) and
// the token-gated self-registration flow (email + password hash).
// Email is stored lower-cased; the unique index closes the
// check-then-insert race on concurrent registrations.
type Business struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	Email         *string   `gorm:"type:text;uniqueIndex:ux_business_email" json:"email,omitempty"`
	PasswordHash  *string   `gorm:"type:text" json:"-"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	Location      *string   `gorm:"type:text" json:"location,omitempty"`
	URLImage      *string   `gorm:"type:text;column:url_image_business" json:"url_image_business,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Business) TableName() string { return "business" }
