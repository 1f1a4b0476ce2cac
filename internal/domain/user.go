package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           UserID    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:text;uniqueIndex:ux_users_email;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         string    `gorm:"type:text;not null;default:user" json:"role"`
	IsBanned     bool      `gorm:"not null;default:false" json:"is_banned"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
