package dto

import "time"

type RegisterBusinessRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Location *string `json:"location,omitempty"`
	URLImage *string `json:"url_image_business,omitempty"`
}

// BusinessResponse is the created/returned record; the password hash
// never leaves the service layer.
type BusinessResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	Location      *string   `json:"location,omitempty"`
	URLImage      *string   `json:"url_image_business,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type BusinessSummary struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	URLImage *string `json:"url_image_business,omitempty"`
}
