package dto

import "time"

type IssueLinkRequest struct {
	ExpirationHours float64 `json:"expirationHours"`
}

type UniqueLinkResponse struct {
	ID           uint      `json:"id"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UploadURL    string    `json:"uploadUrl"`
	WhatsappLink string    `json:"whatsappLink"`
}
