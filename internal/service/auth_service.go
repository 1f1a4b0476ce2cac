package service

import (
	"context"

	"loyalty/internal/dto"
)

type AuthService interface {
	LoginUser(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.TokenPair, error)
	LoginBusiness(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}
