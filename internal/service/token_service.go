package service

import (
	"context"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
)

type TokenService interface {
	Issue(ctx context.Context, actor domain.Actor, ip, ua string) (*dto.TokenPair, error)
	Refresh(ctx context.Context, refreshToken, ip, ua string) (*dto.TokenPair, error)
	// VerifyAccess parses an access token and resolves the live actor
	// behind it, re-checking banned/inactive state against the store.
	VerifyAccess(ctx context.Context, accessToken string) (domain.Actor, error)
	RevokeByRefresh(ctx context.Context, refreshToken string) error
}
