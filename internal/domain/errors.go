package domain

import "errors"

var (
	ErrLinkNotFound = errors.New("token not found")
	ErrLinkExpired  = errors.New("expired")

	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("admin role required")
)
