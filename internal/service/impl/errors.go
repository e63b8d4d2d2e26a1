package impl

import (
	"errors"

	"clubhub/internal/domain"
)

var (
	ErrEmptyPassword  = errors.New("empty password")
	ErrUnknownHash    = errors.New("unrecognised password hash")
	ErrInvalidToken   = errors.New("invalid token")
	ErrEmptySecret    = errors.New("empty signing key")
	ErrPosterRequired = errors.New("poster store not configured")
)

// User-facing messages.
const (
	msgUsernameOrEmailTaken = "Username or email already exists"
	msgEmailTaken           = "Email already registered"
	msgClubOnly             = "Only club admins can post events"
)

func conflict(msg string) error { return &domain.ConflictError{Message: msg} }

func forbidden(msg string) error { return &domain.ForbiddenError{Message: msg} }
