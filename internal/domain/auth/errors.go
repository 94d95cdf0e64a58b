package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNoToken            = errors.New("no token provided")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
