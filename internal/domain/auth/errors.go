package auth

import "errors"

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInactiveUser            = errors.New("user account is inactive")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrChannelIdentityMismatch = errors.New("token subject does not match claimed channel identity")
)
