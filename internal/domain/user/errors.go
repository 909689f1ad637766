package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already registered")
	ErrWrongPassword  = errors.New("current password is incorrect")
	ErrUserInactive   = errors.New("user account is inactive")
	ErrInvalidPrivacy = errors.New("invalid privacy level")
)
