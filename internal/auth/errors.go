package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth.invalid_credentials")
	ErrInvalidUsersList   = errors.New("auth.invalid_users_list")
	ErrEmptyPassword      = errors.New("auth.empty_password")
)
