package usersapi

import "errors"

// Sentinel kinds for users API errors.
var (
	ErrCreateUser = errors.New("users api rejected create user")
	ErrNoBaseURL  = errors.New("users api base url not configured")
)
