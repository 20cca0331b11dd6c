package common

import "errors"

var (
	// Session lifecycle errors.
	ErrNoSession    = errors.New("no session")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)
