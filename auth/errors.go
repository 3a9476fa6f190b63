package auth

import "errors"

var (
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenSignature     = errors.New("invalid token signature")
	ErrTokenMalformed     = errors.New("malformed token")
	ErrTokenPayload       = errors.New("token payload missing userName")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionMismatch    = errors.New("session token mismatch")
	ErrSessionUnavailable = errors.New("session store unavailable")
	ErrLoginRateLimited   = errors.New("login rate limited")
)
