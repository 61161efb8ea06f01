package errors

import (
	"errors"
)

var (
	// Input errors (400-class).
	ErrMissingToken = errors.New("refresh token is required")
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors (401-class). Callers branch on these so the
	// client can tell "refresh me" apart from "re-authenticate".
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("invalid token")
	ErrWrongTokenType     = errors.New("wrong token type")

	// Authorization / lockout errors (403/429-class).
	ErrAccountLocked         = errors.New("account is temporarily locked")
	ErrRateLimited           = errors.New("too many attempts")
	ErrPasswordResetRequired = errors.New("password reset required")

	ErrEmailAlreadyInUse = errors.New("email already in use")
	ErrUserNotFound      = errors.New("user not found")
)
