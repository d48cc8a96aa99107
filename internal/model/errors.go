package model

import "errors"

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken indicates a unique constraint violation on email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials covers both unknown email and password mismatch
	// so that login failures are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
