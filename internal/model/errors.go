package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with an unknown email or a
	// wrong password. Callers must not disambiguate the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMissingToken is returned when no bearer token is presented.
	ErrMissingToken = errors.New("missing authorization token")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid authorization token")
)
