package model

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates an account with the same email already exists.
	ErrDuplicateEmail = errors.New("email already taken")
	// ErrWeakPassword indicates the password scored below the configured minimum.
	ErrWeakPassword = errors.New("password is too weak")
	// ErrInvalidToken indicates the credential failed signature or claims validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates the credential is past its expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrUnauthorized indicates no usable credential was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a valid credential with insufficient rights.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput indicates a malformed request value.
	ErrInvalidInput = errors.New("invalid input")
)
