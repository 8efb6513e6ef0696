package services

import "errors"

// Validation failures surfaced to clients as 400 with the error text.
var (
	ErrInvalidComponent = errors.New("invalid component")
	ErrUserExists       = errors.New("User exists")
	ErrUserNotFound     = errors.New("User not found")
	ErrInvalidPassword  = errors.New("Invalid password")
	ErrMissingThread    = errors.New("Missing title or content")
	ErrEmptyReply       = errors.New("Reply cannot be empty")
	ErrForbidden        = errors.New("Forbidden")
	ErrMissingBuild     = errors.New("Missing name or items")
	ErrInvalidItems     = errors.New("Items must be an object of category to component")
)
