package services

import "errors"

var (
	// ErrEmailTaken is returned when registering with an email that already
	// belongs to an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; login never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMissingFields is returned when a required registration field is
	// absent or blank.
	ErrMissingFields = errors.New("missing required fields")
	// ErrEmptyContent is returned when a post is created or edited with no
	// text.
	ErrEmptyContent = errors.New("post content is required")
	// ErrContentTooLong is returned when post content exceeds
	// MaxContentBytes.
	ErrContentTooLong = errors.New("post content too long")
	// ErrNotPostOwner is returned when a user edits a post they do not own.
	ErrNotPostOwner = errors.New("post belongs to another user")
)
