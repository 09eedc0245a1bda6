package service

import (
	"github.com/pkg/errors"
)

// Every failure returned by the services either wraps one of these or is an
// infrastructure error the transports report as internal.
var (
	ErrValidation = errors.New("validation failed")

	// ErrBookmarkNotFound is returned by reads; the lookup is pre-filtered by
	// owner so foreign bookmarks look missing.
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// ErrBookmarkNotOwned is returned by writes for both missing and foreign
	// bookmarks.
	ErrBookmarkNotOwned = errors.New("bookmark not found or not owned")

	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrCredentialsTaken     = errors.New("credentials taken")
	ErrCredentialsIncorrect = errors.New("credentials incorrect")
)
