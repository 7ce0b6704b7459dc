package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a missing or malformed field in a request.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// NotFoundError reports that a referenced document does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a uniqueness violation (duplicate email, slug, review).
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

// AuthError reports a missing, invalid, expired or revoked credential.
type AuthError struct {
	Reason string
}

func (e AuthError) Error() string { return e.Reason }

// ForbiddenError reports an authenticated caller with an insufficient role.
type ForbiddenError struct {
	Reason string
}

func (e ForbiddenError) Error() string { return e.Reason }

// StatusForError maps a service error to an HTTP status code.
func StatusForError(err error) int {
	var (
		ve ValidationError
		nf NotFoundError
		ce ConflictError
		ae AuthError
		fe ForbiddenError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.As(err, &fe):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
