package api

import (
	"errors"
	"net/http"

	"github.com/aesirglt/AdaTech/internal/api/shared"
	"github.com/aesirglt/AdaTech/internal/failure"
	"github.com/aesirglt/AdaTech/internal/service/auth"
	"github.com/aesirglt/AdaTech/internal/store"
)

// Messages for request-level errors that never reach a service.
const (
	msgInvalidRequest = "Invalid request format"
	msgInvalidID      = "Invalid card id"
	msgUnexpected     = "An unexpected error occurred"
	msgBodyTooLarge   = "Request body too large"
)

// errInvalidID is reported when a path id is not a uuid.
var errInvalidID = errors.New("invalid id format")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. A *failure.Failure carries its own code.
func MapErrorToStatusCode(err error) int {
	var f *failure.Failure
	if errors.As(err, &f) {
		return f.StatusCode()
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, errInvalidID),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var f *failure.Failure
	if errors.As(err, &f) {
		return f.PublicMessage()
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid login or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, store.ErrNotFound):
		return "Card not found"
	case errors.Is(err, errInvalidID):
		return msgInvalidID
	case errors.Is(err, shared.ErrEmptyBody):
		return msgInvalidRequest
	case errors.Is(err, shared.ErrBodyTooLarge):
		return msgBodyTooLarge
	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the error response for err. Failures carrying field
// errors expose them in the "errors" member of the body.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	var f *failure.Failure
	if errors.As(err, &f) && len(f.Fields) > 0 {
		opts = append(opts, shared.WithFieldErrors(f.Fields))
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
}

// HandleFailure writes the error response for a service failure.
func HandleFailure(w http.ResponseWriter, r *http.Request, f *failure.Failure) {
	HandleAPIError(w, r, f)
}

// HandleDecodeError writes the response for a body that DecodeJSON rejected.
// Oversized and empty bodies keep their own status; anything else is a
// malformed request.
func HandleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shared.ErrBodyTooLarge) || errors.Is(err, shared.ErrEmptyBody) {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
}
