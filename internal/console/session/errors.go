package session

import (
	"errors"
	"net/http"

	"github.com/reservat/provider-console/internal/common/apperrors"
	"github.com/reservat/provider-console/internal/common/httpclient"
)

// Base session error
var (
	ErrAuthError apperrors.Error = apperrors.New("authentication failed").SetStatusCode(http.StatusInternalServerError)
)

// Credential exchange errors, keyed off the identity collaborator's status codes
var (
	ErrUserNotFound       apperrors.Error = ErrAuthError.New("user does not exist").SetStatusCode(http.StatusNotFound)
	ErrInvalidCredentials apperrors.Error = ErrAuthError.New("invalid credentials").SetStatusCode(http.StatusUnauthorized)
	ErrAccountDisabled    apperrors.Error = ErrAuthError.New("account is not active").SetStatusCode(http.StatusForbidden)
	ErrServerError        apperrors.Error = ErrAuthError.New("server error").SetStatusCode(http.StatusInternalServerError)
	ErrUnknown            apperrors.Error = ErrAuthError.New("unknown error").SetStatusCode(http.StatusInternalServerError)
)

// Token errors
var (
	ErrTokenInvalid apperrors.Error = ErrAuthError.New("token is invalid or expired").SetStatusCode(http.StatusUnauthorized)
)

// mapAuthError translates a transport failure from the identity collaborator
// into the session error taxonomy. Raw transport errors never reach callers.
func mapAuthError(err error) apperrors.Error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return ErrServerError.Err(err)
	}
	switch {
	case httpErr.StatusCode == http.StatusNotFound:
		return ErrUserNotFound
	case httpErr.StatusCode == http.StatusUnauthorized:
		return ErrInvalidCredentials
	case httpErr.StatusCode == http.StatusForbidden:
		return ErrAccountDisabled
	case httpErr.StatusCode >= 500:
		return ErrServerError
	default:
		return ErrUnknown.MsgErr(httpErr.Message, httpErr)
	}
}
