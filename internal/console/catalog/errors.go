package catalog

import (
	"errors"
	"net/http"

	"github.com/reservat/provider-console/internal/common/apperrors"
	"github.com/reservat/provider-console/internal/common/httpclient"
)

// Base catalog error
var (
	ErrCatalogError apperrors.Error = apperrors.New("catalog operation failed").SetStatusCode(http.StatusInternalServerError)
)

// Error taxonomy surfaced to callers
var (
	ErrUnauthorized    apperrors.Error = ErrCatalogError.New("session is invalid or expired").SetStatusCode(http.StatusUnauthorized)
	ErrFieldValidation apperrors.Error = ErrCatalogError.New("field validation failed").SetExpandError(true).SetStatusCode(http.StatusBadRequest)
	ErrNotFound        apperrors.Error = ErrCatalogError.New("service not found").SetStatusCode(http.StatusNotFound)
	ErrConflict        apperrors.Error = ErrCatalogError.New("conflicting update").SetStatusCode(http.StatusConflict)
	ErrServerError     apperrors.Error = ErrCatalogError.New("server error").SetStatusCode(http.StatusInternalServerError)
	ErrUnknown         apperrors.Error = ErrCatalogError.New("unknown error").SetStatusCode(http.StatusInternalServerError)
)

// mapTransportError normalizes a transport failure into the catalog taxonomy.
// The kind is preserved, the shape is normalized; callers decide messaging.
func mapTransportError(err error) apperrors.Error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return ErrServerError.Err(err)
	}
	switch {
	case httpErr.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case httpErr.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case httpErr.StatusCode == http.StatusConflict:
		return ErrConflict.MsgErr(httpErr.Message, httpErr)
	case httpErr.StatusCode >= 500:
		return ErrServerError
	default:
		return ErrUnknown.MsgErr(httpErr.Message, httpErr)
	}
}
