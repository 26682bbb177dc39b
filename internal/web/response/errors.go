package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// StatusOf maps an exploration error to an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, typeddata.ErrUnknownTypeKey),
		errors.Is(err, typeddata.ErrUnknownEntityType),
		errors.Is(err, typeddata.ErrEntityNotFound),
		errors.Is(err, typeddata.ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorCodeFromStatus generates an error code from the HTTP status.
func errorCodeFromStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "internal_error"
	}
}

// publicMessage hides the details of unexpected failures.
func publicMessage(statusCode int, err error) string {
	if statusCode >= http.StatusInternalServerError && !errors.Is(err, typeddata.ErrUnresolvableType) {
		return http.StatusText(statusCode)
	}
	return err.Error()
}
