package errors

import "net/http"

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled          Code = "CANCELED"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeNotFound          Code = "NOT_FOUND"
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
	CodeInternal          Code = "INTERNAL"
	CodeUnavailable       Code = "UNAVAILABLE"

	// Upstream payload errors. Both are raised while parsing a 2xx response
	// and are never worth retrying.
	CodeMalformedUpstreamData Code = "MALFORMED_UPSTREAM_DATA"
	CodeMissingLocalizedText  Code = "MISSING_LOCALIZED_TEXT"
	CodeInvalidResponseShape  Code = "INVALID_RESPONSE_SHAPE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// CodeFromHTTPStatus maps an HTTP status code back onto an error code
func CodeFromHTTPStatus(status int) Code {
	switch {
	case status >= 200 && status < 300:
		return CodeOK
	case status == http.StatusBadRequest:
		return CodeInvalidArgument
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusTooManyRequests:
		return CodeResourceExhausted
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeCanceled:
		return http.StatusRequestTimeout
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeMalformedUpstreamData, CodeMissingLocalizedText, CodeInvalidResponseShape:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
