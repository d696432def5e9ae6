package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")

	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrNotAcceptable        = errors.New("not acceptable")
	ErrConflict             = errors.New("conflict")
	ErrRequestTooLarge      = errors.New("request entity too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrTooManyRequests      = errors.New("too many requests")
	ErrInternalServer       = errors.New("internal server error")
	ErrServiceUnavailable   = errors.New("service unavailable")
)

var statusSentinels = map[int]error{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusNotAcceptable:         ErrNotAcceptable,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrRequestTooLarge,
	http.StatusUnsupportedMediaType:  ErrUnsupportedMediaType,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServer,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
}

// ValidationError is returned before any network activity when an option
// object misses a required field or carries a malformed one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s cannot be empty", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RequireString fails when value is empty
func RequireString(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field}
	}
	return nil
}

// RequireNotNil fails when present is false; callers pass `x != nil` so typed
// nils are compared against their own type.
func RequireNotNil(field string, present bool) error {
	if !present {
		return &ValidationError{Field: field, Reason: "cannot be nil"}
	}
	return nil
}

// ServiceResponseError is a non-2xx answer from a Watson endpoint.
type ServiceResponseError struct {
	StatusCode int
	Message    string
	Code       string
	Body       []byte
	Headers    http.Header
}

func (e *ServiceResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("watson: unexpected status code %d", e.StatusCode)
	}
	return fmt.Sprintf("watson: %s (status %d)", e.Message, e.StatusCode)
}

// Is lets callers match on status sentinels, e.g. errors.Is(err, core.ErrNotFound)
func (e *ServiceResponseError) Is(target error) bool {
	sentinel, ok := statusSentinels[e.StatusCode]
	return ok && sentinel == target
}

func newServiceResponseError(resp *http.Response, body []byte) *ServiceResponseError {
	return &ServiceResponseError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(body, resp.StatusCode),
		Code:       gjson.GetBytes(body, "code").String(),
		Body:       body,
		Headers:    resp.Header,
	}
}

// Watson services disagree on where the message lives.
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message", "errors.0.message", "description", "errorMessage"} {
			if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String && r.String() != "" {
				return r.String()
			}
		}
	}
	return http.StatusText(status)
}
