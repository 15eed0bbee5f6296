package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors mapped from API error codes. Use errors.Is to check.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUnavailable    = errors.New("service unavailable")
)

// APIError is the decoded error envelope of a failed API call.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ordersearch api: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("ordersearch api: http %d", e.StatusCode)
}

// Unwrap maps the API error onto a package sentinel so callers can use
// errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if e.StatusCode == http.StatusServiceUnavailable {
		return ErrUnavailable
	}
	switch e.Code {
	case "not_found":
		return ErrNotFound
	case "already_exists":
		return ErrAlreadyExists
	case "forbidden":
		return ErrForbidden
	case "bad_request", "validation_failed":
		return ErrInvalidRequest
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
	}
	return apiErr
}
