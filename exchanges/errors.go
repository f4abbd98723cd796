package exchange

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth is the sentinel wrapped by every AuthError
	ErrAuth = errors.New("authentication rejected")
	// ErrNetwork is the sentinel wrapped by every NetworkError
	ErrNetwork = errors.New("network failure")
	// ErrAPI is the sentinel wrapped by every APIError
	ErrAPI = errors.New("exchange rejected request")
)

// AuthError is returned for missing or rejected credentials and invalid
// signatures. It will not succeed on a blind retry.
type AuthError struct {
	Exchange   string
	StatusCode int
	Code       int64
	Message    string
}

func (e *AuthError) Error() string {
	return formatError(e.Exchange, ErrAuth, e.StatusCode, e.Code, e.Message)
}

// Unwrap returns ErrAuth
func (e *AuthError) Unwrap() error { return ErrAuth }

// NetworkError is returned when a request could not reach the exchange or
// its response could not be read. It is potentially transient.
type NetworkError struct {
	Exchange string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Exchange, ErrNetwork, e.Err)
}

// Unwrap returns both ErrNetwork and the underlying transport error
func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// APIError is a well-formed rejection by the exchange, e.g. insufficient
// balance, invalid address or a disabled network
type APIError struct {
	Exchange   string
	StatusCode int
	Code       int64
	Message    string
}

func (e *APIError) Error() string {
	return formatError(e.Exchange, ErrAPI, e.StatusCode, e.Code, e.Message)
}

// Unwrap returns ErrAPI
func (e *APIError) Unwrap() error { return ErrAPI }

func formatError(exch string, kind error, status int, code int64, msg string) string {
	s := exch + " " + kind.Error()
	if status != 0 {
		s += fmt.Sprintf(" status: %d", status)
	}
	if code != 0 {
		s += fmt.Sprintf(" code: %d", code)
	}
	if msg != "" {
		s += " message: " + msg
	}
	return s
}

// ErrorMessage returns the message a caller should display for an error. The
// exchange supplied message is preferred over the formatted error.
func ErrorMessage(err error) string {
	var authErr *AuthError
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr) && authErr.Message != "":
		return authErr.Message
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	}
	return err.Error()
}
