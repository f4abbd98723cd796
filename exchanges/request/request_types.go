package request

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the transport timeout applied when a requester is
	// built without an explicit HTTP client timeout
	DefaultTimeout = 15 * time.Second
	userAgent      = "User-Agent"
	maxBodyLogSize = 2048
)

// Requester is a rate limited HTTP requester for a single exchange
type Requester struct {
	HTTPClient *http.Client
	Name       string
	UserAgent  string
	limiter    *rate.Limiter
}

// RequesterOption is a function option for a Requester
type RequesterOption func(*Requester)

// Item is a temp item for requests
type Item struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    io.Reader
	Result  interface{}
	Verbose bool
}

// Generate defines a closure for functionality outside of the requester to
// generate a new *http.Request on every attempt
type Generate func() (*Item, error)

// HTTPError is returned when the exchange answers with a non-success status
// code. The raw body is kept for exchange specific error decoding.
type HTTPError struct {
	Name       string
	StatusCode int
	Body       []byte
}

// Error implements the error interface
func (h *HTTPError) Error() string {
	body := h.Body
	if len(body) > maxBodyLogSize {
		body = body[:maxBodyLogSize]
	}
	return fmt.Sprintf("%s unsuccessful HTTP status code: %d raw response: %s", h.Name, h.StatusCode, body)
}
