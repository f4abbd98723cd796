package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/thrasher-corp/bulkwithdraw/log"
	"golang.org/x/time/rate"
)

var (
	// ErrTransport is returned when the request could not be delivered or the
	// response could not be read
	ErrTransport = errors.New("transport failure")
	// ErrDecode is returned when a successful response body cannot be decoded
	ErrDecode = errors.New("cannot decode response")

	errRequestSystemIsNil   = errors.New("request system is nil")
	errRequestFunctionIsNil = errors.New("request function is nil")
	errRequestItemNil       = errors.New("request item is nil")
	errInvalidPath          = errors.New("invalid path")
	errHTTPClientIsNil      = errors.New("http client is nil")
	errNameUnset            = errors.New("requester name unset")
)

// New returns a new Requester
func New(name string, httpRequester *http.Client, opts ...RequesterOption) (*Requester, error) {
	if name == "" {
		return nil, errNameUnset
	}
	if httpRequester == nil {
		return nil, errHTTPClientIsNil
	}
	r := &Requester{
		HTTPClient: httpRequester,
		Name:       name,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// NewHTTPClientWithTimeout initialises a new HTTP client and its underlying
// transport with the specified timeout duration
func NewHTTPClientWithTimeout(t time.Duration) *http.Client {
	if t <= 0 {
		t = DefaultTimeout
	}
	return &http.Client{
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
		Timeout:   t,
	}
}

// SendPayload handles sending HTTP/HTTPS requests. A single attempt is made,
// failed requests are never retried.
func (r *Requester) SendPayload(ctx context.Context, newRequest Generate) error {
	if r == nil {
		return errRequestSystemIsNil
	}
	if newRequest == nil {
		return errRequestFunctionIsNil
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return r.transportError(err)
	}

	p, err := newRequest()
	if err != nil {
		return err
	}

	req, err := p.validateRequest(ctx, r)
	if err != nil {
		return err
	}

	verbose := IsVerbose(ctx, p.Verbose)
	if verbose {
		log.Debugf(log.RequestSys, "%s request path: %s", r.Name, log.RedactURL(p.Path))
		for k, v := range log.RedactHeaders(p.Headers) {
			log.Debugf(log.RequestSys, "%s request header [%s]: %s", r.Name, k, v)
		}
		log.Debugf(log.RequestSys, "%s request type: %s", r.Name, p.Method)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return r.transportError(err)
	}
	defer resp.Body.Close()

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return r.transportError(err)
	}

	if verbose {
		log.Debugf(log.RequestSys, "%s HTTP status: %s, Code: %v", r.Name, resp.Status, resp.StatusCode)
		log.Debugf(log.RequestSys, "%s raw response: %s", r.Name, truncate(contents))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > http.StatusAccepted {
		return &HTTPError{Name: r.Name, StatusCode: resp.StatusCode, Body: contents}
	}

	if p.Result == nil {
		return nil
	}
	if err := json.Unmarshal(contents, p.Result); err != nil {
		return fmt.Errorf("%s %w: %v", r.Name, ErrDecode, err)
	}
	return nil
}

// validateRequest validates the requester item fields
func (i *Item) validateRequest(ctx context.Context, r *Requester) (*http.Request, error) {
	if i == nil {
		return nil, errRequestItemNil
	}
	if i.Path == "" {
		return nil, errInvalidPath
	}

	req, err := http.NewRequestWithContext(ctx, i.Method, i.Path, i.Body)
	if err != nil {
		return nil, err
	}

	for k, v := range i.Headers {
		req.Header.Add(k, v)
	}

	if r.UserAgent != "" && req.Header.Get(userAgent) == "" {
		req.Header.Add(userAgent, r.UserAgent)
	}
	return req, nil
}

// transportError wraps a delivery failure in ErrTransport. Signed query
// parameters carried by url.Error are masked as the message is surfaced to
// callers and logs.
func (r *Requester) transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = log.RedactURL(urlErr.URL)
	}
	return fmt.Errorf("%s %w: %v", r.Name, ErrTransport, err)
}

func truncate(b []byte) []byte {
	if len(b) > maxBodyLogSize {
		return b[:maxBodyLogSize]
	}
	return b
}
