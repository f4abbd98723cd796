package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/thrasher-corp/bulkwithdraw/exchanges/request"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

var (
	errSettingsNil       = errors.New("exchange settings are nil")
	errExchangeNameUnset = errors.New("exchange name unset")
	errInvalidAPIURL     = errors.New("invalid API URL")
	errRequesterNotSet   = errors.New("requester not set")
)

// Setup validates the settings and builds the rate limited requester
func (b *Base) Setup(s *Settings) error {
	if s == nil {
		return errSettingsNil
	}
	if s.Name == "" {
		return errExchangeNameUnset
	}
	u, err := url.ParseRequestURI(s.APIURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%s %w: %q", s.Name, errInvalidAPIURL, s.APIURL)
	}

	r, err := request.New(s.Name,
		request.NewHTTPClientWithTimeout(s.HTTPTimeout),
		request.WithLimiter(request.NewRateLimit(s.RateLimitInterval, s.RateLimitRequests)),
		request.WithUserAgent(DefaultUserAgent))
	if err != nil {
		return err
	}

	b.Name = s.Name
	b.APIURL = strings.TrimSuffix(s.APIURL, "/")
	b.Verbose = s.Verbose
	b.Requester = r
	if b.Verbose {
		log.Debugf(log.ExchangeSys, "%s client configured for %s", b.Name, b.APIURL)
	}
	return nil
}

// GetName returns the exchange name
func (b *Base) GetName() string {
	return b.Name
}

// SendPayload sends the generated request through the exchange requester
func (b *Base) SendPayload(ctx context.Context, g request.Generate) error {
	if b.Requester == nil {
		return fmt.Errorf("%s %w", b.Name, errRequesterNotSet)
	}
	return b.Requester.SendPayload(ctx, g)
}

// NewNetworkError returns a NetworkError for failures that never produced a
// well-formed exchange response. It returns nil for all other errors.
func (b *Base) NewNetworkError(err error) error {
	if errors.Is(err, request.ErrTransport) || errors.Is(err, request.ErrDecode) {
		return &NetworkError{Exchange: b.Name, Err: err}
	}
	return nil
}

// CredentialsError converts a credential validation failure into an
// AuthError so that missing keys share the rejected key taxonomy
func (b *Base) CredentialsError(err error) error {
	if err == nil {
		return nil
	}
	return &AuthError{Exchange: b.Name, Message: err.Error()}
}
