package exchange

import (
	"time"

	"github.com/thrasher-corp/bulkwithdraw/exchanges/request"
)

// DefaultUserAgent is sent with every exchange request
const DefaultUserAgent = "bulkwithdraw/1.0"

// Settings holds the runtime configuration of a single exchange client
type Settings struct {
	Name              string
	APIURL            string
	HTTPTimeout       time.Duration
	RateLimitInterval time.Duration
	RateLimitRequests int
	// RecvWindow bounds the validity of signed requests on exchanges that
	// support it
	RecvWindow time.Duration
	Verbose    bool
}

// Base stores the shared exchange client state
type Base struct {
	Name      string
	APIURL    string
	Verbose   bool
	Requester *request.Requester
}
