package engine

import (
	"errors"
	"net/http"
	"sync"

	"github.com/thrasher-corp/bulkwithdraw/config"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
)

// Error messages returned to API callers
const (
	ErrStrCredentialsRequired            = "API credentials are required"
	ErrStrCredentialsWithdrawalsRequired = "API credentials and withdrawals are required"
	ErrStrFetchBalance                   = "Failed to fetch balance"
	ErrStrFetchCoins                     = "Failed to fetch coins"
	ErrStrInvalidBody                    = "invalid request body"
)

var (
	// ErrNilSubsystem is returned when a method is called on a nil engine
	ErrNilSubsystem = errors.New("subsystem not setup")
	// ErrExchangeNotFound is returned when an exchange is not supported or loaded
	ErrExchangeNotFound = errors.New("exchange not found")
	// ErrServerAlreadyRunning is returned when the API server is started twice
	ErrServerAlreadyRunning = errors.New("server already running")
	// ErrCoinNotFound is returned when an exchange does not list a coin
	ErrCoinNotFound = errors.New("coin not listed")
	errNilConfig            = errors.New("config is nil")
	errNilClient            = errors.New("exchange client is nil")
)

// Engine contains the configuration and loaded exchange clients
type Engine struct {
	Config *config.Config

	// Verbose logs the exchange traffic of every API server request
	Verbose bool

	mu      sync.RWMutex
	clients map[string]exchange.Client

	serverMu sync.Mutex
	server   *http.Server
}

// Route is a sub type that holds the request routes
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// APIRequest is the JSON body accepted by the balance, coins and withdraw
// endpoints and the first message of a withdrawal stream
type APIRequest struct {
	account.Credentials
	Withdrawals []withdraw.Request `json:"withdrawals,omitempty"`
}

// APIError is the JSON body returned for failed API calls
type APIError struct {
	Error string `json:"error"`
}

// Websocket stream event names
const (
	WebsocketEventResult   = "result"
	WebsocketEventComplete = "complete"
	WebsocketEventError    = "error"
)

// WebsocketEventResponse is sent to stream clients for every processed
// withdrawal and once the batch completes
type WebsocketEventResponse struct {
	Event     string           `json:"event"`
	Index     int              `json:"index"`
	Result    *withdraw.Result `json:"result,omitempty"`
	Succeeded int              `json:"succeeded,omitempty"`
	Failed    int              `json:"failed,omitempty"`
	Error     string           `json:"error,omitempty"`
}
