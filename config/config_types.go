package config

import (
	"time"

	"github.com/thrasher-corp/bulkwithdraw/log"
)

// Constants declared here are filename strings and defaults
const (
	File                   = "config.yaml"
	EnvPrefix              = "BULKWITHDRAW"
	defaultHTTPTimeout     = time.Second * 15
	defaultMEXCAPIURL      = "https://api.mexc.com"
	defaultCoinExAPIURL    = "https://api.coinex.com"
	defaultMEXCDelay       = time.Second
	defaultCoinExDelay     = time.Millisecond * 1500
	defaultRecvWindow      = time.Second * 5
	maxRecvWindow          = time.Second * 60
	defaultRateLimitWindow = time.Second
	defaultMEXCRateLimit   = 10
	defaultCoinExRateLimit = 10
	defaultListenAddress   = "localhost:9050"
	defaultReadTimeout     = time.Minute
)

// Config is the overarching object that holds all the information for
// the application
type Config struct {
	Logging   log.Config `json:"logging" mapstructure:"logging"`
	Exchanges Exchanges  `json:"exchanges" mapstructure:"exchanges"`
	Server    Server     `json:"server" mapstructure:"server"`
}

// Exchanges holds the per exchange client settings. Credentials are never
// stored in configuration, they are supplied per operation.
type Exchanges struct {
	MEXC   ExchangeConfig `json:"mexc" mapstructure:"mexc"`
	CoinEx ExchangeConfig `json:"coinex" mapstructure:"coinex"`
}

// ExchangeConfig holds all the information needed for each enabled Exchange.
type ExchangeConfig struct {
	APIURL        string          `json:"apiURL" mapstructure:"apiURL"`
	HTTPTimeout   time.Duration   `json:"httpTimeout" mapstructure:"httpTimeout"`
	WithdrawDelay time.Duration   `json:"withdrawDelay" mapstructure:"withdrawDelay"`
	RecvWindow    time.Duration   `json:"recvWindow,omitempty" mapstructure:"recvWindow"`
	RateLimit     RateLimitConfig `json:"rateLimit" mapstructure:"rateLimit"`
	Verbose       bool            `json:"verbose" mapstructure:"verbose"`
}

// RateLimitConfig bounds outbound requests to Requests per Interval
type RateLimitConfig struct {
	Interval time.Duration `json:"interval" mapstructure:"interval"`
	Requests int           `json:"requests" mapstructure:"requests"`
}

// Server holds the REST and websocket listener settings
type Server struct {
	ListenAddress string        `json:"listenAddress" mapstructure:"listenAddress"`
	ReadTimeout   time.Duration `json:"readTimeout" mapstructure:"readTimeout"`
	WriteTimeout  time.Duration `json:"writeTimeout" mapstructure:"writeTimeout"`
}
