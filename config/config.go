package config

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

var (
	errExchangeNotSupported = errors.New("exchange not supported")
	errInvalidAPIURL        = errors.New("invalid API URL")
	errInvalidDuration      = errors.New("duration must be positive")
	errNegativeDelay        = errors.New("withdraw delay cannot be negative")
	errInvalidRecvWindow    = errors.New("recvWindow must not exceed 60s")
	errInvalidRateLimit     = errors.New("rate limit requests cannot be negative")
	errListenAddressEmpty   = errors.New("server listen address cannot be empty")
)

// Default returns a configuration with known working settings
func Default() *Config {
	return &Config{
		Logging: log.GenDefaultSettings(),
		Exchanges: Exchanges{
			MEXC: ExchangeConfig{
				APIURL:        defaultMEXCAPIURL,
				HTTPTimeout:   defaultHTTPTimeout,
				WithdrawDelay: defaultMEXCDelay,
				RecvWindow:    defaultRecvWindow,
				RateLimit:     RateLimitConfig{Interval: defaultRateLimitWindow, Requests: defaultMEXCRateLimit},
			},
			CoinEx: ExchangeConfig{
				APIURL:        defaultCoinExAPIURL,
				HTTPTimeout:   defaultHTTPTimeout,
				WithdrawDelay: defaultCoinExDelay,
				RateLimit:     RateLimitConfig{Interval: defaultRateLimitWindow, Requests: defaultCoinExRateLimit},
			},
		},
		Server: Server{
			ListenAddress: defaultListenAddress,
			ReadTimeout:   defaultReadTimeout,
			WriteTimeout:  0,
		},
	}
}

// setDefaults registers every key with viper so environment overrides apply
// even when the key is absent from the file
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("logging.enabled", *d.Logging.Enabled)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.structured", d.Logging.Structured)
	for name, e := range map[string]ExchangeConfig{
		exchange.MEXC:   d.Exchanges.MEXC,
		exchange.CoinEx: d.Exchanges.CoinEx,
	} {
		prefix := "exchanges." + name + "."
		v.SetDefault(prefix+"apiURL", e.APIURL)
		v.SetDefault(prefix+"httpTimeout", e.HTTPTimeout)
		v.SetDefault(prefix+"withdrawDelay", e.WithdrawDelay)
		v.SetDefault(prefix+"recvWindow", e.RecvWindow)
		v.SetDefault(prefix+"rateLimit.interval", e.RateLimit.Interval)
		v.SetDefault(prefix+"rateLimit.requests", e.RateLimit.Requests)
		v.SetDefault(prefix+"verbose", e.Verbose)
	}
	v.SetDefault("server.listenAddress", d.Server.ListenAddress)
	v.SetDefault("server.readTimeout", d.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", d.Server.WriteTimeout)
}

// Load reads the configuration file at path, applying BULKWITHDRAW_ prefixed
// environment overrides. An empty path searches the working directory for
// config.yaml/config.json and falls back to the defaults when none exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "reading config file")
			}
			log.Debugln(log.ConfigMgr, "no config file found, using defaults")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if f := v.ConfigFileUsed(); f != "" {
		log.Infof(log.ConfigMgr, "loaded config file %s", f)
	}
	return &c, nil
}

// Validate checks the configuration values are usable
func (c *Config) Validate() error {
	for _, name := range exchange.Exchanges {
		e, err := c.GetExchangeConfig(name)
		if err != nil {
			return err
		}
		if err := e.validate(); err != nil {
			return errors.Wrapf(err, "exchange %s", name)
		}
	}
	if strings.TrimSpace(c.Server.ListenAddress) == "" {
		return errListenAddressEmpty
	}
	return nil
}

func (e *ExchangeConfig) validate() error {
	u, err := url.ParseRequestURI(e.APIURL)
	if err != nil || u.Host == "" {
		return errors.Wrapf(errInvalidAPIURL, "%q", e.APIURL)
	}
	if e.HTTPTimeout <= 0 {
		return errors.Wrap(errInvalidDuration, "httpTimeout")
	}
	if e.WithdrawDelay < 0 {
		return errNegativeDelay
	}
	if e.RecvWindow < 0 || e.RecvWindow > maxRecvWindow {
		return errInvalidRecvWindow
	}
	if e.RateLimit.Requests < 0 {
		return errInvalidRateLimit
	}
	return nil
}

// GetExchangeConfig returns the settings of the named exchange
func (c *Config) GetExchangeConfig(name string) (*ExchangeConfig, error) {
	switch strings.ToLower(name) {
	case exchange.MEXC:
		return &c.Exchanges.MEXC, nil
	case exchange.CoinEx:
		return &c.Exchanges.CoinEx, nil
	}
	return nil, errors.Wrap(errExchangeNotSupported, name)
}

// Settings converts the configuration into exchange client settings
func (e *ExchangeConfig) Settings(name string) *exchange.Settings {
	return &exchange.Settings{
		Name:              strings.ToLower(name),
		APIURL:            e.APIURL,
		HTTPTimeout:       e.HTTPTimeout,
		RateLimitInterval: e.RateLimit.Interval,
		RateLimitRequests: e.RateLimit.Requests,
		RecvWindow:        e.RecvWindow,
		Verbose:           e.Verbose,
	}
}
