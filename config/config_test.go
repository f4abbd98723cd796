package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
)

const testConfig = `
logging:
  enabled: true
  level: INFO|WARN|ERROR|DEBUG
  output: stderr
  structured: true
exchanges:
  mexc:
    apiURL: http://localhost:8080
    httpTimeout: 5s
    withdrawDelay: 2s
    recvWindow: 10s
    rateLimit:
      interval: 1s
      requests: 5
    verbose: true
  coinex:
    withdrawDelay: 1500ms
server:
  listenAddress: 0.0.0.0:9000
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, time.Second, c.Exchanges.MEXC.WithdrawDelay)
	assert.Equal(t, 1500*time.Millisecond, c.Exchanges.CoinEx.WithdrawDelay)
	assert.Equal(t, defaultRecvWindow, c.Exchanges.MEXC.RecvWindow)
	assert.True(t, *c.Logging.Enabled)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	c, err := Load(writeConfig(t, "config.yaml", testConfig))
	require.NoError(t, err)

	assert.True(t, c.Logging.Structured)
	assert.Equal(t, "stderr", c.Logging.Output)
	assert.Equal(t, "INFO|WARN|ERROR|DEBUG", c.Logging.Level)

	m := c.Exchanges.MEXC
	assert.Equal(t, "http://localhost:8080", m.APIURL)
	assert.Equal(t, 5*time.Second, m.HTTPTimeout)
	assert.Equal(t, 2*time.Second, m.WithdrawDelay)
	assert.Equal(t, 10*time.Second, m.RecvWindow)
	assert.Equal(t, RateLimitConfig{Interval: time.Second, Requests: 5}, m.RateLimit)
	assert.True(t, m.Verbose)

	// unspecified keys keep their defaults
	assert.Equal(t, defaultCoinExAPIURL, c.Exchanges.CoinEx.APIURL)
	assert.Equal(t, defaultHTTPTimeout, c.Exchanges.CoinEx.HTTPTimeout)
	assert.Equal(t, "0.0.0.0:9000", c.Server.ListenAddress)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	c, err := Load(writeConfig(t, "config.json", `{"exchanges":{"coinex":{"withdrawDelay":"3s"}}}`))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.Exchanges.CoinEx.WithdrawDelay)
	assert.Equal(t, defaultMEXCDelay, c.Exchanges.MEXC.WithdrawDelay)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BULKWITHDRAW_EXCHANGES_MEXC_WITHDRAWDELAY", "250ms")
	t.Setenv("BULKWITHDRAW_SERVER_LISTENADDRESS", "127.0.0.1:1234")
	c, err := Load(writeConfig(t, "config.yaml", testConfig))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, c.Exchanges.MEXC.WithdrawDelay)
	assert.Equal(t, "127.0.0.1:1234", c.Server.ListenAddress)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "config.yaml", "exchanges:\n  mexc:\n    recvWindow: 2m\n"))
	assert.ErrorIs(t, err, errInvalidRecvWindow)

	_, err = Load(writeConfig(t, "config.yaml", "exchanges:\n  coinex:\n    withdrawDelay: -1s\n"))
	assert.ErrorIs(t, err, errNegativeDelay)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name   string
		mutate func(c *Config)
		err    error
	}{
		{name: "bad url", mutate: func(c *Config) { c.Exchanges.MEXC.APIURL = "mexc" }, err: errInvalidAPIURL},
		{name: "zero timeout", mutate: func(c *Config) { c.Exchanges.CoinEx.HTTPTimeout = 0 }, err: errInvalidDuration},
		{name: "negative delay", mutate: func(c *Config) { c.Exchanges.MEXC.WithdrawDelay = -time.Second }, err: errNegativeDelay},
		{name: "recv window", mutate: func(c *Config) { c.Exchanges.MEXC.RecvWindow = 61 * time.Second }, err: errInvalidRecvWindow},
		{name: "rate limit", mutate: func(c *Config) { c.Exchanges.CoinEx.RateLimit.Requests = -1 }, err: errInvalidRateLimit},
		{name: "listen address", mutate: func(c *Config) { c.Server.ListenAddress = " " }, err: errListenAddressEmpty},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := Default()
			tc.mutate(c)
			assert.ErrorIs(t, c.Validate(), tc.err)
		})
	}
}

func TestGetExchangeConfig(t *testing.T) {
	t.Parallel()
	c := Default()
	e, err := c.GetExchangeConfig("MEXC")
	require.NoError(t, err)
	assert.Equal(t, defaultMEXCAPIURL, e.APIURL)

	_, err = c.GetExchangeConfig("binance")
	assert.ErrorIs(t, err, errExchangeNotSupported)

	s := c.Exchanges.CoinEx.Settings(exchange.CoinEx)
	assert.Equal(t, exchange.CoinEx, s.Name)
	assert.Equal(t, defaultCoinExAPIURL, s.APIURL)
	assert.Equal(t, defaultCoinExRateLimit, s.RateLimitRequests)
	assert.Equal(t, time.Second, s.RateLimitInterval)
}

func TestLoadExample(t *testing.T) {
	t.Parallel()
	c, err := Load(filepath.Join("..", "config_example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Exchanges, c.Exchanges)
	require.Len(t, c.Logging.SubLoggers, 1)
	assert.Equal(t, "withdraw", c.Logging.SubLoggers[0].Name)
}
