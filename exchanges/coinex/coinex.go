package coinex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/buger/jsonparser"
	"github.com/thrasher-corp/bulkwithdraw/common/crypto"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/request"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

// CoinEx is the overarching type across this package
type CoinEx struct {
	exchange.Base
	now func() time.Time
}

const (
	coinexAPIURL     = "https://api.coinex.com"
	coinexAPIVersion = "/v2"

	// Authenticated endpoints
	coinexSpotBalance       = "/assets/spot/balance"
	coinexAllWithdrawConfig = "/assets/all-deposit-withdraw-config"
	coinexWithdrawConfig    = "/assets/deposit-withdraw-config"
	coinexWithdraw          = "/assets/withdraw"

	coinexKeyHeader       = "X-COINEX-KEY"
	coinexSignHeader      = "X-COINEX-SIGN"
	coinexTimestampHeader = "X-COINEX-TIMESTAMP"
)

var errCurrencyEmpty = errors.New("currency cannot be empty")

// auth error codes returned for missing, expired or invalid keys, signatures
// and timestamps
var authErrorCodes = map[int64]struct{}{
	11003: {},
	11004: {},
	11005: {},
	11006: {},
	11008: {},
	23001: {},
	23002: {},
	23003: {},
	23004: {},
}

// New returns a CoinEx client configured from the supplied settings. Missing
// settings fall back to the production defaults.
func New(s *exchange.Settings) (*CoinEx, error) {
	var cfg exchange.Settings
	if s != nil {
		cfg = *s
	}
	if cfg.Name == "" {
		cfg.Name = exchange.CoinEx
	}
	if cfg.APIURL == "" {
		cfg.APIURL = coinexAPIURL
	}
	c := &CoinEx{now: time.Now}
	if err := c.Setup(&cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Sign returns the lowercase hex HMAC-SHA256 of method, request path, body and
// timestamp concatenated. requestPath includes the API version prefix and any
// query string.
func Sign(method, requestPath, body, timestamp, secret string) (string, error) {
	hmac, err := crypto.GetHMAC(crypto.HashSHA256,
		[]byte(method+requestPath+body+timestamp),
		[]byte(secret))
	if err != nil {
		return "", err
	}
	return crypto.HexEncodeToString(hmac), nil
}

// GetSpotBalance returns the spot account balance of every currency
func (c *CoinEx) GetSpotBalance(ctx context.Context, creds *account.Credentials) ([]SpotBalance, error) {
	var resp []SpotBalance
	if err := c.SendAuthHTTPRequest(ctx, creds, http.MethodGet, coinexSpotBalance, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetAllWithdrawalConfig returns deposit and withdrawal configuration of every
// currency
func (c *CoinEx) GetAllWithdrawalConfig(ctx context.Context, creds *account.Credentials) ([]AssetConfig, error) {
	var resp []AssetConfig
	if err := c.SendAuthHTTPRequest(ctx, creds, http.MethodGet, coinexAllWithdrawConfig, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetWithdrawalConfig returns deposit and withdrawal configuration of a single
// currency
func (c *CoinEx) GetWithdrawalConfig(ctx context.Context, creds *account.Credentials, ccy string) (*AssetConfig, error) {
	if ccy == "" {
		return nil, errCurrencyEmpty
	}
	params := url.Values{}
	params.Set("ccy", ccy)
	var resp *AssetConfig
	if err := c.SendAuthHTTPRequest(ctx, creds, http.MethodGet, coinexWithdrawConfig, params, nil, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &exchange.APIError{Exchange: c.Name, Message: "no withdrawal config for " + ccy}
	}
	return resp, nil
}

// Withdraw submits an on-chain withdrawal
func (c *CoinEx) Withdraw(ctx context.Context, creds *account.Credentials, arg *WithdrawRequest) (*WithdrawResponse, error) {
	var resp *WithdrawResponse
	if err := c.SendAuthHTTPRequest(ctx, creds, http.MethodPost, coinexWithdraw, nil, arg, &resp); err != nil {
		return nil, err
	}
	if resp == nil || resp.WithdrawID == "" {
		return nil, &exchange.APIError{Exchange: c.Name, Message: "withdrawal id missing from response"}
	}
	return resp, nil
}

// SendAuthHTTPRequest sends an authenticated HTTP request and unwraps the
// response envelope into result
func (c *CoinEx) SendAuthHTTPRequest(ctx context.Context, creds *account.Credentials, method, path string, params url.Values, data, result interface{}) error {
	if err := creds.Validate(); err != nil {
		return c.CredentialsError(err)
	}
	requestPath := coinexAPIVersion + path
	if len(params) > 0 {
		requestPath += "?" + params.Encode()
	}
	var body []byte
	if data != nil {
		var err error
		body, err = json.Marshal(data)
		if err != nil {
			return err
		}
	}
	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	signature, err := Sign(method, requestPath, string(body), timestamp, creds.Secret)
	if err != nil {
		return err
	}

	var raw json.RawMessage
	err = c.SendPayload(ctx, func() (*request.Item, error) {
		item := &request.Item{
			Method: method,
			Path:   c.APIURL + requestPath,
			Headers: map[string]string{
				"Content-Type":        "application/json",
				coinexKeyHeader:       creds.Key,
				coinexSignHeader:      signature,
				coinexTimestampHeader: timestamp,
			},
			Result:  &raw,
			Verbose: c.Verbose,
		}
		if body != nil {
			item.Body = bytes.NewReader(body)
		}
		return item, nil
	})
	if err != nil {
		return c.classifyError(err)
	}
	return c.unwrapEnvelope(raw, result)
}

// unwrapEnvelope checks the response code and decodes the data payload
func (c *CoinEx) unwrapEnvelope(raw []byte, result interface{}) error {
	code, err := jsonparser.GetInt(raw, "code")
	if err != nil {
		return &exchange.NetworkError{Exchange: c.Name, Err: err}
	}
	if code != 0 {
		msg, _ := jsonparser.GetString(raw, "message")
		return c.newRejection(0, code, msg)
	}
	if result == nil {
		return nil
	}
	data, dataType, _, err := jsonparser.Get(raw, "data")
	if err != nil || dataType == jsonparser.Null {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		if c.Verbose {
			log.Debugf(log.ExchangeSys, "%s unable to decode data: %s", c.Name, data)
		}
		return &exchange.NetworkError{Exchange: c.Name, Err: err}
	}
	return nil
}

// classifyError maps requester failures onto the exchange error taxonomy
func (c *CoinEx) classifyError(err error) error {
	if netErr := c.NewNetworkError(err); netErr != nil {
		return netErr
	}
	var httpErr *request.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	code, _ := jsonparser.GetInt(httpErr.Body, "code")
	msg, _ := jsonparser.GetString(httpErr.Body, "message")
	return c.newRejection(httpErr.StatusCode, code, msg)
}

func (c *CoinEx) newRejection(status int, code int64, msg string) error {
	if msg == "" {
		msg = "API request failed"
		if status != 0 {
			msg = "HTTP " + strconv.Itoa(status)
		}
	}
	if _, ok := authErrorCodes[code]; ok ||
		status == http.StatusUnauthorized ||
		status == http.StatusForbidden {
		return &exchange.AuthError{Exchange: c.Name, StatusCode: status, Code: code, Message: msg}
	}
	return &exchange.APIError{Exchange: c.Name, StatusCode: status, Code: code, Message: msg}
}
