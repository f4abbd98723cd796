package mexc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/patrickmn/go-cache"
	"github.com/thrasher-corp/bulkwithdraw/common/crypto"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/request"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

// MEXC is the overarching type across this package
type MEXC struct {
	exchange.Base
	recvWindow time.Duration
	coins      *cache.Cache
	now        func() time.Time
}

const (
	mexcAPIURL     = "https://api.mexc.com"
	mexcAPIVersion = "/api/v3/"

	// DefaultRecvWindow is the validity window sent with signed requests
	DefaultRecvWindow = 5 * time.Second
	maxRecvWindow     = 60 * time.Second
	coinCacheTTL      = 10 * time.Minute

	// Public endpoints
	mexcServerTime = "time"

	// Authenticated endpoints
	mexcAccount        = "account"
	mexcCoinConfig     = "capital/config/getall"
	mexcWithdraw       = "capital/withdraw"
	mexcAPIKeyHeader   = "X-MEXC-APIKEY"
	mexcSignatureParam = "signature"
)

var errInvalidRecvWindow = errors.New("recvWindow must be between 1ms and 60s")

// auth error codes returned by the exchange for missing, invalid or
// unauthorised API keys and signatures
var authErrorCodes = map[int64]struct{}{
	602:    {},
	10072:  {},
	700001: {},
	700002: {},
	700003: {},
	700004: {},
	700005: {},
	700006: {},
	700007: {},
	700008: {},
}

// New returns a MEXC client configured from the supplied settings. Missing
// settings fall back to the production defaults.
func New(s *exchange.Settings) (*MEXC, error) {
	var cfg exchange.Settings
	if s != nil {
		cfg = *s
	}
	if cfg.Name == "" {
		cfg.Name = exchange.MEXC
	}
	if cfg.APIURL == "" {
		cfg.APIURL = mexcAPIURL
	}
	if cfg.RecvWindow == 0 {
		cfg.RecvWindow = DefaultRecvWindow
	}
	if cfg.RecvWindow < time.Millisecond || cfg.RecvWindow > maxRecvWindow {
		return nil, errInvalidRecvWindow
	}
	me := &MEXC{
		recvWindow: cfg.RecvWindow,
		coins:      cache.New(coinCacheTTL, 2*coinCacheTTL),
		now:        time.Now,
	}
	if err := me.Setup(&cfg); err != nil {
		return nil, err
	}
	return me, nil
}

// EncodeParams returns the canonical query string that is both signed and
// sent. Keys are sorted and empty values dropped so the signature does not
// depend on the order parameters were added in.
func EncodeParams(values url.Values) string {
	clean := url.Values{}
	for k, vals := range values {
		for i := range vals {
			if vals[i] != "" {
				clean.Add(k, vals[i])
			}
		}
	}
	// spaces are sent as %20 rather than +
	return strings.ReplaceAll(clean.Encode(), "+", "%20")
}

// Sign returns the hex encoded HMAC-SHA256 of the query string
func Sign(queryString, secret string) (string, error) {
	hmac, err := crypto.GetHMAC(crypto.HashSHA256, []byte(queryString), []byte(secret))
	if err != nil {
		return "", err
	}
	return crypto.HexEncodeToString(hmac), nil
}

// GetSystemTime check server time
func (me *MEXC) GetSystemTime(ctx context.Context) (time.Time, error) {
	var resp ServerTime
	if err := me.SendHTTPRequest(ctx, http.MethodGet, mexcServerTime, nil, &resp); err != nil {
		return time.Time{}, err
	}
	if resp.ServerTime.IsZero() {
		return time.Time{}, &exchange.APIError{Exchange: me.Name, Message: "server time missing from response"}
	}
	return resp.ServerTime.Time(), nil
}

// timestamp returns the exchange clock falling back to the local clock when
// the exchange cannot be reached
func (me *MEXC) timestamp(ctx context.Context) time.Time {
	t, err := me.GetSystemTime(ctx)
	if err != nil {
		log.Warnf(log.ExchangeSys, "%s failed to get server time, using local time: %v", me.Name, err)
		return me.now()
	}
	return t
}

// GetAccountInformation returns the spot account balances
func (me *MEXC) GetAccountInformation(ctx context.Context, creds *account.Credentials) (*AccountInfo, error) {
	var resp *AccountInfo
	if err := me.SendAuthHTTPRequest(ctx, creds, http.MethodGet, mexcAccount, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetCoinConfig returns the deposit and withdrawal configuration of every coin
func (me *MEXC) GetCoinConfig(ctx context.Context, creds *account.Credentials) ([]CoinConfig, error) {
	var resp []CoinConfig
	if err := me.SendAuthHTTPRequest(ctx, creds, http.MethodGet, mexcCoinConfig, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Withdraw submits a withdrawal. network must be the wire code of the network.
func (me *MEXC) Withdraw(ctx context.Context, creds *account.Credentials, coin, network, address, amount, memo, remark string) (*WithdrawalResponse, error) {
	params := url.Values{}
	params.Set("coin", coin)
	params.Set("netWork", network)
	params.Set("address", address)
	params.Set("amount", amount)
	params.Set("memo", memo)
	params.Set("remark", remark)
	var raw json.RawMessage
	if err := me.SendAuthHTTPRequest(ctx, creds, http.MethodPost, mexcWithdraw, params, &raw); err != nil {
		return nil, err
	}
	id, dataType, _, err := jsonparser.Get(raw, "id")
	if err == nil && (dataType == jsonparser.String || dataType == jsonparser.Number) && len(id) > 0 {
		return &WithdrawalResponse{ID: string(id)}, nil
	}
	// a rejection can arrive with HTTP 200 and no id
	code, _ := jsonparser.GetInt(raw, "code")
	msg, _ := jsonparser.GetString(raw, "msg")
	if code != 0 || msg != "" {
		return nil, me.newRejection(http.StatusOK, code, msg)
	}
	return nil, &exchange.APIError{Exchange: me.Name, StatusCode: http.StatusOK, Message: "withdrawal id missing from response"}
}

// SendHTTPRequest sends an unauthenticated HTTP request
func (me *MEXC) SendHTTPRequest(ctx context.Context, method, path string, values url.Values, result interface{}) error {
	endpoint := me.APIURL + mexcAPIVersion + path
	if len(values) > 0 {
		endpoint += "?" + EncodeParams(values)
	}
	err := me.SendPayload(ctx, func() (*request.Item, error) {
		return &request.Item{
			Method:  method,
			Path:    endpoint,
			Result:  result,
			Verbose: me.Verbose,
		}, nil
	})
	return me.classifyError(err)
}

// SendAuthHTTPRequest sends an authenticated HTTP request. Parameters are
// sent in the query string with the signature appended last.
func (me *MEXC) SendAuthHTTPRequest(ctx context.Context, creds *account.Credentials, method, path string, values url.Values, result interface{}) error {
	if err := creds.Validate(); err != nil {
		return me.CredentialsError(err)
	}
	params := url.Values{}
	for k, v := range values {
		params[k] = append([]string(nil), v...)
	}
	params.Set("recvWindow", strconv.FormatInt(me.recvWindow.Milliseconds(), 10))
	params.Set("timestamp", strconv.FormatInt(me.timestamp(ctx).UnixMilli(), 10))

	queryString := EncodeParams(params)
	signature, err := Sign(queryString, creds.Secret)
	if err != nil {
		return err
	}
	endpoint := me.APIURL + mexcAPIVersion + path + "?" + queryString + "&" + mexcSignatureParam + "=" + signature

	err = me.SendPayload(ctx, func() (*request.Item, error) {
		return &request.Item{
			Method:  method,
			Path:    endpoint,
			Headers: map[string]string{mexcAPIKeyHeader: creds.Key},
			Result:  result,
			Verbose: me.Verbose,
		}, nil
	})
	return me.classifyError(err)
}

// classifyError maps requester failures onto the exchange error taxonomy
func (me *MEXC) classifyError(err error) error {
	if err == nil {
		return nil
	}
	if netErr := me.NewNetworkError(err); netErr != nil {
		return netErr
	}
	var httpErr *request.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	code, _ := jsonparser.GetInt(httpErr.Body, "code")
	msg, _ := jsonparser.GetString(httpErr.Body, "msg")
	return me.newRejection(httpErr.StatusCode, code, msg)
}

// newRejection builds an AuthError or APIError from the status, code and
// message of a rejected request
func (me *MEXC) newRejection(status int, code int64, msg string) error {
	if msg == "" {
		msg = "HTTP " + strconv.Itoa(status)
		if code != 0 {
			msg = "code " + strconv.FormatInt(code, 10)
		}
	}
	if _, ok := authErrorCodes[code]; ok ||
		status == http.StatusUnauthorized ||
		status == http.StatusForbidden {
		return &exchange.AuthError{Exchange: me.Name, StatusCode: status, Code: code, Message: msg}
	}
	return &exchange.APIError{Exchange: me.Name, StatusCode: status, Code: code, Message: msg}
}

// resolveNetwork converts a network display name into the wire code expected
// by the withdrawal endpoint. The value is returned unchanged when the coin
// metadata cannot be fetched or does not list the network.
func (me *MEXC) resolveNetwork(ctx context.Context, creds *account.Credentials, coin, network string) string {
	if network == "" {
		return ""
	}
	coins, err := me.cachedCoinNetworks(ctx, creds)
	if err != nil {
		log.Warnf(log.ExchangeSys, "%s unable to resolve network %q for %s, sending as given: %v", me.Name, network, coin, err)
		return network
	}
	c, ok := withdraw.FindCoin(coins, coin)
	if !ok {
		return network
	}
	n, err := c.Lookup(network)
	if err != nil {
		return network
	}
	if n.NetworkCode != network {
		log.Debugf(log.ExchangeSys, "%s resolved network %q to %q for %s", me.Name, network, n.NetworkCode, coin)
	}
	return n.NetworkCode
}

func (me *MEXC) cachedCoinNetworks(ctx context.Context, creds *account.Credentials) ([]withdraw.CoinInfo, error) {
	if v, ok := me.coins.Get(creds.Fingerprint()); ok {
		if coins, ok := v.([]withdraw.CoinInfo); ok {
			return coins, nil
		}
	}
	return me.FetchCoinNetworks(ctx, creds)
}
