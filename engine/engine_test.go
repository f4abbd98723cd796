package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/bulkwithdraw/config"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/request"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
)

type fakeClient struct {
	name       string
	balanceErr error
	mu         sync.Mutex
	submitted  []withdraw.Request
	verbose    bool
}

func (f *fakeClient) GetName() string { return f.name }

func (f *fakeClient) FetchBalances(ctx context.Context, creds *account.Credentials) ([]account.Balance, error) {
	f.mu.Lock()
	f.verbose = request.IsVerbose(ctx, false)
	f.mu.Unlock()
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	b, err := account.NewBalance("USDT", "1.5", "0.5")
	if err != nil {
		return nil, err
	}
	return []account.Balance{b}, nil
}

func (f *fakeClient) FetchCoinNetworks(context.Context, *account.Credentials) ([]withdraw.CoinInfo, error) {
	return []withdraw.CoinInfo{{
		Coin: "USDT",
		Name: "TetherUS",
		Networks: []withdraw.NetworkInfo{{
			Network: "Tron(TRC20)", NetworkCode: "TRC20", WithdrawFee: "1", MinWithdraw: "5", WithdrawEnabled: true,
		}},
	}}, nil
}

func (f *fakeClient) SubmitWithdrawal(_ context.Context, _ *account.Credentials, req *withdraw.Request) withdraw.Result {
	f.mu.Lock()
	f.submitted = append(f.submitted, *req)
	f.mu.Unlock()
	r := withdraw.NewResult(req)
	if req.Address == "bad" {
		return r.Failed("invalid address")
	}
	return r.Succeeded("id-" + req.Address)
}

func newTestEngine(t *testing.T, c *fakeClient) (*Engine, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Exchanges.MEXC.WithdrawDelay = 0
	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.AddExchange(c))
	srv := httptest.NewServer(e.newRouter())
	t.Cleanup(srv.Close)
	return e, srv
}

func post(t *testing.T, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	resp, err := http.Post(url, "application/json", &buf) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(nil)
	assert.ErrorIs(t, err, errNilConfig)

	e, err := New(config.Default())
	require.NoError(t, err)
	for _, name := range exchange.Exchanges {
		c, err := e.GetExchangeByName(strings.ToUpper(name))
		require.NoError(t, err)
		assert.Equal(t, name, c.GetName())
	}
	_, err = e.GetExchangeByName("binance")
	assert.ErrorIs(t, err, ErrExchangeNotFound)

	_, err = NewExchangeClient(config.Default(), "kraken")
	assert.ErrorIs(t, err, ErrExchangeNotFound)

	var nilEngine *Engine
	_, err = nilEngine.GetExchangeByName(exchange.MEXC)
	assert.ErrorIs(t, err, ErrNilSubsystem)
	assert.ErrorIs(t, e.AddExchange(nil), errNilClient)
}

func TestNewWithdrawManager(t *testing.T) {
	t.Parallel()
	e, err := New(config.Default())
	require.NoError(t, err)
	m, err := e.NewWithdrawManager(exchange.CoinEx)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, m.Delay())
	m, err = e.NewWithdrawManager(exchange.MEXC)
	require.NoError(t, err)
	assert.Equal(t, time.Second, m.Delay())
}

func TestRESTGetBalance(t *testing.T) {
	t.Parallel()
	_, srv := newTestEngine(t, &fakeClient{name: exchange.MEXC})

	resp, body := post(t, srv.URL+"/api/mexc/balance", map[string]string{"apiKey": "k"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"API credentials are required"}`, string(body))

	resp, body = post(t, srv.URL+"/api/mexc/balance", map[string]string{"apiKey": "k", "apiSecret": "s"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"coin":"USDT","free":"1.5","locked":"0.5","total":"2"}]`, string(body))

	resp, _ = post(t, srv.URL+"/api/mexc/balance", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, srv.URL+"/api/kraken/balance", map[string]string{"apiKey": "k", "apiSecret": "s"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRESTGetBalanceFailure(t *testing.T) {
	t.Parallel()
	_, srv := newTestEngine(t, &fakeClient{
		name:       exchange.MEXC,
		balanceErr: &exchange.AuthError{Exchange: exchange.MEXC, Code: 700002, Message: "Signature for this request is not valid."},
	})
	resp, body := post(t, srv.URL+"/api/mexc/balance", map[string]string{"apiKey": "k", "apiSecret": "s"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Signature for this request is not valid."}`, string(body))
}

func TestRESTGetCoins(t *testing.T) {
	t.Parallel()
	_, srv := newTestEngine(t, &fakeClient{name: exchange.MEXC})
	resp, body := post(t, srv.URL+"/api/mexc/coins", map[string]string{"apiKey": "k", "apiSecret": "s"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var coins []withdraw.CoinInfo
	require.NoError(t, json.Unmarshal(body, &coins))
	require.Len(t, coins, 1)
	assert.Equal(t, "TRC20", coins[0].Networks[0].NetworkCode)
}

// singleCoinClient answers single coin queries and refuses full listings
type singleCoinClient struct {
	fakeClient
	queried []string
}

func (s *singleCoinClient) FetchCoinNetworks(context.Context, *account.Credentials) ([]withdraw.CoinInfo, error) {
	return nil, errors.New("full listing must not be requested")
}

func (s *singleCoinClient) FetchCoinNetwork(_ context.Context, _ *account.Credentials, coin string) (*withdraw.CoinInfo, error) {
	s.queried = append(s.queried, coin)
	return &withdraw.CoinInfo{Coin: strings.ToUpper(coin), Name: strings.ToUpper(coin)}, nil
}

func TestGetCoin(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, &fakeClient{name: exchange.MEXC})
	creds := &account.Credentials{Key: "k", Secret: "s"}

	info, err := e.GetCoin(context.Background(), exchange.MEXC, creds, "usdt")
	require.NoError(t, err)
	assert.Equal(t, "USDT", info.Coin)
	assert.Equal(t, "TRC20", info.Networks[0].NetworkCode)

	_, err = e.GetCoin(context.Background(), exchange.MEXC, creds, "DOGE")
	assert.ErrorIs(t, err, ErrCoinNotFound)

	_, err = e.GetCoin(context.Background(), "kraken", creds, "USDT")
	assert.ErrorIs(t, err, ErrExchangeNotFound)

	single := &singleCoinClient{fakeClient: fakeClient{name: exchange.CoinEx}}
	require.NoError(t, e.AddExchange(single))
	info, err = e.GetCoin(context.Background(), exchange.CoinEx, creds, "xrp")
	require.NoError(t, err)
	assert.Equal(t, "XRP", info.Coin)
	assert.Equal(t, []string{"xrp"}, single.queried)
}

func TestRESTWithdraw(t *testing.T) {
	t.Parallel()
	c := &fakeClient{name: exchange.MEXC}
	_, srv := newTestEngine(t, c)

	resp, body := post(t, srv.URL+"/api/mexc/withdraw", map[string]string{"apiKey": "k", "apiSecret": "s"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"API credentials and withdrawals are required"}`, string(body))

	resp, body = post(t, srv.URL+"/api/mexc/withdraw", map[string]interface{}{
		"apiKey":    "k",
		"apiSecret": "s",
		"withdrawals": []withdraw.Request{
			{Coin: "USDT", Network: "TRC20", Address: "a", Amount: "1"},
			{Coin: "USDT", Network: "TRC20", Address: "bad", Amount: "1"},
			{Coin: "USDT", Network: "TRC20", Address: "c", Amount: "1"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var results []withdraw.Result
	require.NoError(t, json.Unmarshal(body, &results))
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.Equal(t, "id-a", results[0].TxID)
	assert.False(t, results[1].Success)
	assert.Equal(t, "invalid address", results[1].Error)
	assert.True(t, results[2].Success)
	c.mu.Lock()
	submitted := append([]withdraw.Request(nil), c.submitted...)
	c.mu.Unlock()
	require.Len(t, submitted, 3)
	for _, r := range submitted {
		assert.NotEmpty(t, r.Remark, "blank remarks must be defaulted")
	}

	resp, body = post(t, srv.URL+"/api/mexc/withdraw", map[string]interface{}{
		"apiKey": "k", "apiSecret": "s", "withdrawals": []withdraw.Request{},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestWebsocketWithdrawHandler(t *testing.T) {
	t.Parallel()
	_, srv := newTestEngine(t, &fakeClient{name: exchange.MEXC})
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/mexc/withdraw/stream"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"apiKey":    "k",
		"apiSecret": "s",
		"withdrawals": []withdraw.Request{
			{Coin: "USDT", Address: "a", Amount: "1"},
			{Coin: "USDT", Address: "bad", Amount: "1"},
		},
	}))

	var events []WebsocketEventResponse
	for i := 0; i < 3; i++ {
		var evt WebsocketEventResponse
		require.NoError(t, conn.ReadJSON(&evt))
		events = append(events, evt)
	}
	assert.Equal(t, WebsocketEventResult, events[0].Event)
	assert.Equal(t, 0, events[0].Index)
	require.NotNil(t, events[0].Result)
	assert.True(t, events[0].Result.Success)
	assert.Equal(t, 1, events[1].Index)
	require.NotNil(t, events[1].Result)
	assert.Equal(t, "invalid address", events[1].Result.Error)
	assert.Equal(t, WebsocketEventComplete, events[2].Event)
	assert.Equal(t, 1, events[2].Succeeded)
	assert.Equal(t, 1, events[2].Failed)
}

func TestWebsocketWithdrawHandlerBadRequest(t *testing.T) {
	t.Parallel()
	_, srv := newTestEngine(t, &fakeClient{name: exchange.MEXC})
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/mexc/withdraw/stream"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"apiKey": "k"}))
	var evt WebsocketEventResponse
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, WebsocketEventError, evt.Event)
	assert.Equal(t, ErrStrCredentialsWithdrawalsRequired, evt.Error)
}

func TestServeAndStop(t *testing.T) {
	t.Parallel()
	e, err := New(config.Default())
	require.NoError(t, err)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- e.Serve(l) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + l.Addr().String() + "/") //nolint:noctx // test helper
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, e.Serve(l), ErrServerAlreadyRunning)
	require.NoError(t, e.StopRESTServer(context.Background()))
	assert.NoError(t, <-errCh)
	assert.NoError(t, e.StopRESTServer(context.Background()))
}

func TestServeVerbose(t *testing.T) {
	t.Parallel()
	e, err := New(config.Default())
	require.NoError(t, err)
	e.Verbose = true
	c := &fakeClient{name: exchange.MEXC}
	require.NoError(t, e.AddExchange(c))
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	errCh := make(chan error, 1)
	go func() { errCh <- e.Serve(l) }()
	t.Cleanup(func() {
		assert.NoError(t, e.StopRESTServer(context.Background()))
		assert.NoError(t, <-errCh)
	})

	require.Eventually(t, func() bool {
		resp, err := http.Post("http://"+l.Addr().String()+"/api/mexc/balance", "application/json", //nolint:noctx // test helper
			strings.NewReader(`{"apiKey":"k","apiSecret":"s"}`))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)
	c.mu.Lock()
	defer c.mu.Unlock()
	assert.True(t, c.verbose, "requests served by a verbose engine must be logged")
}
