package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/thrasher-corp/bulkwithdraw/config"
	"github.com/thrasher-corp/bulkwithdraw/engine/withdrawmanager"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/coinex"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/mexc"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

// New returns an engine with every supported exchange client loaded from the
// configuration
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	e := &Engine{
		Config:  cfg,
		clients: make(map[string]exchange.Client),
	}
	for _, name := range exchange.Exchanges {
		c, err := NewExchangeClient(cfg, name)
		if err != nil {
			return nil, err
		}
		if err := e.AddExchange(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewExchangeClient builds the client of the named exchange from its
// configuration
func NewExchangeClient(cfg *config.Config, name string) (exchange.Client, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	exchCfg, err := cfg.GetExchangeConfig(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeNotFound, err)
	}
	settings := exchCfg.Settings(name)
	var c exchange.Client
	switch strings.ToLower(name) {
	case exchange.MEXC:
		c, err = mexc.New(settings)
	case exchange.CoinEx:
		c, err = coinex.New(settings)
	default:
		return nil, fmt.Errorf("%w: %s", ErrExchangeNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AddExchange registers a client under its lower case name
func (e *Engine) AddExchange(c exchange.Client) error {
	if e == nil {
		return ErrNilSubsystem
	}
	if c == nil {
		return errNilClient
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clients == nil {
		e.clients = make(map[string]exchange.Client)
	}
	e.clients[strings.ToLower(c.GetName())] = c
	log.Debugf(log.Global, "%s exchange client loaded", c.GetName())
	return nil
}

// GetExchangeByName returns the loaded client of the named exchange
func (e *Engine) GetExchangeByName(name string) (exchange.Client, error) {
	if e == nil {
		return nil, ErrNilSubsystem
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.clients[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExchangeNotFound, name)
	}
	return c, nil
}

// NewWithdrawManager returns a withdrawal batch executor for the named
// exchange using its configured inter-request delay
func (e *Engine) NewWithdrawManager(name string, opts ...withdrawmanager.Option) (*withdrawmanager.Manager, error) {
	c, err := e.GetExchangeByName(name)
	if err != nil {
		return nil, err
	}
	delay := withdrawmanager.DefaultDelay(name)
	if e.Config != nil {
		if exchCfg, err := e.Config.GetExchangeConfig(name); err == nil {
			delay = exchCfg.WithdrawDelay
		}
	}
	return withdrawmanager.New(c, delay, opts...)
}

// GetBalances returns the non-zero balances held on the named exchange
func (e *Engine) GetBalances(ctx context.Context, name string, creds *account.Credentials) ([]account.Balance, error) {
	c, err := e.GetExchangeByName(name)
	if err != nil {
		return nil, err
	}
	return c.FetchBalances(ctx, creds)
}

// GetCoins returns per coin withdrawal network configuration of the named
// exchange
func (e *Engine) GetCoins(ctx context.Context, name string, creds *account.Credentials) ([]withdraw.CoinInfo, error) {
	c, err := e.GetExchangeByName(name)
	if err != nil {
		return nil, err
	}
	return c.FetchCoinNetworks(ctx, creds)
}

// GetCoin returns the withdrawal network configuration of a single coin.
// Exchanges able to query one coin are asked directly, otherwise the coin is
// picked from the full listing.
func (e *Engine) GetCoin(ctx context.Context, name string, creds *account.Credentials, coin string) (*withdraw.CoinInfo, error) {
	c, err := e.GetExchangeByName(name)
	if err != nil {
		return nil, err
	}
	if f, ok := c.(exchange.CoinNetworkFetcher); ok {
		return f.FetchCoinNetwork(ctx, creds, coin)
	}
	coins, err := c.FetchCoinNetworks(ctx, creds)
	if err != nil {
		return nil, err
	}
	info, ok := withdraw.FindCoin(coins, coin)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrCoinNotFound, coin, c.GetName())
	}
	return info, nil
}

// BulkWithdraw submits every request sequentially on the named exchange. The
// optional handler is called after each item completes.
func (e *Engine) BulkWithdraw(ctx context.Context, name string, creds *account.Credentials, reqs []withdraw.Request, h withdrawmanager.ResultHandler) ([]withdraw.Result, error) {
	var opts []withdrawmanager.Option
	if h != nil {
		opts = append(opts, withdrawmanager.WithResultHandler(h))
	}
	m, err := e.NewWithdrawManager(name, opts...)
	if err != nil {
		return nil, err
	}
	return m.ExecuteBulk(ctx, creds, reqs), nil
}
