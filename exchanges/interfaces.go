package exchange

import (
	"context"

	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
)

// Client enforces the functions every supported exchange exposes for bulk
// withdrawals. Credentials are supplied per call and never retained.
type Client interface {
	GetName() string
	// FetchBalances returns every coin holding a non-zero free or locked
	// amount
	FetchBalances(ctx context.Context, creds *account.Credentials) ([]account.Balance, error)
	// FetchCoinNetworks returns per coin withdrawal network configuration
	FetchCoinNetworks(ctx context.Context, creds *account.Credentials) ([]withdraw.CoinInfo, error)
	// SubmitWithdrawal submits a single withdrawal. It never returns an
	// error; failures are reported through the result.
	SubmitWithdrawal(ctx context.Context, creds *account.Credentials, req *withdraw.Request) withdraw.Result
}

// CoinNetworkFetcher is implemented by clients able to query the withdrawal
// configuration of a single coin
type CoinNetworkFetcher interface {
	FetchCoinNetwork(ctx context.Context, creds *account.Credentials, coin string) (*withdraw.CoinInfo, error)
}
