package mexc

import (
	"context"
	"strings"

	"github.com/patrickmn/go-cache"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

var _ exchange.Client = (*MEXC)(nil)

// FetchBalances returns every asset holding a non-zero free or locked amount
func (me *MEXC) FetchBalances(ctx context.Context, creds *account.Credentials) ([]account.Balance, error) {
	resp, err := me.GetAccountInformation(ctx, creds)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return []account.Balance{}, nil
	}
	raw := make([]account.RawBalance, len(resp.Balances))
	for i := range resp.Balances {
		raw[i] = account.RawBalance{
			Coin:   resp.Balances[i].Asset,
			Free:   resp.Balances[i].Free.String(),
			Locked: resp.Balances[i].Locked.String(),
		}
	}
	return account.FilterNonZero(me.Name, raw), nil
}

// FetchCoinNetworks returns the withdrawal networks of every coin and
// refreshes the network metadata cache used by SubmitWithdrawal
func (me *MEXC) FetchCoinNetworks(ctx context.Context, creds *account.Credentials) ([]withdraw.CoinInfo, error) {
	resp, err := me.GetCoinConfig(ctx, creds)
	if err != nil {
		return nil, err
	}
	coins := make([]withdraw.CoinInfo, len(resp))
	for i := range resp {
		coins[i] = withdraw.CoinInfo{
			Coin:     resp[i].Coin,
			Name:     resp[i].Name,
			Networks: make([]withdraw.NetworkInfo, len(resp[i].NetworkList)),
		}
		for j := range resp[i].NetworkList {
			n := &resp[i].NetworkList[j]
			code := n.NetWork
			if code == "" {
				code = n.Network
			}
			coins[i].Networks[j] = withdraw.NetworkInfo{
				Network:         n.Network,
				NetworkCode:     code,
				WithdrawFee:     n.WithdrawFee.String(),
				MinWithdraw:     n.WithdrawMin.String(),
				WithdrawEnabled: n.WithdrawEnable,
			}
		}
	}
	me.coins.Set(creds.Fingerprint(), coins, cache.DefaultExpiration)
	return coins, nil
}

// SubmitWithdrawal submits a single withdrawal. Network display names are
// resolved to the wire code before signing.
func (me *MEXC) SubmitWithdrawal(ctx context.Context, creds *account.Credentials, req *withdraw.Request) withdraw.Result {
	result := withdraw.NewResult(req)
	if err := req.Validate(); err != nil {
		return result.Failed(err.Error())
	}
	if err := creds.Validate(); err != nil {
		return result.Failed(exchange.ErrorMessage(me.CredentialsError(err)))
	}
	network := me.resolveNetwork(ctx, creds, strings.TrimSpace(req.Coin), strings.TrimSpace(req.Network))
	resp, err := me.Withdraw(ctx, creds,
		strings.TrimSpace(req.Coin),
		network,
		strings.TrimSpace(req.Address),
		strings.TrimSpace(req.Amount),
		req.Memo,
		req.Remark)
	if err != nil {
		log.Errorf(log.ExchangeSys, "%s withdrawal of %s %s to %s failed: %v", me.Name, req.Amount, req.Coin, req.Address, err)
		return result.Failed(exchange.ErrorMessage(err))
	}
	log.Infof(log.ExchangeSys, "%s withdrawal of %s %s to %s submitted, id: %s", me.Name, req.Amount, req.Coin, req.Address, resp.ID)
	return result.Succeeded(resp.ID)
}
