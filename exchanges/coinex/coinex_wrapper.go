package coinex

import (
	"context"
	"strings"

	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

var (
	_ exchange.Client             = (*CoinEx)(nil)
	_ exchange.CoinNetworkFetcher = (*CoinEx)(nil)
)

// FetchBalances returns every currency holding a non-zero available or frozen
// amount
func (c *CoinEx) FetchBalances(ctx context.Context, creds *account.Credentials) ([]account.Balance, error) {
	resp, err := c.GetSpotBalance(ctx, creds)
	if err != nil {
		return nil, err
	}
	raw := make([]account.RawBalance, len(resp))
	for i := range resp {
		raw[i] = account.RawBalance{
			Coin:   resp[i].Currency,
			Free:   resp[i].Available.String(),
			Locked: resp[i].Frozen.String(),
		}
	}
	return account.FilterNonZero(c.Name, raw), nil
}

// FetchCoinNetworks returns the withdrawal chains of every currency. CoinEx
// uses the chain name both for display and submission.
func (c *CoinEx) FetchCoinNetworks(ctx context.Context, creds *account.Credentials) ([]withdraw.CoinInfo, error) {
	resp, err := c.GetAllWithdrawalConfig(ctx, creds)
	if err != nil {
		return nil, err
	}
	coins := make([]withdraw.CoinInfo, len(resp))
	for i := range resp {
		coins[i] = assetToCoinInfo(&resp[i])
	}
	return coins, nil
}

func assetToCoinInfo(a *AssetConfig) withdraw.CoinInfo {
	info := withdraw.CoinInfo{
		Coin:     a.Asset.Currency,
		Name:     a.Asset.Currency,
		Networks: make([]withdraw.NetworkInfo, len(a.Chains)),
	}
	for j := range a.Chains {
		info.Networks[j] = withdraw.NetworkInfo{
			Network:         a.Chains[j].Chain,
			NetworkCode:     a.Chains[j].Chain,
			WithdrawFee:     a.Chains[j].WithdrawalFee.String(),
			MinWithdraw:     a.Chains[j].MinWithdrawAmount.String(),
			WithdrawEnabled: a.Chains[j].WithdrawEnabled,
		}
	}
	return info
}

// FetchCoinNetwork returns the withdrawal chains of a single currency
func (c *CoinEx) FetchCoinNetwork(ctx context.Context, creds *account.Credentials, coin string) (*withdraw.CoinInfo, error) {
	resp, err := c.GetWithdrawalConfig(ctx, creds, strings.TrimSpace(coin))
	if err != nil {
		return nil, err
	}
	info := assetToCoinInfo(resp)
	return &info, nil
}

// SubmitWithdrawal submits a single on-chain withdrawal
func (c *CoinEx) SubmitWithdrawal(ctx context.Context, creds *account.Credentials, req *withdraw.Request) withdraw.Result {
	result := withdraw.NewResult(req)
	if err := req.Validate(); err != nil {
		return result.Failed(err.Error())
	}
	resp, err := c.Withdraw(ctx, creds, &WithdrawRequest{
		Currency:  strings.TrimSpace(req.Coin),
		ToAddress: strings.TrimSpace(req.Address),
		Amount:    strings.TrimSpace(req.Amount),
		Chain:     strings.TrimSpace(req.Network),
		Memo:      req.Memo,
		Remark:    req.Remark,
	})
	if err != nil {
		log.Errorf(log.ExchangeSys, "%s withdrawal of %s %s to %s failed: %v", c.Name, req.Amount, req.Coin, req.Address, err)
		return result.Failed(exchange.ErrorMessage(err))
	}
	log.Infof(log.ExchangeSys, "%s withdrawal of %s %s to %s submitted, id: %s", c.Name, req.Amount, req.Coin, req.Address, resp.WithdrawID)
	return result.Succeeded(resp.WithdrawID.String())
}
