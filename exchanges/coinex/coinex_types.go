package coinex

import (
	"github.com/thrasher-corp/bulkwithdraw/types"
)

// SpotBalance represents a spot account balance of a single currency
type SpotBalance struct {
	Currency  string       `json:"ccy"`
	Available types.Number `json:"available"`
	Frozen    types.Number `json:"frozen"`
}

// AssetConfig holds deposit and withdrawal configuration of an asset and all
// of its chains
type AssetConfig struct {
	Asset  AssetDetail   `json:"asset"`
	Chains []ChainConfig `json:"chains"`
}

// AssetDetail holds asset level switches
type AssetDetail struct {
	Currency        string `json:"ccy"`
	DepositEnabled  bool   `json:"deposit_enabled"`
	WithdrawEnabled bool   `json:"withdraw_enabled"`
	InterTransfer   bool   `json:"inter_transfer_enabled"`
	IsST            bool   `json:"is_st"`
}

// ChainConfig holds withdrawal configuration of a single chain
type ChainConfig struct {
	Chain                     string       `json:"chain"`
	MinDepositAmount          types.Number `json:"min_deposit_amount"`
	MinWithdrawAmount         types.Number `json:"min_withdraw_amount"`
	DepositEnabled            bool         `json:"deposit_enabled"`
	WithdrawEnabled           bool         `json:"withdraw_enabled"`
	DepositDelayMinutes       int64        `json:"deposit_delay_minutes"`
	SafeConfirmations         int64        `json:"safe_confirmations"`
	IrreversibleConfirmations int64        `json:"irreversible_confirmations"`
	DeflationRate             types.Number `json:"deflation_rate"`
	WithdrawalFee             types.Number `json:"withdrawal_fee"`
	WithdrawalPrecision       int64        `json:"withdrawal_precision"`
	Memo                      string       `json:"memo"`
	IsMemoRequiredForDeposit  bool         `json:"is_memo_required_for_deposit"`
	ExplorerAssetURL          string       `json:"explorer_asset_url"`
}

// WithdrawRequest is the body of a withdrawal submission
type WithdrawRequest struct {
	Currency  string `json:"ccy"`
	ToAddress string `json:"to_address"`
	Amount    string `json:"amount"`
	Chain     string `json:"chain,omitempty"`
	Memo      string `json:"memo,omitempty"`
	Remark    string `json:"remark,omitempty"`
}

// WithdrawResponse holds the accepted withdrawal details
type WithdrawResponse struct {
	WithdrawID types.Number `json:"withdraw_id"`
	CreatedAt  types.Time   `json:"created_at"`
	Currency   string       `json:"ccy"`
	Chain      string       `json:"chain"`
	ToAddress  string       `json:"to_address"`
	Amount     types.Number `json:"amount"`
	Status     string       `json:"status"`
}
