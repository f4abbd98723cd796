package mexc

import (
	"github.com/thrasher-corp/bulkwithdraw/types"
)

// AccountInfo holds the spot account details
type AccountInfo struct {
	CanTrade    bool             `json:"canTrade"`
	CanWithdraw bool             `json:"canWithdraw"`
	CanDeposit  bool             `json:"canDeposit"`
	UpdateTime  types.Time       `json:"updateTime"`
	AccountType string           `json:"accountType"`
	Balances    []AccountBalance `json:"balances"`
	Permissions []string         `json:"permissions"`
}

// AccountBalance represents a single asset balance
type AccountBalance struct {
	Asset  string       `json:"asset"`
	Free   types.Number `json:"free"`
	Locked types.Number `json:"locked"`
}

// CoinConfig represents withdrawal and deposit configuration of a coin
type CoinConfig struct {
	Coin        string          `json:"coin"`
	Name        string          `json:"name"`
	NetworkList []NetworkConfig `json:"networkList"`
}

// NetworkConfig represents a single network of a coin. Network is the display
// name and NetWork the code expected by the withdrawal endpoint.
type NetworkConfig struct {
	Coin                    string       `json:"coin"`
	DepositDescription      string       `json:"depositDesc"`
	DepositEnable           bool         `json:"depositEnable"`
	MinConfirm              int64        `json:"minConfirm"`
	Name                    string       `json:"name"`
	Network                 string       `json:"network"`
	NetWork                 string       `json:"netWork"`
	WithdrawEnable          bool         `json:"withdrawEnable"`
	WithdrawFee             types.Number `json:"withdrawFee"`
	WithdrawIntegerMultiple types.Number `json:"withdrawIntegerMultiple"`
	WithdrawMax             types.Number `json:"withdrawMax"`
	WithdrawMin             types.Number `json:"withdrawMin"`
	SameAddress             bool         `json:"sameAddress"`
	Contract                string       `json:"contract"`
	WithdrawTips            string       `json:"withdrawTips"`
	DepositTips             string       `json:"depositTips"`
}

// WithdrawalResponse holds the identifier of an accepted withdrawal
type WithdrawalResponse struct {
	ID string `json:"id"`
}

// ServerTime holds the exchange clock
type ServerTime struct {
	ServerTime types.Time `json:"serverTime"`
}
