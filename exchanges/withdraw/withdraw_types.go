package withdraw

import (
	"errors"
)

const (
	// ErrStrAmountMustBeGreaterThanZero message to return when withdraw amount is less than 0
	ErrStrAmountMustBeGreaterThanZero = "amount must be greater than 0"
	// ErrStrAmountInvalid message to return when the amount is not a decimal number
	ErrStrAmountInvalid = "amount is not a valid number"
	// ErrStrAddressNotSet message to return when address is empty
	ErrStrAddressNotSet = "address cannot be empty"
	// ErrStrNoCurrencySet message to return when no currency is set
	ErrStrNoCurrencySet = "coin not set"

	// SubmittedMessage is attached to every accepted withdrawal result
	SubmittedMessage = "Withdrawal submitted successfully"
	// RemarkTimeFormat is the human readable layout of default remarks
	RemarkTimeFormat = "2006-01-02 15:04:05"
)

var (
	// ErrRequestCannotBeNil message to return when a request is nil
	ErrRequestCannotBeNil = errors.New("request cannot be nil")
	// ErrNetworkNotFound is returned when a coin does not list the network
	ErrNetworkNotFound = errors.New("network not found")
)

// Request is a single withdrawal input item. Amount is a decimal string.
type Request struct {
	Coin    string `json:"coin"`
	Network string `json:"network"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Memo    string `json:"memo,omitempty"`
	Remark  string `json:"remark,omitempty"`
}

// Result is a single withdrawal outcome, positionally aligned with the
// Request that produced it
type Result struct {
	Success bool   `json:"success"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Coin    string `json:"coin"`
	TxID    string `json:"txId,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// NetworkInfo holds withdrawal configuration of a coin on a single network.
// Network is the display name, NetworkCode is the value the exchange API
// expects on submission.
type NetworkInfo struct {
	Network         string `json:"network"`
	NetworkCode     string `json:"networkCode"`
	WithdrawFee     string `json:"withdrawFee"`
	MinWithdraw     string `json:"minWithdraw"`
	WithdrawEnabled bool   `json:"withdrawEnabled"`
}

// CoinInfo holds the withdrawal networks of a coin
type CoinInfo struct {
	Coin     string        `json:"coin"`
	Name     string        `json:"name"`
	Networks []NetworkInfo `json:"networks"`
}
