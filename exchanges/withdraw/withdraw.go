package withdraw

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validate checks the request meets the minimum requirements to submit
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestCannotBeNil
	}

	var allErrors []string
	if strings.TrimSpace(r.Coin) == "" {
		allErrors = append(allErrors, ErrStrNoCurrencySet)
	}
	if strings.TrimSpace(r.Address) == "" {
		allErrors = append(allErrors, ErrStrAddressNotSet)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	switch {
	case err != nil:
		allErrors = append(allErrors, ErrStrAmountInvalid)
	case !amount.IsPositive():
		allErrors = append(allErrors, ErrStrAmountMustBeGreaterThanZero)
	}

	if len(allErrors) > 0 {
		return errors.New(strings.Join(allErrors, ", "))
	}
	return nil
}

// NewResult returns an unsuccessful result carrying the request identity
func NewResult(r *Request) Result {
	if r == nil {
		return Result{}
	}
	return Result{
		Address: r.Address,
		Amount:  r.Amount,
		Coin:    r.Coin,
	}
}

// Succeeded marks the result as accepted by the exchange
func (r Result) Succeeded(txID string) Result {
	r.Success = true
	r.TxID = txID
	r.Error = ""
	r.Message = SubmittedMessage
	return r
}

// Failed marks the result as rejected with the supplied message
func (r Result) Failed(msg string) Result {
	r.Success = false
	r.TxID = ""
	r.Error = msg
	return r
}

// DefaultRemark renders the human readable remark attached to withdrawals
// submitted without one
func DefaultRemark(t time.Time) string {
	return t.Format(RemarkTimeFormat)
}

// Lookup finds a network by display name or wire code. Display names are
// matched first as codes may coincide with another network's display name.
func (c *CoinInfo) Lookup(network string) (*NetworkInfo, error) {
	for i := range c.Networks {
		if c.Networks[i].Network == network {
			return &c.Networks[i], nil
		}
	}
	for i := range c.Networks {
		if c.Networks[i].NetworkCode == network {
			return &c.Networks[i], nil
		}
	}
	for i := range c.Networks {
		if strings.EqualFold(c.Networks[i].Network, network) || strings.EqualFold(c.Networks[i].NetworkCode, network) {
			return &c.Networks[i], nil
		}
	}
	return nil, ErrNetworkNotFound
}

// FindCoin returns the coin info for the supplied coin symbol
func FindCoin(coins []CoinInfo, coin string) (*CoinInfo, bool) {
	for i := range coins {
		if strings.EqualFold(coins[i].Coin, coin) {
			return &coins[i], true
		}
	}
	return nil, false
}

// Summarise splits results into success and failure counts
func Summarise(results []Result) (succeeded, failed int) {
	for i := range results {
		if results[i].Success {
			succeeded++
			continue
		}
		failed++
	}
	return
}
