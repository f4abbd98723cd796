package account

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

// Balance is a normalised holding of a single coin. Quantities are decimal
// strings as returned by the exchange; Total is computed as Free + Locked.
type Balance struct {
	Coin   string `json:"coin"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
	Total  string `json:"total"`
}

// NewBalance parses the free and locked quantities and returns a Balance with
// an exact Total. Empty quantities are treated as zero.
func NewBalance(coin, free, locked string) (Balance, error) {
	f, err := parseQuantity(free)
	if err != nil {
		return Balance{}, fmt.Errorf("%s free: %w", coin, err)
	}
	l, err := parseQuantity(locked)
	if err != nil {
		return Balance{}, fmt.Errorf("%s locked: %w", coin, err)
	}
	return Balance{
		Coin:   coin,
		Free:   free,
		Locked: locked,
		Total:  f.Add(l).String(),
	}, nil
}

// IsZero returns true when both free and locked parse to exactly zero
func (b *Balance) IsZero() bool {
	f, err := parseQuantity(b.Free)
	if err != nil {
		return false
	}
	l, err := parseQuantity(b.Locked)
	if err != nil {
		return false
	}
	return f.IsZero() && l.IsZero()
}

func parseQuantity(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// FilterNonZero builds balances from raw quantities and drops every coin where
// both free and locked are zero. Entries with unparseable quantities are
// skipped with a warning.
func FilterNonZero(exch string, raw []RawBalance) []Balance {
	out := make([]Balance, 0, len(raw))
	for i := range raw {
		b, err := NewBalance(raw[i].Coin, raw[i].Free, raw[i].Locked)
		if err != nil {
			log.Warnf(log.ExchangeSys, "%s skipping balance: %v", exch, err)
			continue
		}
		if b.IsZero() {
			continue
		}
		out = append(out, b)
	}
	return out
}

// RawBalance is an exchange agnostic, unnormalised balance entry
type RawBalance struct {
	Coin   string
	Free   string
	Locked string
}
