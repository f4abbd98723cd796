package withdraw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x5a52E96BAcdaBb82fd05763E25335261B270Efcb"

func TestValidate(t *testing.T) {
	t.Parallel()
	var nilRequest *Request
	assert.ErrorIs(t, nilRequest.Validate(), ErrRequestCannotBeNil)

	for _, tc := range []struct {
		name string
		req  Request
		err  string
	}{
		{name: "valid", req: Request{Coin: "USDT", Address: testAddress, Amount: "10"}},
		{name: "tiny", req: Request{Coin: "USDT", Address: testAddress, Amount: "0.00000001"}},
		{name: "zero", req: Request{Coin: "USDT", Address: testAddress, Amount: "0"}, err: ErrStrAmountMustBeGreaterThanZero},
		{name: "negative", req: Request{Coin: "USDT", Address: testAddress, Amount: "-1"}, err: ErrStrAmountMustBeGreaterThanZero},
		{name: "garbage", req: Request{Coin: "USDT", Address: testAddress, Amount: "1O"}, err: ErrStrAmountInvalid},
		{name: "empty amount", req: Request{Coin: "USDT", Address: testAddress}, err: ErrStrAmountInvalid},
		{name: "no address", req: Request{Coin: "USDT", Amount: "1"}, err: ErrStrAddressNotSet},
		{name: "nothing", req: Request{}, err: ErrStrNoCurrencySet + ", " + ErrStrAddressNotSet + ", " + ErrStrAmountInvalid},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.req.Validate()
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestResultTransitions(t *testing.T) {
	t.Parallel()
	req := &Request{Coin: "USDT", Address: testAddress, Amount: "5"}
	r := NewResult(req)
	assert.False(t, r.Success)
	assert.Equal(t, "USDT", r.Coin)

	ok := r.Succeeded("12345")
	assert.True(t, ok.Success)
	assert.Equal(t, "12345", ok.TxID)
	assert.Equal(t, SubmittedMessage, ok.Message)

	bad := r.Failed("insufficient balance")
	assert.False(t, bad.Success)
	assert.Equal(t, "insufficient balance", bad.Error)
	assert.Empty(t, bad.TxID)
	assert.Equal(t, Result{}, NewResult(nil))
}

func TestDefaultRemark(t *testing.T) {
	t.Parallel()
	tt := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	assert.Equal(t, "2024-03-09 14:05:06", DefaultRemark(tt))
}

func TestLookup(t *testing.T) {
	t.Parallel()
	coin := CoinInfo{
		Coin: "USDT",
		Networks: []NetworkInfo{
			{Network: "BNB Smart Chain(BEP20)", NetworkCode: "BEP20(BSC)"},
			{Network: "Tron(TRC20)", NetworkCode: "TRC20"},
		},
	}
	n, err := coin.Lookup("BNB Smart Chain(BEP20)")
	require.NoError(t, err)
	assert.Equal(t, "BEP20(BSC)", n.NetworkCode)

	n, err = coin.Lookup("TRC20")
	require.NoError(t, err)
	assert.Equal(t, "Tron(TRC20)", n.Network)

	n, err = coin.Lookup("bep20(bsc)")
	require.NoError(t, err)
	assert.Equal(t, "BEP20(BSC)", n.NetworkCode)

	_, err = coin.Lookup("Solana")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
}

func TestFindCoin(t *testing.T) {
	t.Parallel()
	coins := []CoinInfo{{Coin: "BTC"}, {Coin: "USDT"}}
	c, ok := FindCoin(coins, "usdt")
	require.True(t, ok)
	assert.Equal(t, "USDT", c.Coin)
	_, ok = FindCoin(coins, "ETH")
	assert.False(t, ok)
}

func TestSummarise(t *testing.T) {
	t.Parallel()
	s, f := Summarise([]Result{{Success: true}, {}, {Success: true}})
	assert.Equal(t, 2, s)
	assert.Equal(t, 1, f)
}
