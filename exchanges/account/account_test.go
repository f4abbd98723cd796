package account

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsString(t *testing.T) {
	t.Parallel()
	c := &Credentials{Key: "mx0vglABCDEFG", Secret: "supersecret"}
	assert.Equal(t, "Key:[mx0v...]", c.String())
	assert.NotContains(t, fmt.Sprintf("%v %+v %#v %s", c, c, c, c), "supersecret")
	var nilCreds *Credentials
	assert.Equal(t, "Key:[]", nilCreds.String())
}

func TestCredentialsValidate(t *testing.T) {
	t.Parallel()
	var nilCreds *Credentials
	assert.ErrorIs(t, nilCreds.Validate(), ErrCredentialsAreEmpty)
	assert.ErrorIs(t, (&Credentials{}).Validate(), ErrCredentialsAreEmpty)
	assert.ErrorIs(t, (&Credentials{Secret: "s"}).Validate(), errKeyUnset)
	assert.ErrorIs(t, (&Credentials{Key: "k", Secret: "  "}).Validate(), errSecretUnset)
	assert.NoError(t, (&Credentials{Key: "k", Secret: "s"}).Validate())
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	a := (&Credentials{Key: "key", Secret: "one"}).Fingerprint()
	b := (&Credentials{Key: "key", Secret: "two"}).Fingerprint()
	assert.Equal(t, a, b, "fingerprint should only depend on the key")
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "key")
}

func TestNewBalance(t *testing.T) {
	t.Parallel()
	b, err := NewBalance("USDT", "10.5", "0.25")
	require.NoError(t, err)
	assert.Equal(t, "10.75", b.Total)
	assert.False(t, b.IsZero())

	b, err = NewBalance("BTC", "0.1", "0.2")
	require.NoError(t, err)
	assert.Equal(t, "0.3", b.Total, "total must not suffer float rounding")

	b, err = NewBalance("ETH", "", "0")
	require.NoError(t, err)
	assert.Equal(t, "0", b.Total)
	assert.True(t, b.IsZero())

	_, err = NewBalance("BAD", "ten", "0")
	assert.Error(t, err)
	_, err = NewBalance("BAD", "1", "lots")
	assert.Error(t, err)
}

func TestBalanceTotalMatchesIndependentSum(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{
		{"0", "0"},
		{"0.00000001", "0"},
		{"123456789.123456789", "0.000000001"},
		{"1", "2"},
		{"99999999999999999999.99999999", "0.00000001"},
		{"0.30000000", "0.60000000"},
	}
	for _, p := range pairs {
		b, err := NewBalance("X", p[0], p[1])
		require.NoError(t, err)
		f := decimal.RequireFromString(p[0])
		l := decimal.RequireFromString(p[1])
		total := decimal.RequireFromString(b.Total)
		assert.Truef(t, f.Add(l).Equal(total), "total %s should equal %s + %s", b.Total, p[0], p[1])
	}
}

func TestFilterNonZero(t *testing.T) {
	t.Parallel()
	got := FilterNonZero("mexc", []RawBalance{
		{Coin: "ZERO", Free: "0", Locked: "0.00000000"},
		{Coin: "FREE", Free: "1.5", Locked: "0"},
		{Coin: "BAD", Free: "N/A", Locked: "0"},
		{Coin: "LOCKED", Free: "0", Locked: "0.00000001"},
		{Coin: "EMPTY", Free: "", Locked: ""},
		{Coin: "WORSE", Free: "1", Locked: "--"},
	})
	require.Len(t, got, 2, "zero and unparseable entries must be dropped")
	assert.Equal(t, "FREE", got[0].Coin)
	assert.Equal(t, "LOCKED", got[1].Coin)
	assert.Equal(t, "0.00000001", got[1].Total)

	assert.Empty(t, FilterNonZero("mexc", []RawBalance{{Coin: "BAD", Free: "x"}}))
}
