package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"1000", 100000},
		{"1000.5", 100050},
		{"1000.50", 100050},
		{"0.01", 1},
		{"-25.75", -2575},
	}
	for _, tc := range cases {
		m, err := FromString(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.cents, m.Cents(), tc.in)
	}

	_, err := FromString("10.005")
	assert.Error(t, err, "sub-cent precision must be rejected")
	_, err = FromString("")
	assert.Error(t, err)
	_, err = FromString("abc")
	assert.Error(t, err)
}

func TestAddSubRoundTrip(t *testing.T) {
	// add then subtract recovers the original exactly, no drift
	a := NewFromCents(123456) // 1234.56
	b := NewFromCents(789)    // 7.89
	for i := 0; i < 10000; i++ {
		a = a.Add(b)
	}
	for i := 0; i < 10000; i++ {
		a = a.Sub(b)
	}
	assert.Equal(t, int64(123456), a.Cents())
}

func TestMulFraction(t *testing.T) {
	total := NewFromCents(100000) // 1000.00

	rate := decimal.NewFromFloat(0.01)
	assert.Equal(t, int64(1000), total.MulFraction(rate).Cents()) // 10.00

	// rounding half-up at the cent
	odd := NewFromCents(10001) // 100.01
	assert.Equal(t, "1.00", odd.MulFraction(rate).String())

	third := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	assert.Equal(t, "333.33", total.MulFraction(third).String())
}

func TestCompareAndPredicates(t *testing.T) {
	a := NewFromCents(100)
	b := NewFromCents(200)

	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
	assert.Equal(t, a, Min(a, b))

	assert.True(t, Zero.IsZero())
	assert.True(t, a.Neg().IsNegative())
	assert.False(t, a.IsNegative())
	assert.Equal(t, a, a.Neg().Abs())
}

func TestJSONRoundTrip(t *testing.T) {
	m := NewFromCents(40000)
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"400.00"`, string(raw))

	var fromStr Money
	require.NoError(t, json.Unmarshal([]byte(`"400.00"`), &fromStr))
	assert.Equal(t, m, fromStr)

	var fromNum Money
	require.NoError(t, json.Unmarshal([]byte(`400`), &fromNum))
	assert.Equal(t, m, fromNum)
}

func TestScanValue(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan(int64(12345)))
	assert.Equal(t, int64(12345), m.Cents())

	require.NoError(t, m.Scan([]byte("6789")))
	assert.Equal(t, int64(6789), m.Cents())

	v, err := NewFromCents(50).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(50), v)
}
