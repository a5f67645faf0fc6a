// file: internals/helpers/money/money.go
package money

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

/* =========================================================
   Money — fixed-point amount in minor units (cents)

   Semua nominal keuangan disimpan sebagai bigint cents di DB
   dan dihitung sebagai integer di Go. Perkalian pecahan (rate
   denda, diskon persen) lewat decimal lalu dibulatkan ke cent
   terdekat, jadi tidak ada drift floating point.
========================================================= */

type Money int64

var Zero = Money(0)

// NewFromCents wraps an amount already denominated in cents.
func NewFromCents(cents int64) Money { return Money(cents) }

// FromString parses "1000", "1000.5", or "1000.50" into cents.
// Anything beyond two decimal places is rejected.
func FromString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.Equal(cents.Round(0)) {
		return 0, fmt.Errorf("money: more than two decimal places in %s", d.String())
	}
	return Money(cents.IntPart()), nil
}

func (m Money) Cents() int64 { return int64(m) }

// Decimal returns the amount in major units as a decimal (e.g. 1234.56).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }
func (m Money) Neg() Money        { return -m }

// MulFraction multiplies by a fraction (e.g. a daily late-fee rate),
// rounding half-up to the nearest cent.
func (m Money) MulFraction(rate decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(rate).Round(0).IntPart())
}

func Min(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

// Cmp returns -1, 0, or 1.
func (m Money) Cmp(o Money) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsNegative() bool { return m < 0 }
func (m Money) IsPositive() bool { return m > 0 }

// Abs returns the magnitude (refund entries carry negative amounts).
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// String renders with exactly two decimal places ("400.00").
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

/* ====================== JSON ====================== */

// MarshalJSON renders amounts as a fixed two-decimal string so clients
// never see a binary float.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	v, err := FromString(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

/* ====================== SQL (bigint cents) ====================== */

func (m Money) Value() (driver.Value, error) { return int64(m), nil }

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case int64:
		*m = Money(v)
		return nil
	case []byte:
		// simple-protocol rows deliver bigint as text; value is raw cents
		cents, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("money: cannot scan %q", string(v))
		}
		*m = Money(cents)
		return nil
	case string:
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("money: cannot scan %q", v)
		}
		*m = Money(cents)
		return nil
	default:
		return fmt.Errorf("money: unsupported scan type %T", src)
	}
}

// GormDataType keeps the column a plain bigint.
func (Money) GormDataType() string { return "bigint" }
