// Package core holds the domain types shared by the projection engine,
// the goal store, and the HTTP surface.
//
// Money is a thin wrapper around shopspring decimals so that balance math
// stays exact: the chart series and the cursor snapshots must agree to the
// last digit, which rules out float accumulation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Money struct {
	Amount decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Amount: d}
}

// MoneyFromCents builds a Money from an integer cent amount, the
// representation the SQLite store persists.
func MoneyFromCents(cents int64) Money {
	return Money{Amount: decimal.New(cents, -2)}
}

func MoneyFromFloat(f float64) Money {
	return Money{Amount: decimal.NewFromFloat(f)}
}

// ParseMoney parses a decimal string such as "1234.56". A decimal comma is
// accepted as separator.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{Amount: d}, nil
}

// Cents returns the amount rounded half-up to whole cents.
func (m Money) Cents() int64 {
	return m.Amount.Round(2).Shift(2).IntPart()
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount)}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount.Sub(o.Amount)}
}

// MulDecimal scales the amount by an arbitrary decimal factor, e.g. a
// monthly rate times a fractional step length.
func (m Money) MulDecimal(d decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(d)}
}

func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount)
}

func (m Money) GreaterThan(o Money) bool {
	return m.Amount.GreaterThan(o.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}

func (m Money) String() string {
	return m.Amount.String()
}

func MoneyZero() Money {
	return Money{Amount: decimal.Zero}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.Amount.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Amount.UnmarshalJSON(data)
}
