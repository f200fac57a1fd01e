// Package money provides currency-safe arithmetic for Thai Baht amounts
// using integer satang and the Fowler Money pattern. Statement amounts are
// parsed into shopspring decimals; this package is the bridge between those
// decimals and the integer minor units persisted in the database.
package money

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// THB is the ISO-4217 code for Thai Baht (two decimal places).
const THB = "THB"

// Money represents a Thai Baht value backed by integer satang.
type Money struct {
	m *money.Money
}

// NewSatang creates Money from an amount in satang (minor units).
func NewSatang(satang int64) *Money {
	return &Money{m: money.New(satang, THB)}
}

// FromDecimal creates Money from a baht amount, rounding to whole satang.
func FromDecimal(amount decimal.Decimal) *Money {
	return NewSatang(SatangFromDecimal(amount))
}

// FromString parses a statement-formatted amount such as "1,234.56" or
// "฿84,150.00" into Money.
func FromString(amount string) (*Money, error) {
	amount = strings.TrimSpace(amount)
	amount = strings.ReplaceAll(amount, "฿", "")
	amount = strings.ReplaceAll(amount, ",", "")

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return FromDecimal(d), nil
}

// Zero returns a zero baht value.
func Zero() *Money {
	return NewSatang(0)
}

// SatangFromDecimal converts a baht decimal to satang, rounding half up.
func SatangFromDecimal(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// DecimalFromSatang converts satang back to a baht decimal.
func DecimalFromSatang(satang int64) decimal.Decimal {
	return decimal.New(satang, -2)
}

// Satang returns the amount in minor units.
func (m *Money) Satang() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// ToDecimal converts to a baht decimal for precise calculations.
func (m *Money) ToDecimal() decimal.Decimal {
	return DecimalFromSatang(m.Satang())
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (m *Money) IsPositive() bool {
	return m != nil && m.m != nil && m.m.IsPositive()
}

// Abs returns the absolute value.
func (m *Money) Abs() *Money {
	if m == nil || m.m == nil {
		return Zero()
	}
	return &Money{m: m.m.Absolute()}
}

// Add adds two baht values.
func (m *Money) Add(other *Money) *Money {
	if m == nil || m.m == nil {
		return other
	}
	if other == nil || other.m == nil {
		return m
	}
	// Both sides are always THB so Add cannot fail on currency mismatch.
	result, err := m.m.Add(other.m)
	if err != nil {
		panic(err)
	}
	return &Money{m: result}
}

// Subtract subtracts other from m.
func (m *Money) Subtract(other *Money) *Money {
	if other == nil || other.m == nil {
		return m
	}
	if m == nil || m.m == nil {
		return &Money{m: other.m.Negative()}
	}
	result, err := m.m.Subtract(other.m)
	if err != nil {
		panic(err)
	}
	return &Money{m: result}
}

// Compare returns -1 if m < other, 0 if equal, 1 if m > other.
func (m *Money) Compare(other *Money) int {
	return int(decimal.NewFromInt(m.Satang()).Cmp(decimal.NewFromInt(other.Satang())))
}

// Display returns a formatted string such as "฿1,234.56".
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return money.New(0, THB).Display()
	}
	return m.m.Display()
}

// String returns the amount as a plain decimal string such as "1234.56".
func (m *Money) String() string {
	return m.ToDecimal().StringFixed(2)
}
