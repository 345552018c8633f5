// Package money converts between user-entered amounts and integer cents.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNegative  = errors.New("amount must not be negative")
	ErrFraction  = errors.New("amount has more than two decimal places")
	ErrMalformed = errors.New("amount is not a number")
)

var hundred = decimal.NewFromInt(100)

// ParseCents parses "200", "200.5", "$1,200.50" into cents.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrMalformed
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformed
	}
	if d.IsNegative() {
		return 0, ErrNegative
	}
	cents := d.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, ErrFraction
	}
	return cents.IntPart(), nil
}

// Format renders cents with two decimals and the given symbol, e.g. "$350.00".
func Format(symbol string, cents int64) string {
	return symbol + decimal.New(cents, -2).StringFixed(2)
}

// FormatRate renders a cents-denominated rate, rounded to whole cents.
func FormatRate(symbol string, centsRate float64) string {
	return symbol + decimal.NewFromFloat(centsRate).Div(hundred).StringFixed(2)
}

// ParseDowns parses a non-negative down count such as "16" or "12.5".
func ParseDowns(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrMalformed
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	return d, nil
}
