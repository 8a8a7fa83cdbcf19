// Package money converts between naira amounts and integer kobo.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrFractionalKobo = errors.New("amount has more than two decimal places")
	ErrNotPositive    = errors.New("amount must be positive")
)

var koboPerNaira = decimal.NewFromInt(100)

// ToKobo converts a naira amount to kobo.
func ToKobo(naira decimal.Decimal) (int64, error) {
	if !naira.IsPositive() {
		return 0, ErrNotPositive
	}
	kobo := naira.Mul(koboPerNaira)
	if !kobo.IsInteger() {
		return 0, ErrFractionalKobo
	}
	return kobo.IntPart(), nil
}

func ToNaira(kobo int64) decimal.Decimal {
	return decimal.NewFromInt(kobo).Div(koboPerNaira)
}

// Share returns floor(amount * rate) in kobo.
func Share(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Floor().IntPart()
}
