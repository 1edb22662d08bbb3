package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a fixed-point currency string. At most 2 fractional
// digits are accepted and negative amounts are rejected.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid price %q", ErrValidation, raw)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q must not be negative", ErrValidation, raw)
	}
	if price.Exponent() < -2 {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q has more than 2 decimal places", ErrValidation, raw)
	}
	return price, nil
}
