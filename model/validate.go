package model

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ValidCustomerName accepts letters and spaces only, with at least one letter.
func ValidCustomerName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// ParseQuantity validates raw input against the unit of the category. Food is
// counted in whole portions written as digits only; drinks are measured in
// liters and may be fractional. The result is rounded to two places, the
// precision the ledger is persisted with.
func ParseQuantity(category Category, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidQuantity
	}

	if category == CategoryDrink {
		q, err := decimal.NewFromString(raw)
		if err != nil || q.IsNegative() {
			return decimal.Zero, ErrInvalidQuantity
		}
		return q.Round(2), nil
	}

	for _, r := range raw {
		if r < '0' || r > '9' {
			return decimal.Zero, ErrInvalidQuantity
		}
	}
	q, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidQuantity
	}
	return q, nil
}

// LineTotal is price times quantity at two-decimal precision.
func LineTotal(price, quantity decimal.Decimal) decimal.Decimal {
	return price.Mul(quantity).Round(2)
}
