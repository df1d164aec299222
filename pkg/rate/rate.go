// Package rate provides an exact decimal type for annualized rates such as
// drift and volatility, keeping scenario files free of float formatting
// noise.
package rate

import (
	"github.com/shopspring/decimal"
)

// Rate represents an annualized rate stored as an exact decimal. The zero
// value is a zero rate.
type Rate struct {
	decimal.Decimal
}

// New creates a Rate from a float64.
func New(value float64) Rate {
	return Rate{decimal.NewFromFloat(value)}
}

// FromDecimal creates a Rate from a decimal.Decimal.
func FromDecimal(d decimal.Decimal) Rate {
	return Rate{d}
}

// FromString creates a Rate from a decimal string such as "0.05".
func FromString(value string) (Rate, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Rate{}, err
	}
	return Rate{d}, nil
}

// Percent renders the rate as a percentage with two decimals, e.g. "5.00%".
func (r Rate) Percent() string {
	return r.Decimal.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
