package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed as a fraction (0.0145 for 1.45%).
type Percent struct {
	decimal.Decimal
}

func NewPercent(value string) (Percent, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Percent{}, fmt.Errorf("parse percent %q: %w", value, err)
	}
	return Percent{Decimal: d}, nil
}

// MustPercent is for literals in tests and static tables.
func MustPercent(value string) Percent {
	p, err := NewPercent(value)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percent) Of(cents int64) int64 {
	return MulTrunc(cents, p.Decimal)
}

func (p Percent) Valid() bool {
	return !p.Decimal.IsNegative()
}
