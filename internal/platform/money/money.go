package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an amount in minor units (cents). All arithmetic stays in integers;
// products with fractional factors go through decimal and are truncated toward zero.
type Money struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

func New(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}
}

func Cents(amount int64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

func Zero(currency string) Money {
	return New(0, currency)
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) IsNegative() bool {
	return m.Amount < 0
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.currency()}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.currency()}, nil
}

// Plus adds raw cents in the receiver's currency.
func (m Money) Plus(cents int64) Money {
	return Money{Amount: m.Amount + cents, Currency: m.currency()}
}

// MulTrunc multiplies by a decimal factor and truncates toward zero.
func (m Money) MulTrunc(factor decimal.Decimal) Money {
	return Money{Amount: MulTrunc(m.Amount, factor), Currency: m.currency()}
}

func (m Money) String() string {
	sign := ""
	amount := m.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, m.currency())
}

func (m Money) currency() string {
	if m.Currency == "" {
		return DefaultCurrency
	}
	return m.Currency
}

func (m Money) sameCurrency(other Money) error {
	if m.currency() != other.currency() {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency(), other.currency())
	}
	return nil
}

// MulTrunc returns cents × factor truncated toward zero.
func MulTrunc(cents int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(factor).Truncate(0).IntPart()
}

// MulDivTrunc returns (cents × num ÷ den) truncated toward zero. A zero
// denominator yields zero.
func MulDivTrunc(cents int64, num, den decimal.Decimal) int64 {
	if den.IsZero() {
		return 0
	}
	return decimal.NewFromInt(cents).Mul(num).Div(den).Truncate(0).IntPart()
}

func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
