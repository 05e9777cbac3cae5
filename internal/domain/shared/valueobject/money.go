package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// IDR is the only currency the store sells in.
const IDR Currency = "IDR"

// Money is a value object representing monetary amounts.
// It is immutable - all operations return new Money instances
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewRupiah creates Money in IDR
func NewRupiah(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: IDR}
}

// NewRupiahFromInt creates Money in IDR from whole rupiah
func NewRupiahFromInt(amount int64) Money {
	return NewRupiah(decimal.NewFromInt(amount))
}

// ZeroRupiah returns zero IDR
func ZeroRupiah() Money {
	return NewRupiah(decimal.Zero)
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Add returns the sum of both amounts. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MultiplyByInt multiplies the amount by an integer factor, e.g. a quantity
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor)), currency: m.currency}
}

// Equals compares amount and currency
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns the plain decimal amount with currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

var idPrinter = message.NewPrinter(language.Indonesian)

// Format renders the amount the way the storefront displays prices,
// e.g. "Rp 7.000" (Indonesian grouping, no fraction digits).
func (m Money) Format() string {
	whole := m.amount.Round(0).IntPart()
	return "Rp " + idPrinter.Sprintf("%d", whole)
}
