package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAmount is the absolute maximum accepted by the payment application,
// 9 digits or $9,999,999.99. Merchant card limits are usually much lower.
const MaxAmount int64 = 999_999_999

// Money is a quantity of a specific currency, in atomic units (cents for USD).
type Money struct {
	amount   int64
	currency Currency
}

func NewMoney(amount int64, currency Currency) (Money, error) {
	if err := validateMoney(amount, currency); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: currency}, nil
}

func validateMoney(amount int64, currency Currency) error {
	if currency == "" {
		return NewNullReferenceError("currency")
	}
	if _, err := ToCurrency(string(currency)); err != nil {
		return err
	}
	if amount < 0 {
		return NewInvalidArgumentError("amount < 0")
	}
	if amount > MaxAmount {
		return NewInvalidArgumentError("amount > MaxAmount")
	}
	return nil
}

// Amount returns the amount in atomic units of Currency.
func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether m is the zero value, i.e. was never constructed.
func (m Money) IsZero() bool {
	return m.currency == ""
}

// Decimal returns the amount in major units, e.g. 0.02 for 2 US cents.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -int32(m.currency.Scale()))
}

// Format renders the amount for display, e.g. "USD 0.02".
func (m Money) Format() string {
	return fmt.Sprintf("%s %s", m.currency, m.Decimal().StringFixed(int32(m.currency.Scale())))
}

func (m Money) String() string {
	return fmt.Sprintf("Money{amount=%d, currency=%s}", m.amount, m.currency)
}
