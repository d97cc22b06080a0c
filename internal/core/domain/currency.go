package domain

import (
	"fmt"

	"golang.org/x/text/currency"
)

// Currency is a currency supported by the payment application.
type Currency string

// remember to add new currencies to the validCurrencies map
const (
	// CurrencyUSD is the United States dollar; amounts are given in cents.
	CurrencyUSD Currency = "USD"
)

var validCurrencies = map[Currency]struct{}{
	CurrencyUSD: {},
}

func ToCurrency(s string) (Currency, error) {
	c := Currency(s)
	if _, ok := validCurrencies[c]; ok {
		return c, nil
	}
	return "", NewInvalidArgumentError("unsupported currency %q", s)
}

func (c Currency) String() string {
	return string(c)
}

// Unit returns the ISO 4217 unit for the currency.
func (c Currency) Unit() (currency.Unit, error) {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency.ParseISO: %w", err)
	}
	return unit, nil
}

// Scale returns the number of minor-unit digits, 2 for USD.
func (c Currency) Scale() int {
	unit, err := c.Unit()
	if err != nil {
		return 0
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}
