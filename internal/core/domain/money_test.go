package domain_test

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money within range", func(t *testing.T) {
		amounts := []int64{0, 1, 2, domain.MaxAmount}
		for i := 0; i < 100; i++ {
			amounts = append(amounts, int64(gofakeit.IntRange(0, int(domain.MaxAmount))))
		}

		for _, amount := range amounts {
			money, err := domain.NewMoney(amount, domain.CurrencyUSD)

			require.NoError(t, err)
			assert.Equal(t, amount, money.Amount())
			assert.Equal(t, domain.CurrencyUSD, money.Currency())
		}
	})

	t.Run("rejects out of range amounts", func(t *testing.T) {
		for _, amount := range []int64{-1, domain.MaxAmount + 1, math.MinInt64, math.MaxInt64} {
			_, err := domain.NewMoney(amount, domain.CurrencyUSD)

			require.Error(t, err)
			assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidArgument), "amount %d: %v", amount, err)
		}
	})

	t.Run("rejects missing currency", func(t *testing.T) {
		_, err := domain.NewMoney(100, "")

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNullReference))
		assert.Contains(t, err.Error(), "currency is required")
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		_, err := domain.NewMoney(100, domain.Currency("EUR"))

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidArgument))
	})
}

func TestMoney_Decimal(t *testing.T) {
	tests := []struct {
		amount  int64
		decimal string
		format  string
	}{
		{0, "0", "USD 0.00"},
		{2, "0.02", "USD 0.02"},
		{123456, "1234.56", "USD 1234.56"},
		{domain.MaxAmount, "9999999.99", "USD 9999999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			money, err := domain.NewMoney(tt.amount, domain.CurrencyUSD)
			require.NoError(t, err)

			assert.Equal(t, tt.decimal, money.Decimal().String())
			assert.Equal(t, tt.format, money.Format())
		})
	}
}

func TestMoney_String(t *testing.T) {
	money, err := domain.NewMoney(2, domain.CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, "Money{amount=2, currency=USD}", money.String())
}

func TestToCurrency(t *testing.T) {
	c, err := domain.ToCurrency("USD")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyUSD, c)
	assert.Equal(t, 2, c.Scale())

	unit, err := c.Unit()
	require.NoError(t, err)
	assert.Equal(t, "USD", unit.String())

	_, err = domain.ToCurrency("usd")
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidArgument))
}
