package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
)

func TestBillContaining(t *testing.T) {
	t.Run("holds exactly the item", func(t *testing.T) {
		item := buildItem(t, 2)

		bill, err := domain.BillContaining(item)

		require.NoError(t, err)
		assert.Equal(t, []domain.LineItem{item}, bill.LineItems())
		_, ok := bill.DefaultEmail()
		assert.False(t, ok)
	})

	t.Run("rejects zero item", func(t *testing.T) {
		_, err := domain.BillContaining(domain.LineItem{})

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNullReference))
	})
}

func TestBillBuilder(t *testing.T) {
	t.Run("builds bill with default email", func(t *testing.T) {
		b := domain.NewBillBuilder()
		require.NoError(t, b.Add(buildItem(t, 2)))
		require.NoError(t, b.DefaultEmail("payer@example.com"))

		bill, err := b.Build()

		require.NoError(t, err)
		email, ok := bill.DefaultEmail()
		assert.True(t, ok)
		assert.Equal(t, "payer@example.com", email)
		assert.Len(t, bill.LineItems(), 1)
	})

	t.Run("rejects second item", func(t *testing.T) {
		b := domain.NewBillBuilder()
		require.NoError(t, b.Add(buildItem(t, 2)))

		err := b.Add(buildItem(t, 3))

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeTooManyItems))
	})

	t.Run("rejects default email before item", func(t *testing.T) {
		err := domain.NewBillBuilder().DefaultEmail("payer@example.com")

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingRequiredField))
		assert.Contains(t, err.Error(), "lineItem")
	})

	t.Run("rejects default email set twice", func(t *testing.T) {
		b := domain.NewBillBuilder()
		require.NoError(t, b.Add(buildItem(t, 2)))
		require.NoError(t, b.DefaultEmail("payer@example.com"))

		err := b.DefaultEmail("other@example.com")

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeAlreadySet))
	})

	t.Run("rejects empty default email", func(t *testing.T) {
		b := domain.NewBillBuilder()
		require.NoError(t, b.Add(buildItem(t, 2)))

		err := b.DefaultEmail("")

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNullReference))
	})

	t.Run("requires an item", func(t *testing.T) {
		_, err := domain.NewBillBuilder().Build()

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingRequiredField))
	})
}

func TestBill_LineItemsIsACopy(t *testing.T) {
	item := buildItem(t, 2)
	bill, err := domain.BillContaining(item)
	require.NoError(t, err)

	items := bill.LineItems()
	items[0] = buildItem(t, 99)

	assert.Equal(t, int64(2), bill.LineItems()[0].Price().Amount())
}

func TestBill_Total(t *testing.T) {
	bill, err := domain.BillContaining(buildItem(t, 250))
	require.NoError(t, err)

	total, err := bill.Total()

	require.NoError(t, err)
	assert.Equal(t, "USD 2.50", total.Format())
}
