package domain

import (
	"fmt"
	"slices"
)

// MaxLineItems is how many items a Bill holds. The payment application accepts a
// single item today; the slice-based API leaves room for more.
const MaxLineItems = 1

// Bill is a payment request handed to the payment application. Build one with
// BillBuilder or BillContaining.
type Bill struct {
	lineItems    []LineItem
	defaultEmail *string
}

// BillContaining constructs a bill that holds a single line item.
func BillContaining(item LineItem) (*Bill, error) {
	b := NewBillBuilder()
	if err := b.Add(item); err != nil {
		return nil, err
	}
	return b.Build()
}

// LineItems returns the items of the bill. Contains at least one element.
func (b *Bill) LineItems() []LineItem {
	return slices.Clone(b.lineItems)
}

// DefaultEmail returns the payer email to pre-fill and whether one was provided.
func (b *Bill) DefaultEmail() (string, bool) {
	if b.defaultEmail == nil {
		return "", false
	}
	return *b.defaultEmail, true
}

// Total sums the item prices. All items share a currency.
func (b *Bill) Total() (Money, error) {
	var amount int64
	for _, item := range b.lineItems {
		amount += item.price.amount
	}
	return NewMoney(amount, b.lineItems[0].price.currency)
}

func (b *Bill) String() string {
	email := "<nil>"
	if b.defaultEmail != nil {
		email = fmt.Sprintf("%q", *b.defaultEmail)
	}
	return fmt.Sprintf("Bill{defaultEmail=%s, lineItems=%v}", email, b.lineItems)
}

// BillBuilder builds a Bill. Add exactly one item.
type BillBuilder struct {
	lineItem     *LineItem
	defaultEmail *string
}

func NewBillBuilder() *BillBuilder {
	return &BillBuilder{}
}

// Add adds an item to the bill. Required; only one item is supported.
func (b *BillBuilder) Add(item LineItem) error {
	if b.lineItem != nil {
		return NewTooManyItemsError(MaxLineItems)
	}
	if item.IsZero() {
		return NewNullReferenceError("lineItem")
	}
	b.lineItem = &item
	return nil
}

// DefaultEmail sets an address to pre-fill when the payer asks for an emailed
// receipt and the payment application has none on file. Only valid after Add.
func (b *BillBuilder) DefaultEmail(email string) error {
	if b.defaultEmail != nil {
		return NewAlreadySetError("default email")
	}
	if b.lineItem == nil {
		return NewMissingRequiredFieldError("lineItem")
	}
	if email == "" {
		return NewNullReferenceError("email")
	}
	b.defaultEmail = &email
	return nil
}

func (b *BillBuilder) Build() (*Bill, error) {
	if b.lineItem == nil {
		return nil, NewMissingRequiredFieldError("lineItem")
	}
	bill := &Bill{
		lineItems:    []LineItem{*b.lineItem},
		defaultEmail: b.defaultEmail,
	}
	if err := validateBill(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func validateBill(bill *Bill) error {
	if len(bill.lineItems) != MaxLineItems {
		return NewInvalidArgumentError("bill has %d line items, want %d", len(bill.lineItems), MaxLineItems)
	}
	for _, item := range bill.lineItems {
		if err := validateLineItem(item); err != nil {
			return err
		}
	}
	if bill.defaultEmail != nil && *bill.defaultEmail == "" {
		return NewNullReferenceError("email")
	}
	return nil
}
