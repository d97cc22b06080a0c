package domain

import (
	"encoding/json"

	"github.com/samber/lo"
)

// billRecord is the wire representation of a Bill passed between processes.
type billRecord struct {
	LineItems    []lineItemRecord `json:"line_items"`
	DefaultEmail *string          `json:"default_email,omitempty"`
}

type lineItemRecord struct {
	Description *string      `json:"description,omitempty"`
	Price       *moneyRecord `json:"price"`
	Image       *imageRecord `json:"image,omitempty"`
}

type moneyRecord struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type imageRecord struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// MarshalBill serializes a bill for the "bill" extra of a payment request.
func MarshalBill(b *Bill) ([]byte, error) {
	if b == nil {
		return nil, NewNullReferenceError("bill")
	}
	return json.Marshal(toBillRecord(b))
}

// UnmarshalBill decodes a payload produced by MarshalBill and re-checks every
// invariant. A payload that violates one fails with ErrCodeInternalConsistency.
func UnmarshalBill(data []byte) (*Bill, error) {
	var rec billRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, NewInternalConsistencyError("bill payload", err)
	}

	bill := fromBillRecord(rec)
	if err := validateBill(bill); err != nil {
		return nil, NewInternalConsistencyError("bill", err)
	}
	return bill, nil
}

func (b *Bill) MarshalJSON() ([]byte, error) {
	return json.Marshal(toBillRecord(b))
}

func (b *Bill) UnmarshalJSON(data []byte) error {
	decoded, err := UnmarshalBill(data)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

func toBillRecord(b *Bill) billRecord {
	return billRecord{
		LineItems: lo.Map(b.lineItems, func(item LineItem, _ int) lineItemRecord {
			return toLineItemRecord(item)
		}),
		DefaultEmail: b.defaultEmail,
	}
}

func toLineItemRecord(item LineItem) lineItemRecord {
	rec := lineItemRecord{
		Description: item.description,
		Price: &moneyRecord{
			Amount:   item.price.amount,
			Currency: string(item.price.currency),
		},
	}
	if item.image != nil {
		rec.Image = &imageRecord{
			URL:  item.image.url,
			Type: string(item.image.imageType),
		}
	}
	return rec
}

// fromBillRecord copies the record verbatim, without validation.
func fromBillRecord(rec billRecord) *Bill {
	return &Bill{
		lineItems: lo.Map(rec.LineItems, func(r lineItemRecord, _ int) LineItem {
			return fromLineItemRecord(r)
		}),
		defaultEmail: rec.DefaultEmail,
	}
}

func fromLineItemRecord(rec lineItemRecord) LineItem {
	item := LineItem{description: rec.Description}
	if rec.Price != nil {
		item.price = Money{amount: rec.Price.Amount, currency: Currency(rec.Price.Currency)}
	}
	if rec.Image != nil {
		item.image = lo.ToPtr(Image{url: rec.Image.URL, imageType: ImageType(rec.Image.Type)})
	}
	return item
}
