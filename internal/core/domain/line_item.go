package domain

import (
	"fmt"
	"math"
	"net/url"
	"unicode/utf8"
)

// MaxDescriptionLength is the longest item description accepted, in characters.
const MaxDescriptionLength = 140

// image URL schemes the payment application knows how to load
var supportedImageSchemes = map[string]struct{}{
	"content":             {},
	"file":                {},
	ResourceSchemeAndroid: {},
}

// LineItem is a single entry of a Bill. Build one with LineItemBuilder.
type LineItem struct {
	description *string
	price       Money
	image       *Image
}

// Description returns the item description and whether one was provided.
func (li LineItem) Description() (string, bool) {
	if li.description == nil {
		return "", false
	}
	return *li.description, true
}

// Price is always set on a built LineItem.
func (li LineItem) Price() Money {
	return li.price
}

// Image returns the item image and whether one was provided.
func (li LineItem) Image() (Image, bool) {
	if li.image == nil {
		return Image{}, false
	}
	return *li.image, true
}

// IsZero reports whether li is the zero value, i.e. was never built.
func (li LineItem) IsZero() bool {
	return li.price.IsZero()
}

func (li LineItem) String() string {
	description := "<nil>"
	if li.description != nil {
		description = fmt.Sprintf("%q", *li.description)
	}
	image := "<nil>"
	if li.image != nil {
		image = li.image.String()
	}
	return fmt.Sprintf("LineItem{description=%s, price=%s, image=%s}", description, li.price, image)
}

// LineItemBuilder accumulates the fields of a LineItem. A price is required, the
// rest is optional. Every field may be set once.
type LineItemBuilder struct {
	description *string
	price       *Money
	image       *Image
}

func NewLineItemBuilder() *LineItemBuilder {
	return &LineItemBuilder{}
}

// Description describes the item in 140 characters or less.
func (b *LineItemBuilder) Description(description string) error {
	if b.description != nil {
		return NewAlreadySetError("description")
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	b.description = &description
	return nil
}

// PriceOf is equivalent to Price(NewMoney(amount, currency)).
func (b *LineItemBuilder) PriceOf(amount int64, currency Currency) error {
	if b.price != nil {
		return NewAlreadySetError("price")
	}
	m, err := NewMoney(amount, currency)
	if err != nil {
		return err
	}
	return b.Price(m)
}

// Price sets the price of the line item. Required.
func (b *LineItemBuilder) Price(price Money) error {
	if b.price != nil {
		return NewAlreadySetError("price")
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	b.price = &price
	return nil
}

// ImageOf is equivalent to Image(NewImage(url, imageType)).
func (b *LineItemBuilder) ImageOf(rawURL string, imageType ImageType) error {
	if b.image != nil {
		return NewAlreadySetError("image")
	}
	img, err := NewImage(rawURL, imageType)
	if err != nil {
		return err
	}
	return b.Image(img)
}

// Image associates an image with the item. The URL must use the content://, file://
// or android.resource:// scheme.
func (b *LineItemBuilder) Image(image Image) error {
	// TODO: enforce a maximum image size in bytes once the payment app publishes one.
	if b.image != nil {
		return NewAlreadySetError("image")
	}
	if err := validateItemImage(image); err != nil {
		return err
	}
	b.image = &image
	return nil
}

func (b *LineItemBuilder) Build() (LineItem, error) {
	if b.price == nil {
		return LineItem{}, NewMissingRequiredFieldError("price")
	}
	item := LineItem{
		description: b.description,
		price:       *b.price,
		image:       b.image,
	}
	if err := validateLineItem(item); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return NewInvalidArgumentError("description > %d chars", MaxDescriptionLength)
	}
	return nil
}

func validatePrice(price Money) error {
	if price.IsZero() {
		return NewNullReferenceError("price")
	}
	if err := validateMoney(price.amount, price.currency); err != nil {
		return err
	}
	// redundant with MaxAmount today; kept in case Money ever accepts larger values
	if price.amount > math.MaxInt32 {
		return NewInvalidArgumentError("price.Amount() > MaxInt32")
	}
	return nil
}

func validateItemImage(image Image) error {
	if image.IsZero() {
		return NewNullReferenceError("image")
	}
	if err := validateImage(image.url, image.imageType); err != nil {
		return err
	}
	u, _ := url.Parse(image.url)
	if _, ok := supportedImageSchemes[u.Scheme]; !ok {
		return NewInvalidArgumentError("unsupported image url scheme %q", u.Scheme)
	}
	return nil
}

// validateLineItem checks every invariant of a complete item. Builders and the
// decoder share it.
func validateLineItem(item LineItem) error {
	if item.price.IsZero() {
		return NewMissingRequiredFieldError("price")
	}
	if err := validatePrice(item.price); err != nil {
		return err
	}
	if item.description != nil {
		if err := validateDescription(*item.description); err != nil {
			return err
		}
	}
	if item.image != nil {
		if err := validateItemImage(*item.image); err != nil {
			return err
		}
	}
	return nil
}
