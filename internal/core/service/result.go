package service

import (
	"fmt"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
)

// PaymentStatus is the outcome of a payment request.
type PaymentStatus string

const (
	PaymentCanceled PaymentStatus = "CANCELED"
	PaymentOK       PaymentStatus = "OK"
)

// PaymentResult is a decoded ActivityResult of a payment request.
type PaymentResult struct {
	RequestToken int
	Status       PaymentStatus
	// Bill is the bill returned by the payment application, if any.
	Bill *domain.Bill
	// Err is a failure the payment application reported after dispatch, such as
	// an image it could not load.
	Err error
}

// BillFrom extracts the bill from an intent. It returns nil without an error when
// the intent carries no bill.
func BillFrom(intent *domain.Intent) (*domain.Bill, error) {
	payload, ok := intent.Extra(BillKey)
	if !ok {
		return nil, nil
	}
	bill, err := domain.UnmarshalBill(payload)
	if err != nil {
		return nil, fmt.Errorf("domain.UnmarshalBill: %w", err)
	}
	return bill, nil
}

// DecodeResult maps the platform callback of a payment request.
func DecodeResult(result domain.ActivityResult) (PaymentResult, error) {
	var status PaymentStatus
	switch result.ResultCode {
	case domain.ResultOK:
		status = PaymentOK
	case domain.ResultCanceled:
		status = PaymentCanceled
	default:
		return PaymentResult{}, domain.NewInvalidArgumentError("unexpected result code %s", result.ResultCode)
	}

	bill, err := BillFrom(result.Data)
	if err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{
		RequestToken: result.RequestCode,
		Status:       status,
		Bill:         bill,
		Err:          reportedError(result.Data),
	}, nil
}

func reportedError(data *domain.Intent) error {
	code, ok := data.Extra(ErrorKey)
	if !ok {
		return nil
	}
	switch string(code) {
	case domain.ErrCodeImageNotFound:
		return domain.NewImageNotFoundError("reported by payment app")
	default:
		return &domain.DomainError{
			Code:    string(code),
			Message: "reported by payment app",
		}
	}
}
