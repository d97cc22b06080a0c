// Package service is the entry point of the SDK. PaymentGateway talks to the
// payment application installed on the device:
//
//   - InstallationStatus queries whether it is installed and recent enough.
//   - RequestInstallation navigates to it in the marketplace.
//   - RequestPayment launches it with a Bill.
//
// Results are delivered to the host application as a domain.ActivityResult and
// decoded with DecodeResult.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
	"github.com/DanielPopoola/squarepay/internal/core/ports"
)

const (
	// PaymentAppPackage is the package name of the payment application.
	PaymentAppPackage = "com.squareup"

	// MinimumVersion is the oldest payment application version code that
	// supports this version of the API.
	MinimumVersion = 2

	// ActionRequestPayment is the intent action of a payment request.
	ActionRequestPayment = PaymentAppPackage + ".REQUEST_PAYMENT"

	// BillKey is the intent extra holding the serialized bill.
	BillKey = "bill"

	// ErrorKey is the result extra the payment application uses to report a
	// failure it hit after the request was dispatched.
	ErrorKey = "error"

	marketURL = "market://search?q=pname:" + PaymentAppPackage
)

type PaymentGateway struct {
	registry ports.PackageRegistry
	launcher ports.ActivityLauncher
	logger   *slog.Logger
}

func NewPaymentGateway(registry ports.PackageRegistry, launcher ports.ActivityLauncher, logger *slog.Logger) *PaymentGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentGateway{
		registry: registry,
		launcher: launcher,
		logger:   logger,
	}
}

// InstallationStatus checks the payment application installation, if any, on the
// device. A missing package is reported as InstallationMissing, not as an error.
func (g *PaymentGateway) InstallationStatus(ctx context.Context) (domain.InstallationStatus, error) {
	info, err := g.registry.PackageInfo(ctx, PaymentAppPackage)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodePackageNotFound) {
			g.logger.DebugContext(ctx, "payment app not installed", "package", PaymentAppPackage)
			return domain.InstallationMissing, nil
		}
		return "", fmt.Errorf("registry.PackageInfo: %w", err)
	}

	status := domain.InstallationAvailable
	if info.VersionCode < MinimumVersion {
		status = domain.InstallationOutdated
	}

	g.logger.DebugContext(ctx, "payment app installation",
		"package", PaymentAppPackage,
		"version_code", info.VersionCode,
		"status", status,
	)
	return status, nil
}

// RequestInstallation navigates to the payment application in the marketplace.
func (g *PaymentGateway) RequestInstallation(ctx context.Context) error {
	intent := domain.Intent{
		Action: domain.ActionView,
		Data:   marketURL,
	}

	if err := g.launcher.StartActivity(ctx, intent); err != nil {
		return fmt.Errorf("launcher.StartActivity: %w", err)
	}

	g.logger.InfoContext(ctx, "requested payment app installation", "url", marketURL)
	return nil
}

// RequestPayment is equivalent to RequestPaymentWithToken(ctx, bill, 0). Useful when
// the host application issues no other requests for results.
func (g *PaymentGateway) RequestPayment(ctx context.Context, bill *domain.Bill) error {
	return g.RequestPaymentWithToken(ctx, bill, 0)
}

// RequestPaymentWithToken launches the payment application, which fills in the
// price, description, image and payer email from bill.
//
// The call returns once the request is dispatched. When the payment application
// finishes, the platform delivers an ActivityResult carrying requestToken with
// ResultCanceled if the payment was canceled or ResultOK if it succeeded.
//
// Fails with ErrCodeActivityNotFound if the payment application is not installed
// or does not support this version of the API.
func (g *PaymentGateway) RequestPaymentWithToken(ctx context.Context, bill *domain.Bill, requestToken int) error {
	if requestToken < 0 {
		return domain.NewInvalidArgumentError("requestToken < 0")
	}
	if bill == nil {
		return domain.NewNullReferenceError("bill")
	}

	payload, err := domain.MarshalBill(bill)
	if err != nil {
		return fmt.Errorf("domain.MarshalBill: %w", err)
	}

	intent := domain.NewIntent(ActionRequestPayment).
		AddFlags(domain.FlagActivityExcludeFromRecents).
		PutExtra(BillKey, payload)

	if err := g.launcher.StartActivityForResult(ctx, *intent, requestToken); err != nil {
		g.logger.ErrorContext(ctx, "payment request not dispatched",
			"request_token", requestToken,
			"error", err,
		)
		return fmt.Errorf("launcher.StartActivityForResult: %w", err)
	}

	g.logger.InfoContext(ctx, "payment requested",
		"request_token", requestToken,
		"line_items", len(bill.LineItems()),
		"payload_bytes", len(payload),
	)
	return nil
}
