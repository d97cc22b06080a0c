package ports

import (
	"context"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
)

// PackageRegistry looks up applications installed on the device.
type PackageRegistry interface {
	// PackageInfo returns a DomainError with ErrCodePackageNotFound when the
	// package is not installed.
	PackageInfo(ctx context.Context, packageName string) (domain.PackageInfo, error)
}

// ActivityLauncher hands intents to the platform. Both calls return as soon as the
// intent is dispatched; results arrive later as a domain.ActivityResult.
type ActivityLauncher interface {
	StartActivity(ctx context.Context, intent domain.Intent) error
	// StartActivityForResult returns a DomainError with ErrCodeActivityNotFound when
	// nothing on the device handles the intent.
	StartActivityForResult(ctx context.Context, intent domain.Intent, requestCode int) error
}
