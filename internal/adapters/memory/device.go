// Package memory provides a simulated device that keeps installed packages and
// dispatched intents in memory. It backs the CLI simulate command and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
	"github.com/DanielPopoola/squarepay/internal/core/service"
	"github.com/google/uuid"
)

// ErrNoPendingRequest is returned when a result is completed for a request code
// that has no pending dispatch.
var ErrNoPendingRequest = errors.New("no pending request")

// Dispatch is an intent the device accepted.
type Dispatch struct {
	ID          uuid.UUID
	Intent      domain.Intent
	RequestCode int
	ForResult   bool
	Completed   bool
}

type installedPackage struct {
	info    domain.PackageInfo
	actions []string
}

type Device struct {
	mu          sync.Mutex
	hostPackage string
	packages    map[string]installedPackage
	resources   map[string]struct{}
	dispatches  []*Dispatch
	onResult    func(domain.ActivityResult)
	logger      *slog.Logger
}

// NewDevice creates an empty device running the host application hostPackage.
func NewDevice(hostPackage string, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{
		hostPackage: hostPackage,
		packages:    make(map[string]installedPackage),
		resources:   make(map[string]struct{}),
		logger:      logger,
	}
}

// PackageName returns the host application package, for resource URLs.
func (d *Device) PackageName() string {
	return d.hostPackage
}

// Install registers a package and the intent actions it handles. Installing the
// same package again replaces it.
func (d *Device) Install(packageName string, versionCode int, actions ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.packages[packageName] = installedPackage{
		info: domain.PackageInfo{
			PackageName: packageName,
			VersionCode: versionCode,
			VersionName: fmt.Sprintf("%d.0", versionCode),
		},
		actions: actions,
	}
}

func (d *Device) Uninstall(packageName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.packages, packageName)
}

// AddResource makes url loadable by applications on the device.
func (d *Device) AddResource(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resources[url] = struct{}{}
}

func (d *Device) HasResource(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.resources[url]
	return ok
}

// OnResult registers the callback receiving activity results. It replaces any
// previous callback.
func (d *Device) OnResult(fn func(domain.ActivityResult)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onResult = fn
}

func (d *Device) PackageInfo(_ context.Context, packageName string) (domain.PackageInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pkg, ok := d.packages[packageName]
	if !ok {
		return domain.PackageInfo{}, domain.NewPackageNotFoundError(packageName)
	}
	return pkg.info, nil
}

func (d *Device) StartActivity(ctx context.Context, intent domain.Intent) error {
	_, err := d.dispatch(ctx, intent, 0, false)
	return err
}

func (d *Device) StartActivityForResult(ctx context.Context, intent domain.Intent, requestCode int) error {
	_, err := d.dispatch(ctx, intent, requestCode, true)
	return err
}

func (d *Device) dispatch(ctx context.Context, intent domain.Intent, requestCode int, forResult bool) (*Dispatch, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.resolves(intent.Action) {
		return nil, domain.NewActivityNotFoundError(intent.Action, nil)
	}

	dispatch := &Dispatch{
		ID:          uuid.New(),
		Intent:      intent,
		RequestCode: requestCode,
		ForResult:   forResult,
	}
	d.dispatches = append(d.dispatches, dispatch)

	d.logger.DebugContext(ctx, "intent dispatched",
		"dispatch_id", dispatch.ID,
		"action", intent.Action,
		"request_code", requestCode,
	)
	return dispatch, nil
}

func (d *Device) resolves(action string) bool {
	for _, pkg := range d.packages {
		if slices.Contains(pkg.actions, action) {
			return true
		}
	}
	return false
}

// Dispatches returns a snapshot of every accepted intent, oldest first.
func (d *Device) Dispatches() []Dispatch {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Dispatch, 0, len(d.dispatches))
	for _, dispatch := range d.dispatches {
		out = append(out, *dispatch)
	}
	return out
}

// Pending returns the dispatches still waiting for a result, oldest first.
func (d *Device) Pending() []Dispatch {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Dispatch
	for _, dispatch := range d.dispatches {
		if dispatch.ForResult && !dispatch.Completed {
			out = append(out, *dispatch)
		}
	}
	return out
}

// Complete finishes the oldest pending request with requestCode and delivers the
// result to the OnResult callback.
func (d *Device) Complete(requestCode int, resultCode domain.ResultCode, data *domain.Intent) error {
	d.mu.Lock()
	var target *Dispatch
	for _, dispatch := range d.dispatches {
		if dispatch.ForResult && !dispatch.Completed && dispatch.RequestCode == requestCode {
			target = dispatch
			break
		}
	}
	if target == nil {
		d.mu.Unlock()
		return fmt.Errorf("request code %d: %w", requestCode, ErrNoPendingRequest)
	}
	target.Completed = true
	onResult := d.onResult
	d.mu.Unlock()

	if onResult != nil {
		onResult(domain.ActivityResult{
			RequestCode: requestCode,
			ResultCode:  resultCode,
			Data:        data,
		})
	}
	return nil
}

// RunPaymentApp plays the payment application for every pending payment request:
// a request whose image the device cannot load is canceled with an
// IMAGE_NOT_FOUND error, a corrupt bill is canceled with an INTERNAL_CONSISTENCY
// error, and any other request completes with approved.
func (d *Device) RunPaymentApp(ctx context.Context, approved domain.ResultCode) error {
	for _, dispatch := range d.Pending() {
		if dispatch.Intent.Action != service.ActionRequestPayment {
			continue
		}

		resultCode, data := d.payResult(ctx, dispatch, approved)
		if err := d.Complete(dispatch.RequestCode, resultCode, data); err != nil {
			return fmt.Errorf("d.Complete: %w", err)
		}
	}
	return nil
}

func (d *Device) payResult(ctx context.Context, dispatch Dispatch, approved domain.ResultCode) (domain.ResultCode, *domain.Intent) {
	bill, err := service.BillFrom(&dispatch.Intent)
	if err != nil || bill == nil {
		d.logger.WarnContext(ctx, "payment request carries no valid bill",
			"dispatch_id", dispatch.ID,
			"error", err,
		)
		return domain.ResultCanceled, errorIntent(domain.ErrCodeInternalConsistency)
	}

	for _, item := range bill.LineItems() {
		img, ok := item.Image()
		if ok && !d.HasResource(img.URL()) {
			d.logger.WarnContext(ctx, "image not found",
				"dispatch_id", dispatch.ID,
				"url", img.URL(),
			)
			return domain.ResultCanceled, errorIntent(domain.ErrCodeImageNotFound)
		}
	}
	return approved, nil
}

func errorIntent(code string) *domain.Intent {
	return (&domain.Intent{}).PutExtra(service.ErrorKey, []byte(code))
}
