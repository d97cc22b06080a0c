package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/squarepay/internal/adapters/memory"
	"github.com/DanielPopoola/squarepay/internal/core/domain"
	"github.com/DanielPopoola/squarepay/internal/core/service"
)

const hostPackage = "com.example.twocents"

func newDevice(versionCode int) *memory.Device {
	d := memory.NewDevice(hostPackage, nil)
	if versionCode > 0 {
		d.Install(service.PaymentAppPackage, versionCode, service.ActionRequestPayment)
	}
	return d
}

func billWithImage(t *testing.T, img domain.Image) *domain.Bill {
	t.Helper()
	b := domain.NewLineItemBuilder()
	require.NoError(t, b.PriceOf(2, domain.CurrencyUSD))
	require.NoError(t, b.Image(img))
	item, err := b.Build()
	require.NoError(t, err)
	bill, err := domain.BillContaining(item)
	require.NoError(t, err)
	return bill
}

func collect(d *memory.Device) *[]domain.ActivityResult {
	var results []domain.ActivityResult
	d.OnResult(func(r domain.ActivityResult) {
		results = append(results, r)
	})
	return &results
}

func TestDevice_PackageInfo(t *testing.T) {
	d := newDevice(3)

	info, err := d.PackageInfo(context.Background(), service.PaymentAppPackage)
	require.NoError(t, err)
	assert.Equal(t, 3, info.VersionCode)
	assert.Equal(t, "3.0", info.VersionName)

	d.Uninstall(service.PaymentAppPackage)
	_, err = d.PackageInfo(context.Background(), service.PaymentAppPackage)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodePackageNotFound))
}

func TestDevice_StartActivity_Unresolved(t *testing.T) {
	d := newDevice(0)

	err := d.StartActivity(context.Background(), domain.Intent{Action: domain.ActionView})

	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeActivityNotFound))
	assert.Empty(t, d.Dispatches())
}

func TestDevice_PaymentFlow(t *testing.T) {
	ctx := context.Background()
	d := newDevice(service.MinimumVersion)
	gateway := service.NewPaymentGateway(d, d, nil)
	results := collect(d)

	img, err := domain.ImageForResource(d, 0x7f020000, domain.ImageTypeJPEG)
	require.NoError(t, err)
	d.AddResource(img.URL())

	status, err := gateway.InstallationStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.InstallationAvailable, status)

	require.NoError(t, gateway.RequestPaymentWithToken(ctx, billWithImage(t, img), 7))
	require.Len(t, d.Pending(), 1)

	require.NoError(t, d.RunPaymentApp(ctx, domain.ResultOK))

	assert.Empty(t, d.Pending())
	require.Len(t, *results, 1)
	res, err := service.DecodeResult((*results)[0])
	require.NoError(t, err)
	assert.Equal(t, 7, res.RequestToken)
	assert.Equal(t, service.PaymentOK, res.Status)
	assert.NoError(t, res.Err)
}

func TestDevice_PaymentCanceled(t *testing.T) {
	ctx := context.Background()
	d := newDevice(service.MinimumVersion)
	gateway := service.NewPaymentGateway(d, d, nil)
	results := collect(d)

	bill := billWithImage(t, mustImage(t, "content://media/1"))
	d.AddResource("content://media/1")
	require.NoError(t, gateway.RequestPayment(ctx, bill))
	require.NoError(t, d.RunPaymentApp(ctx, domain.ResultCanceled))

	require.Len(t, *results, 1)
	res, err := service.DecodeResult((*results)[0])
	require.NoError(t, err)
	assert.Equal(t, service.PaymentCanceled, res.Status)
	assert.NoError(t, res.Err)
}

func TestDevice_MissingImage(t *testing.T) {
	ctx := context.Background()
	d := newDevice(service.MinimumVersion)
	gateway := service.NewPaymentGateway(d, d, nil)
	results := collect(d)

	require.NoError(t, gateway.RequestPayment(ctx, billWithImage(t, mustImage(t, "file:///sdcard/missing.png"))))
	require.NoError(t, d.RunPaymentApp(ctx, domain.ResultOK))

	require.Len(t, *results, 1)
	res, err := service.DecodeResult((*results)[0])
	require.NoError(t, err)
	assert.Equal(t, service.PaymentCanceled, res.Status)
	assert.True(t, domain.IsErrorCode(res.Err, domain.ErrCodeImageNotFound))
}

func TestDevice_CorruptBill(t *testing.T) {
	ctx := context.Background()
	d := newDevice(service.MinimumVersion)
	results := collect(d)

	intent := domain.NewIntent(service.ActionRequestPayment).PutExtra(service.BillKey, []byte(`{"line_items":[]}`))
	require.NoError(t, d.StartActivityForResult(ctx, *intent, 1))
	require.NoError(t, d.RunPaymentApp(ctx, domain.ResultOK))

	require.Len(t, *results, 1)
	res, err := service.DecodeResult((*results)[0])
	require.NoError(t, err)
	assert.Equal(t, service.PaymentCanceled, res.Status)
	assert.True(t, domain.IsErrorCode(res.Err, domain.ErrCodeInternalConsistency))
}

func TestDevice_OutdatedPaymentApp(t *testing.T) {
	ctx := context.Background()
	d := memory.NewDevice(hostPackage, nil)
	// version 1 predates the payment request action
	d.Install(service.PaymentAppPackage, 1)
	gateway := service.NewPaymentGateway(d, d, nil)

	status, err := gateway.InstallationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.InstallationOutdated, status)

	err = gateway.RequestPayment(ctx, billWithImage(t, mustImage(t, "content://media/1")))
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeActivityNotFound))
}

func TestDevice_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown request code", func(t *testing.T) {
		d := newDevice(service.MinimumVersion)

		err := d.Complete(9, domain.ResultOK, nil)

		assert.True(t, errors.Is(err, memory.ErrNoPendingRequest))
	})

	t.Run("same token completes oldest first", func(t *testing.T) {
		d := newDevice(service.MinimumVersion)
		results := collect(d)
		intent := domain.NewIntent(service.ActionRequestPayment)
		require.NoError(t, d.StartActivityForResult(ctx, *intent, 4))
		require.NoError(t, d.StartActivityForResult(ctx, *intent, 4))
		first := d.Pending()[0].ID

		require.NoError(t, d.Complete(4, domain.ResultCanceled, nil))

		pending := d.Pending()
		require.Len(t, pending, 1)
		assert.NotEqual(t, first, pending[0].ID)
		require.Len(t, *results, 1)
		assert.Equal(t, 4, (*results)[0].RequestCode)

		require.NoError(t, d.Complete(4, domain.ResultOK, nil))
		assert.ErrorIs(t, d.Complete(4, domain.ResultOK, nil), memory.ErrNoPendingRequest)
	})

	t.Run("plain activity is not pending", func(t *testing.T) {
		d := newDevice(0)
		d.Install("com.android.vending", 1, domain.ActionView)

		require.NoError(t, d.StartActivity(ctx, domain.Intent{Action: domain.ActionView}))

		assert.Len(t, d.Dispatches(), 1)
		assert.Empty(t, d.Pending())
	})
}

func mustImage(t *testing.T, url string) domain.Image {
	t.Helper()
	img, err := domain.NewImage(url, domain.ImageTypePNG)
	require.NoError(t, err)
	return img
}
