package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
	"github.com/DanielPopoola/squarepay/internal/core/service"
	"github.com/go-playground/validator"
	"github.com/spf13/cobra"
)

// twoCentsDrawable is the resource id of the sample application's item image.
const twoCentsDrawable = 0x7f020000

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the Square installation status on the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.gateway.InstallationStatus(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Open Square in the device marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.gateway.RequestInstallation(cmd.Context())
		},
	}
}

type payOptions struct {
	Amount      int64
	Currency    string `validate:"required"`
	Description string
	ImageURL    string
	ImageFile   string
	ImageType   string `validate:"omitempty,oneof=JPEG PNG"`
	Email       string `validate:"omitempty,email"`
	Token       int
}

func newPayCmd(a *app) *cobra.Command {
	var opts payOptions
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Request a payment for a single line item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.New().Struct(opts); err != nil {
				return err
			}
			bill, err := opts.bill()
			if err != nil {
				return err
			}
			return a.pay(cmd.Context(), cmd.OutOrStdout(), bill, opts.Token, domain.ResultOK)
		},
	}
	cmd.Flags().Int64Var(&opts.Amount, "amount", 0, "Price in atomic units of the currency (cents for USD)")
	cmd.Flags().StringVar(&opts.Currency, "currency", string(domain.CurrencyUSD), "Currency of the price")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Item description, 140 characters max")
	cmd.Flags().StringVar(&opts.ImageURL, "image-url", "", "Item image URL (content://, file:// or android.resource://)")
	cmd.Flags().StringVar(&opts.ImageFile, "image-file", "", "Local item image; its type is detected from the content")
	cmd.Flags().StringVar(&opts.ImageType, "image-type", "", "Item image type: JPEG or PNG")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Default payer email for the receipt")
	cmd.Flags().IntVar(&opts.Token, "token", 0, "Request token echoed in the result")
	_ = cmd.MarkFlagRequired("amount")
	cmd.MarkFlagsMutuallyExclusive("image-url", "image-file")
	return cmd
}

func (o payOptions) bill() (*domain.Bill, error) {
	currency, err := domain.ToCurrency(o.Currency)
	if err != nil {
		return nil, err
	}

	b := domain.NewLineItemBuilder()
	if err := b.PriceOf(o.Amount, currency); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	if o.Description != "" {
		if err := b.Description(o.Description); err != nil {
			return nil, fmt.Errorf("description: %w", err)
		}
	}
	img, ok, err := o.image()
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	if ok {
		if err := b.Image(img); err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
	}
	item, err := b.Build()
	if err != nil {
		return nil, err
	}

	bb := domain.NewBillBuilder()
	if err := bb.Add(item); err != nil {
		return nil, err
	}
	if o.Email != "" {
		if err := bb.DefaultEmail(o.Email); err != nil {
			return nil, fmt.Errorf("email: %w", err)
		}
	}
	return bb.Build()
}

func (o payOptions) image() (domain.Image, bool, error) {
	switch {
	case o.ImageFile != "":
		return imageFromFile(o.ImageFile, o.ImageType)
	case o.ImageURL != "":
		if o.ImageType == "" {
			return domain.Image{}, false, errors.New("--image-type is required with --image-url")
		}
		img, err := domain.NewImage(o.ImageURL, domain.ImageType(o.ImageType))
		return img, err == nil, err
	default:
		return domain.Image{}, false, nil
	}
}

func imageFromFile(path, imageType string) (domain.Image, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Image{}, false, fmt.Errorf("filepath.Abs: %w", err)
	}

	t := domain.ImageType(imageType)
	if t == "" {
		f, err := os.Open(abs)
		if err != nil {
			return domain.Image{}, false, fmt.Errorf("os.Open: %w", err)
		}
		defer f.Close()

		if t, err = domain.DetectImageType(f); err != nil {
			return domain.Image{}, false, err
		}
	}

	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	img, err := domain.NewImage(fileURL, t)
	return img, err == nil, err
}

func newDecodeCmd() *cobra.Command {
	var isBase64 bool
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Validate and print a serialized bill (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			if isBase64 {
				if data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(string(data))); err != nil {
					return fmt.Errorf("base64: %w", err)
				}
			}

			bill, err := domain.UnmarshalBill(data)
			if err != nil {
				return err
			}
			return printBill(cmd.OutOrStdout(), bill)
		},
	}
	cmd.Flags().BoolVar(&isBase64, "base64", false, "Payload is base64 encoded, as passed over adb")
	return cmd
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		cancel       bool
		missingImage bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Charge two cents for advice on the simulated device",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.device == nil {
				a.device = newSimulatedDevice(a.cfg.App, a.logger)
				a.gateway = service.NewPaymentGateway(a.device, a.device, a.logger)
			}

			ctx := cmd.Context()
			status, err := a.gateway.InstallationStatus(ctx)
			if err != nil {
				return err
			}
			if status != domain.InstallationAvailable {
				fmt.Fprintf(cmd.OutOrStdout(), "square is %s, requesting installation\n", status)
				return a.gateway.RequestInstallation(ctx)
			}

			img, err := domain.ImageForResource(a.device, twoCentsDrawable, domain.ImageTypeJPEG)
			if err != nil {
				return err
			}
			if !missingImage {
				a.device.AddResource(img.URL())
			}

			bill, err := adviceBill(img)
			if err != nil {
				return err
			}

			approved := domain.ResultOK
			if cancel {
				approved = domain.ResultCanceled
			}
			return a.pay(ctx, cmd.OutOrStdout(), bill, 0, approved)
		},
	}
	cmd.Flags().BoolVar(&cancel, "cancel", false, "Have the payer cancel the payment")
	cmd.Flags().BoolVar(&missingImage, "missing-image", false, "Do not make the item image available on the device")
	return cmd
}

func adviceBill(img domain.Image) (*domain.Bill, error) {
	b := domain.NewLineItemBuilder()
	if err := b.PriceOf(2, domain.CurrencyUSD); err != nil {
		return nil, err
	}
	if err := b.Description("Advice"); err != nil {
		return nil, err
	}
	if err := b.Image(img); err != nil {
		return nil, err
	}
	advice, err := b.Build()
	if err != nil {
		return nil, err
	}
	return domain.BillContaining(advice)
}

// pay dispatches the request and, on a simulated device, plays the payment
// application and prints the result.
func (a *app) pay(ctx context.Context, out io.Writer, bill *domain.Bill, token int, approved domain.ResultCode) error {
	if err := a.gateway.RequestPaymentWithToken(ctx, bill, token); err != nil {
		return err
	}
	if err := printBill(out, bill); err != nil {
		return err
	}

	if a.device == nil {
		fmt.Fprintln(out, "request dispatched; adb does not report payment results")
		return nil
	}

	var results []domain.ActivityResult
	a.device.OnResult(func(r domain.ActivityResult) {
		results = append(results, r)
	})
	if err := a.device.RunPaymentApp(ctx, approved); err != nil {
		return err
	}

	for _, r := range results {
		res, err := service.DecodeResult(r)
		if err != nil {
			return err
		}
		printResult(out, res)
	}
	return nil
}

func printBill(out io.Writer, bill *domain.Bill) error {
	total, err := bill.Total()
	if err != nil {
		return err
	}
	for _, item := range bill.LineItems() {
		fmt.Fprintf(out, "item: %s", item.Price().Format())
		if d, ok := item.Description(); ok {
			fmt.Fprintf(out, " %q", d)
		}
		if img, ok := item.Image(); ok {
			fmt.Fprintf(out, " [%s %s]", img.Type().MimeType(), img.URL())
		}
		fmt.Fprintln(out)
	}
	if email, ok := bill.DefaultEmail(); ok {
		fmt.Fprintf(out, "default email: %s\n", email)
	}
	fmt.Fprintf(out, "total: %s\n", total.Format())
	return nil
}

func printResult(out io.Writer, res service.PaymentResult) {
	fmt.Fprintf(out, "result: token=%d status=%s", res.RequestToken, res.Status)
	if res.Bill != nil {
		fmt.Fprint(out, " bill returned")
	}
	if res.Err != nil {
		fmt.Fprintf(out, " error=%v", res.Err)
	}
	fmt.Fprintln(out)
}
