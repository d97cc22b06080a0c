package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanielPopoola/squarepay/internal/adapters/adb"
	"github.com/DanielPopoola/squarepay/internal/adapters/memory"
	"github.com/DanielPopoola/squarepay/internal/config"
	"github.com/DanielPopoola/squarepay/internal/core/domain"
	"github.com/DanielPopoola/squarepay/internal/core/service"
	"github.com/spf13/cobra"
)

// marketPackage handles marketplace links on the simulated device.
const marketPackage = "com.android.vending"

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	device  *memory.Device
	gateway *service.PaymentGateway
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand(&app{})
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "squarepay: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	var deviceKind string
	cmd := &cobra.Command{
		Use:   "squarepay",
		Short: "Request payments through the Square application on a device",
		Long: `squarepay builds a bill and hands it to the Square payment application, either on a device
reachable through adb or on an in-memory simulated device.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if deviceKind != "" {
				cfg.Device.Kind = deviceKind
			}
			return a.init(cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&deviceKind, "device", "", "Device to talk to: adb or memory (overrides SQUAREPAY_DEVICE__KIND)")
	cmd.AddCommand(
		newStatusCmd(a),
		newInstallCmd(a),
		newPayCmd(a),
		newDecodeCmd(),
		newSimulateCmd(a),
	)
	return cmd
}

func (a *app) init(cfg *config.Config) error {
	a.cfg = cfg
	a.logger = cfg.Logger.NewLogger()
	slog.SetDefault(a.logger)

	switch cfg.Device.Kind {
	case "adb":
		runner := adb.NewRetryRunner(adb.NewExecRunner(cfg.ADB), cfg.ADB)
		a.gateway = service.NewPaymentGateway(
			adb.NewRegistry(runner),
			adb.NewLauncher(runner, a.logger),
			a.logger,
		)
	case "memory":
		a.device = newSimulatedDevice(cfg.App, a.logger)
		a.gateway = service.NewPaymentGateway(a.device, a.device, a.logger)
	default:
		return fmt.Errorf("unknown device kind %q", cfg.Device.Kind)
	}

	a.logger.Debug("device selected", "kind", cfg.Device.Kind, "app_package", cfg.App.Package)
	return nil
}

// newSimulatedDevice returns a device with an up to date payment application and
// a marketplace installed.
func newSimulatedDevice(appCfg config.AppConfig, logger *slog.Logger) *memory.Device {
	device := memory.NewDevice(appCfg.PackageName(), logger)
	device.Install(service.PaymentAppPackage, service.MinimumVersion, service.ActionRequestPayment)
	device.Install(marketPackage, 1, domain.ActionView)
	return device
}
