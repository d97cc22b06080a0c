// Package adb implements the platform ports on top of the Android Debug Bridge,
// so a payment request can be sent to a connected device or emulator.
package adb

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/DanielPopoola/squarepay/internal/config"
)

// Runner executes an adb command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

type ExecRunner struct {
	path    string
	serial  string
	timeout time.Duration
}

func NewExecRunner(cfg config.ADBConfig) *ExecRunner {
	return &ExecRunner{
		path:    cfg.Path,
		serial:  cfg.Serial,
		timeout: cfg.Timeout,
	}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	fullArgs := args
	if r.serial != "" {
		fullArgs = append([]string{"-s", r.serial}, args...)
	}

	out, err := exec.CommandContext(ctx, r.path, fullArgs...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", r.path, strings.Join(fullArgs, " "), err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// shellQuote quotes s for the device shell that adb shell hands its arguments to.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
