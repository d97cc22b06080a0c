package adb

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/DanielPopoola/squarepay/internal/config"
)

// adb output meaning the command never reached the device
var transientMarkers = []string{
	"device offline",
	"no devices/emulators found",
	"device still authorizing",
	"error: device '",
	"protocol fault",
}

// RetryRunner retries commands that failed before reaching the device.
type RetryRunner struct {
	inner      Runner
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryRunner(inner Runner, cfg config.ADBConfig) *RetryRunner {
	return &RetryRunner{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: max(cfg.MaxRetries, 1),
	}
}

func (r *RetryRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	var (
		out     []byte
		lastErr error
	)

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, lastErr = r.inner.Run(ctx, args...)
		if lastErr == nil || !isTransient(out, lastErr) {
			return out, lastErr
		}

		if attempt < r.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}
	}

	return out, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isTransient(out []byte, err error) bool {
	text := string(out) + " " + err.Error()
	for _, marker := range transientMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// backoff doubles the base delay per attempt and adds up to one base delay of jitter.
func (r *RetryRunner) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.baseDelay <= 0 {
		return base
	}
	return base + rand.N(r.baseDelay)
}
