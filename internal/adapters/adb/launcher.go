package adb

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
)

var activityNotFoundMarkers = []string{
	"unable to resolve Intent",
	"Activity not started",
	"Error type 3",
}

// Launcher starts activities with am start. Extras are passed as base64 string
// extras. adb has no way to hand an activity result back, so
// StartActivityForResult only dispatches.
type Launcher struct {
	runner Runner
	logger *slog.Logger
}

func NewLauncher(runner Runner, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{runner: runner, logger: logger}
}

func (l *Launcher) StartActivity(ctx context.Context, intent domain.Intent) error {
	return l.start(ctx, intent)
}

func (l *Launcher) StartActivityForResult(ctx context.Context, intent domain.Intent, requestCode int) error {
	l.logger.DebugContext(ctx, "adb does not deliver activity results",
		"action", intent.Action,
		"request_code", requestCode,
	)
	return l.start(ctx, intent)
}

func (l *Launcher) start(ctx context.Context, intent domain.Intent) error {
	out, err := l.runner.Run(ctx, amStartArgs(intent)...)
	if notFound(string(out)) {
		return domain.NewActivityNotFoundError(intent.Action, err)
	}
	if err != nil {
		return fmt.Errorf("runner.Run: %w", err)
	}
	if line, ok := errorLine(string(out)); ok {
		return fmt.Errorf("am start: %s", line)
	}
	return nil
}

func amStartArgs(intent domain.Intent) []string {
	args := []string{"shell", "am", "start"}
	if intent.Action != "" {
		args = append(args, "-a", intent.Action)
	}
	if intent.Data != "" {
		args = append(args, "-d", shellQuote(intent.Data))
	}
	if intent.Flags != 0 {
		args = append(args, "-f", fmt.Sprintf("0x%08x", int(intent.Flags)))
	}
	for _, key := range slices.Sorted(maps.Keys(intent.Extras)) {
		args = append(args, "--es", key, shellQuote(base64.StdEncoding.EncodeToString(intent.Extras[key])))
	}
	return args
}

func notFound(out string) bool {
	for _, marker := range activityNotFoundMarkers {
		if strings.Contains(out, marker) {
			return true
		}
	}
	return false
}

func errorLine(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Error") {
			return line, true
		}
	}
	return "", false
}
