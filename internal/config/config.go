package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "SQUAREPAY_"

type Config struct {
	Logger LoggerConfig `koanf:"logger"`
	App    AppConfig    `koanf:"app"`
	ADB    ADBConfig    `koanf:"adb"`
	Device DeviceConfig `koanf:"device"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=text json"`
}

// AppConfig describes the host application requesting payments.
type AppConfig struct {
	Package string `koanf:"package_name" validate:"required"`
}

// PackageName makes AppConfig usable as a domain.ResourceContext.
func (c AppConfig) PackageName() string {
	return c.Package
}

type ADBConfig struct {
	Path       string        `koanf:"path" validate:"required"`
	Serial     string        `koanf:"serial"`
	Timeout    time.Duration `koanf:"timeout" validate:"required"`
	MaxRetries int           `koanf:"max_retries" validate:"min=1"`
	BaseDelay  time.Duration `koanf:"base_delay"`
}

type DeviceConfig struct {
	Kind string `koanf:"kind" validate:"required,oneof=adb memory"`
}

var defaults = map[string]any{
	"logger.level":     "info",
	"logger.format":    "text",
	"app.package_name": "com.squareup.android.examples.twocents",
	"adb.path":         "adb",
	"adb.timeout":      "15s",
	"adb.max_retries":  3,
	"adb.base_delay":   "500ms",
	"device.kind":      "adb",
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
