package adb

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
)

var (
	versionCodeRe = regexp.MustCompile(`versionCode=(\d+)`)
	versionNameRe = regexp.MustCompile(`versionName=(\S+)`)
)

// Registry reads package information with dumpsys.
type Registry struct {
	runner Runner
}

func NewRegistry(runner Runner) *Registry {
	return &Registry{runner: runner}
}

func (r *Registry) PackageInfo(ctx context.Context, packageName string) (domain.PackageInfo, error) {
	out, err := r.runner.Run(ctx, "shell", "dumpsys", "package", packageName)
	if err != nil {
		return domain.PackageInfo{}, fmt.Errorf("runner.Run: %w", err)
	}
	return parsePackageInfo(packageName, string(out))
}

// parsePackageInfo reads the first "Package [name]" block of dumpsys output.
func parsePackageInfo(packageName, out string) (domain.PackageInfo, error) {
	start := strings.Index(out, "Package ["+packageName+"]")
	if start < 0 {
		return domain.PackageInfo{}, domain.NewPackageNotFoundError(packageName)
	}
	block := out[start:]

	m := versionCodeRe.FindStringSubmatch(block)
	if m == nil {
		return domain.PackageInfo{}, fmt.Errorf("dumpsys package %s: no versionCode", packageName)
	}
	versionCode, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.PackageInfo{}, fmt.Errorf("strconv.Atoi: %w", err)
	}

	info := domain.PackageInfo{
		PackageName: packageName,
		VersionCode: versionCode,
	}
	if m := versionNameRe.FindStringSubmatch(block); m != nil {
		info.VersionName = m[1]
	}
	return info, nil
}
