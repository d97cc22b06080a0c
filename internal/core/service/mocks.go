package service

import (
	"context"
	"sync"

	"github.com/DanielPopoola/squarepay/internal/core/domain"
)

// MockPackageRegistry
type MockPackageRegistry struct {
	mu       sync.RWMutex
	packages map[string]domain.PackageInfo

	PackageInfoFn func(ctx context.Context, packageName string) (domain.PackageInfo, error)
}

func NewMockPackageRegistry() *MockPackageRegistry {
	return &MockPackageRegistry{
		packages: make(map[string]domain.PackageInfo),
	}
}

func (m *MockPackageRegistry) Install(packageName string, versionCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packages[packageName] = domain.PackageInfo{
		PackageName: packageName,
		VersionCode: versionCode,
	}
}

func (m *MockPackageRegistry) PackageInfo(ctx context.Context, packageName string) (domain.PackageInfo, error) {
	if m.PackageInfoFn != nil {
		return m.PackageInfoFn(ctx, packageName)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if info, ok := m.packages[packageName]; ok {
		return info, nil
	}
	return domain.PackageInfo{}, domain.NewPackageNotFoundError(packageName)
}

// LaunchCall is an intent recorded by MockActivityLauncher.
type LaunchCall struct {
	Intent      domain.Intent
	RequestCode int
	ForResult   bool
}

// MockActivityLauncher
type MockActivityLauncher struct {
	mu    sync.Mutex
	calls []LaunchCall

	StartActivityFn          func(ctx context.Context, intent domain.Intent) error
	StartActivityForResultFn func(ctx context.Context, intent domain.Intent, requestCode int) error
}

func (m *MockActivityLauncher) record(call LaunchCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockActivityLauncher) Calls() []LaunchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LaunchCall(nil), m.calls...)
}

func (m *MockActivityLauncher) StartActivity(ctx context.Context, intent domain.Intent) error {
	m.record(LaunchCall{Intent: intent})
	if m.StartActivityFn != nil {
		return m.StartActivityFn(ctx, intent)
	}
	return nil
}

func (m *MockActivityLauncher) StartActivityForResult(ctx context.Context, intent domain.Intent, requestCode int) error {
	m.record(LaunchCall{Intent: intent, RequestCode: requestCode, ForResult: true})
	if m.StartActivityForResultFn != nil {
		return m.StartActivityForResultFn(ctx, intent, requestCode)
	}
	return nil
}
