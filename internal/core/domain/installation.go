package domain

// InstallationStatus is the state of the payment application on the device.
type InstallationStatus string

const (
	// InstallationMissing means the payment application is not installed.
	InstallationMissing InstallationStatus = "MISSING"
	// InstallationOutdated means it is installed but does not support this API.
	InstallationOutdated InstallationStatus = "OUTDATED"
	// InstallationAvailable means it is installed and supports this API.
	InstallationAvailable InstallationStatus = "AVAILABLE"
)

func (s InstallationStatus) String() string {
	return string(s)
}

// PackageInfo is what the platform package registry knows about an application.
type PackageInfo struct {
	PackageName string
	VersionCode int
	VersionName string
}
