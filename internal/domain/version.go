package domain

import "context"

// VersionInfo contains the resolved runtime version and build metadata
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// CheckResult is the outcome of comparing the runtime version with the
// version declared in the manifest
type CheckResult struct {
	RuntimeVersion  string `json:"runtime_version"`
	ManifestVersion string `json:"manifest_version"`
	ManifestPath    string `json:"manifest_path"`
	Match           bool   `json:"match"`
	Drift           string `json:"drift"`
}

// VersionService resolves the runtime version and verifies it against the manifest
type VersionService interface {
	Info() VersionInfo
	// Check returns a non-nil result whenever the manifest version was read,
	// together with an error on mismatch
	Check(ctx context.Context, manifestPath string) (*CheckResult, error)
}
