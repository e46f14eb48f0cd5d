package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// DefaultName is the manifest file looked up when none is configured
const DefaultName = "release.toml"

var (
	// ErrVersionNotFound is returned when the manifest has no version line
	ErrVersionNotFound = errors.New("could not find version")
	// ErrManifestNotFound is returned when no ancestor directory holds the manifest
	ErrManifestNotFound = errors.New("manifest not found")
)

var versionLine = regexp.MustCompile(`(?m)^version\s*=\s*"([^"]+)"`)

// ExtractVersion returns the first version = "<value>" found in text
func ExtractVersion(text string) (string, error) {
	match := versionLine.FindStringSubmatch(text)
	if match == nil {
		return "", ErrVersionNotFound
	}
	return match[1], nil
}

// ReadVersion reads the manifest at path and extracts its version
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest: %w", err)
	}

	v, err := ExtractVersion(string(data))
	if err != nil {
		return "", fmt.Errorf("%w in %s", err, filepath.Base(path))
	}
	return v, nil
}

// Find walks from startDir up to the filesystem root looking for a file
// called name and returns its absolute path
func Find(startDir, name string) (string, error) {
	if name == "" {
		name = DefaultName
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s above %s", ErrManifestNotFound, name, startDir)
		}
		dir = parent
	}
}

// Locate returns path when set, otherwise searches upwards from the
// working directory for name
func Locate(path, name string) (string, error) {
	if path != "" {
		return path, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return Find(wd, name)
}
