package version

import (
	"errors"
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

var (
	// ErrVersionMismatch is matched by every *MismatchError
	ErrVersionMismatch = errors.New("version mismatch")
	// ErrEmptyVersion is returned when either side of a comparison is blank
	ErrEmptyVersion = errors.New("version is empty")
)

// Drift describes how two versions relate
type Drift string

const (
	DriftEqual         Drift = "equal"
	DriftManifestAhead Drift = "manifest-ahead"
	DriftRuntimeAhead  Drift = "runtime-ahead"
	DriftIncomparable  Drift = "incomparable"
)

// MismatchError reports a runtime version that differs from the manifest
type MismatchError struct {
	Runtime      string
	Manifest     string
	ManifestName string
	Drift        Drift
}

// Error implements the error interface
func (e *MismatchError) Error() string {
	name := e.ManifestName
	if name == "" {
		name = "manifest"
	}
	return fmt.Sprintf(
		"runtime version (%q) != %s (%q). Did you forget to reinstall after bumping the version?",
		e.Runtime, name, e.Manifest,
	)
}

// Is lets errors.Is match ErrVersionMismatch
func (e *MismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}

// Check compares the runtime version with the manifest version by exact
// string equality. manifestName only decorates the error message.
func Check(runtime, manifest, manifestName string) error {
	if runtime == "" {
		return fmt.Errorf("runtime: %w", ErrEmptyVersion)
	}
	if manifest == "" {
		return fmt.Errorf("manifest: %w", ErrEmptyVersion)
	}
	if runtime == manifest {
		return nil
	}
	return &MismatchError{
		Runtime:      runtime,
		Manifest:     manifest,
		ManifestName: manifestName,
		Drift:        Compare(runtime, manifest),
	}
}

// Compare classifies the relation between the runtime and manifest versions.
// A leading "v" is tolerated; anything that is not semver is incomparable.
func Compare(runtime, manifest string) Drift {
	if runtime == manifest {
		return DriftEqual
	}

	rv, err := goversion.NewVersion(runtime)
	if err != nil {
		return DriftIncomparable
	}
	mv, err := goversion.NewVersion(manifest)
	if err != nil {
		return DriftIncomparable
	}

	switch {
	case mv.GreaterThan(rv):
		return DriftManifestAhead
	case rv.GreaterThan(mv):
		return DriftRuntimeAhead
	default:
		return DriftEqual
	}
}

// Valid reports whether v parses as a semantic version
func Valid(v string) bool {
	_, err := goversion.NewSemver(v)
	return err == nil
}
