package version

import (
	"runtime/debug"
	"strings"
)

// ModulePath is the canonical module path looked up in build metadata
const ModulePath = "github.com/inference-gateway/brain-dev"

// Fallback is used whenever no registry knows the package
const Fallback = "0.0.0"

// Values injected with -ldflags -X at build time
var (
	version = ""
	commit  = "dev"
	date    = "unknown"
)

// Source labels where a resolved version came from
const (
	SourceLinker    = "ldflags"
	SourceBuildInfo = "buildinfo"
	SourceStatic    = "static"
	SourceFallback  = "fallback"
)

// Registry looks up an installed package version by name
type Registry interface {
	Lookup(name string) (string, bool)
	Source() string
}

// BuildInfoRegistry reads the module graph embedded by the Go toolchain
type BuildInfoRegistry struct {
	read func() (*debug.BuildInfo, bool)
}

// NewBuildInfoRegistry creates a registry backed by runtime/debug.ReadBuildInfo
func NewBuildInfoRegistry() *BuildInfoRegistry {
	return NewBuildInfoRegistryFrom(debug.ReadBuildInfo)
}

// NewBuildInfoRegistryFrom creates a registry that reads build info from read
func NewBuildInfoRegistryFrom(read func() (*debug.BuildInfo, bool)) *BuildInfoRegistry {
	return &BuildInfoRegistry{read: read}
}

// Lookup matches the main module first, then dependencies. Local builds
// report "(devel)" for the main module, which counts as a miss. Module
// versions are returned without the "v" prefix Go records them with, so they
// compare against manifests written as "1.0.0".
func (r *BuildInfoRegistry) Lookup(name string) (string, bool) {
	info, ok := r.read()
	if !ok || info == nil {
		return "", false
	}

	if info.Main.Path == name && usable(info.Main.Version) {
		return trimModulePrefix(info.Main.Version), true
	}

	for _, dep := range info.Deps {
		if dep == nil || dep.Path != name {
			continue
		}
		if dep.Replace != nil && usable(dep.Replace.Version) {
			return trimModulePrefix(dep.Replace.Version), true
		}
		if usable(dep.Version) {
			return trimModulePrefix(dep.Version), true
		}
	}

	return "", false
}

// Source implements Registry
func (r *BuildInfoRegistry) Source() string { return SourceBuildInfo }

// LinkerRegistry serves a value set at link time
type LinkerRegistry struct {
	Name  string
	Value string
}

// NewLinkerRegistry returns a registry holding the -ldflags injected version
func NewLinkerRegistry(name string) *LinkerRegistry {
	return &LinkerRegistry{Name: name, Value: version}
}

// Lookup implements Registry
func (r *LinkerRegistry) Lookup(name string) (string, bool) {
	if name != r.Name || r.Value == "" {
		return "", false
	}
	return r.Value, true
}

// Source implements Registry
func (r *LinkerRegistry) Source() string { return SourceLinker }

// StaticRegistry is a fixed name to version table
type StaticRegistry map[string]string

// Lookup implements Registry
func (r StaticRegistry) Lookup(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Source implements Registry
func (r StaticRegistry) Source() string { return SourceStatic }

// ChainRegistry asks each registry in order and returns the first hit
type ChainRegistry []Registry

// Lookup implements Registry
func (c ChainRegistry) Lookup(name string) (string, bool) {
	v, _, ok := c.lookup(name)
	return v, ok
}

// Source reports the first registry in the chain
func (c ChainRegistry) Source() string {
	if len(c) == 0 {
		return SourceFallback
	}
	return c[0].Source()
}

func (c ChainRegistry) lookup(name string) (string, string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if v, ok := r.Lookup(name); ok {
			return v, r.Source(), true
		}
	}
	return "", "", false
}

// Resolve returns the version registered for name, or Fallback
func Resolve(reg Registry, name string) string {
	v, _ := ResolveWithSource(reg, name)
	return v
}

// ResolveWithSource is Resolve plus the label of the registry that answered
func ResolveWithSource(reg Registry, name string) (string, string) {
	if reg == nil {
		return Fallback, SourceFallback
	}

	if chain, ok := reg.(ChainRegistry); ok {
		if v, src, ok := chain.lookup(name); ok {
			return v, src
		}
		return Fallback, SourceFallback
	}

	if v, ok := reg.Lookup(name); ok {
		return v, reg.Source()
	}
	return Fallback, SourceFallback
}

// DefaultRegistry prefers the linker value over embedded build info
func DefaultRegistry() ChainRegistry {
	return DefaultRegistryFor(ModulePath)
}

// DefaultRegistryFor is DefaultRegistry with the linker value attributed to
// name. An empty name means ModulePath.
func DefaultRegistryFor(name string) ChainRegistry {
	if name == "" {
		name = ModulePath
	}
	return ChainRegistry{
		NewLinkerRegistry(name),
		NewBuildInfoRegistry(),
	}
}

// Commit returns the VCS revision injected at build time
func Commit() string { return commit }

// Date returns the build timestamp injected at build time
func Date() string { return date }

func usable(v string) bool {
	return v != "" && v != "(devel)"
}

// trimModulePrefix turns a module version such as "v1.2.3" into "1.2.3"
func trimModulePrefix(v string) string {
	if len(v) > 1 && v[0] == 'v' && v[1] >= '0' && v[1] <= '9' {
		return strings.TrimPrefix(v, "v")
	}
	return v
}
