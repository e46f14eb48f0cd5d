package services

import (
	"context"
	"path/filepath"

	config "github.com/inference-gateway/brain-dev/config"
	domain "github.com/inference-gateway/brain-dev/internal/domain"
	logger "github.com/inference-gateway/brain-dev/internal/logger"
	manifest "github.com/inference-gateway/brain-dev/internal/manifest"
	version "github.com/inference-gateway/brain-dev/internal/version"
	zap "go.uber.org/zap"
)

// VersionService implements domain.VersionService
type VersionService struct {
	info     domain.VersionInfo
	manifest config.ManifestConfig
}

// NewVersionService resolves the version of the configured package once.
// An empty package name means this module.
func NewVersionService(cfg *config.Config, registry version.Registry) *VersionService {
	m := config.DefaultConfig().Manifest
	if cfg != nil {
		m = cfg.Manifest
	}
	if m.Package == "" {
		m.Package = version.ModulePath
	}

	v, source := version.ResolveWithSource(registry, m.Package)

	return &VersionService{
		info: domain.VersionInfo{
			Version: v,
			Commit:  version.Commit(),
			Date:    version.Date(),
			Source:  source,
		},
		manifest: m,
	}
}

// Info returns the resolved version information
func (s *VersionService) Info() domain.VersionInfo {
	return s.info
}

// Check compares the runtime version with the manifest. When manifestPath is
// empty the configured path is used, then an upward search for the manifest name.
func (s *VersionService) Check(ctx context.Context, manifestPath string) (*domain.CheckResult, error) {
	log := logger.FromContext(ctx)

	if manifestPath == "" {
		manifestPath = s.manifest.Path
	}

	path, err := manifest.Locate(manifestPath, s.manifest.Name)
	if err != nil {
		log.Warn("Manifest not located", zap.String("name", s.manifest.Name), zap.Error(err))
		return nil, err
	}

	declared, err := manifest.ReadVersion(path)
	if err != nil {
		log.Warn("Manifest version unreadable", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	result := &domain.CheckResult{
		RuntimeVersion:  s.info.Version,
		ManifestVersion: declared,
		ManifestPath:    path,
		Drift:           string(version.Compare(s.info.Version, declared)),
	}

	if err := version.Check(s.info.Version, declared, filepath.Base(path)); err != nil {
		log.Info("Version mismatch",
			zap.String("runtime", s.info.Version),
			zap.String("manifest", declared),
			zap.String("drift", result.Drift),
		)
		return result, err
	}

	result.Match = true
	log.Debug("Version matches manifest", zap.String("version", declared), zap.String("path", path))
	return result, nil
}
