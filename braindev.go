package braindev

import (
	config "github.com/inference-gateway/brain-dev/config"
	version "github.com/inference-gateway/brain-dev/internal/version"
)

// DevBrainConfig is the Dev Brain configuration
type DevBrainConfig = config.Config

// Version is the installed version of this module, resolved once at
// initialization. It is "0.0.0" when no build metadata records it.
var Version = version.Resolve(version.DefaultRegistry(), version.ModulePath)

// DefaultConfig returns the default configuration
func DefaultConfig() *DevBrainConfig {
	return config.DefaultConfig()
}
