package container

import (
	config "github.com/inference-gateway/brain-dev/config"
	domain "github.com/inference-gateway/brain-dev/internal/domain"
	handlers "github.com/inference-gateway/brain-dev/internal/handlers"
	services "github.com/inference-gateway/brain-dev/internal/services"
	version "github.com/inference-gateway/brain-dev/internal/version"
	viper "github.com/spf13/viper"
)

// ServiceContainer manages all application dependencies
type ServiceContainer struct {
	// Configuration
	viper         *viper.Viper
	config        *config.Config
	configService *services.ConfigService

	// Domain services
	registry       version.Registry
	versionService domain.VersionService

	// Servers
	mcpServer *handlers.MCPServer
}

// Option customises the container before services are built
type Option func(*ServiceContainer)

// WithViper enables config reloading and persisted edits
func WithViper(v *viper.Viper) Option {
	return func(c *ServiceContainer) {
		c.viper = v
	}
}

// WithRegistry sets where the installed version is looked up. Without it the
// linker value and build info are consulted for manifest.package.
func WithRegistry(r version.Registry) Option {
	return func(c *ServiceContainer) {
		c.registry = r
	}
}

// NewServiceContainer creates a new service container with all dependencies
func NewServiceContainer(cfg *config.Config, opts ...Option) *ServiceContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	container := &ServiceContainer{
		config: cfg,
	}
	for _, opt := range opts {
		opt(container)
	}

	if container.viper != nil {
		container.configService = services.NewConfigService(container.viper, cfg)
	}

	container.initializeDomainServices()
	container.initializeServers()

	return container
}

func (c *ServiceContainer) initializeDomainServices() {
	registry := c.registry
	if registry == nil {
		registry = version.DefaultRegistryFor(c.config.Manifest.Package)
	}
	c.versionService = services.NewVersionService(c.config, registry)
}

func (c *ServiceContainer) initializeServers() {
	c.mcpServer = handlers.NewMCPServer(c.config.Server, c.versionService)
}

// Config returns the configuration the container was built with
func (c *ServiceContainer) Config() *config.Config {
	return c.config
}

// ConfigService returns nil unless the container was built WithViper
func (c *ServiceContainer) ConfigService() *services.ConfigService {
	return c.configService
}

func (c *ServiceContainer) VersionService() domain.VersionService {
	return c.versionService
}

func (c *ServiceContainer) MCPServer() *handlers.MCPServer {
	return c.mcpServer
}
