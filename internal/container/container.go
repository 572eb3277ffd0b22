package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"presence-analyzer/adapters/excel"
	"presence-analyzer/adapters/remote"
	"presence-analyzer/adapters/usersxml"
	"presence-analyzer/app"
	"presence-analyzer/domain/presence"
	"presence-analyzer/internal"
	"presence-analyzer/internal/cache"
	"presence-analyzer/internal/config"
	"presence-analyzer/ports"
	"presence-analyzer/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Observability
	Registry     *prometheus.Registry
	CacheMetrics *cache.Metrics
	HTTPMetrics  *ui.HTTPMetrics

	// Data sources
	PresenceReader ports.PresenceReader
	UserReader     ports.UserReader
	UserSync       ports.UserSync

	// Caches and services
	PresenceTables *cache.Cache[string, presence.Table]
	Users          *cache.Cache[string, []presence.User]
	Service        *app.PresenceService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	c.initDataSources()
	c.initServices()

	logger.Info("Container initialized: presence file %s, users file %s, cache TTL %s",
		cfg.Data.PresenceFile, cfg.Data.UsersXMLFile, cfg.Cache.TTL)
	return c, nil
}

// initMetrics creates a private registry so tests can build several containers
func (c *Container) initMetrics() error {
	c.Registry = prometheus.NewRegistry()
	if err := c.Registry.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	if err := c.Registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return err
	}

	c.CacheMetrics = cache.NewMetrics()
	if err := c.CacheMetrics.Register(c.Registry); err != nil {
		return err
	}

	c.HTTPMetrics = ui.NewHTTPMetrics()
	return c.HTTPMetrics.Register(c.Registry)
}

// initDataSources wires the file readers and the remote users sync
func (c *Container) initDataSources() {
	c.PresenceReader = excel.NewDataReader(c.Config.Data.PresenceFile, excel.DefaultReaderConfig(), c.Logger)
	c.UserReader = usersxml.NewReader(c.Config.Data.UsersXMLFile, c.Logger)
	if c.Config.Sync.UsersXMLURL != "" {
		c.UserSync = remote.NewUsersFetcher(c.Config.Sync.UsersXMLURL, c.Config.Data.UsersXMLFile, c.Config.Sync.Timeout, c.Logger)
	}
}

// initServices creates the caches and the presence service
func (c *Container) initServices() {
	opts := []cache.Option{cache.WithMetrics(c.CacheMetrics), cache.WithLogger(c.Logger)}
	c.PresenceTables = cache.New[string, presence.Table]("presence", opts...)
	c.Users = cache.New[string, []presence.User]("users", opts...)
	c.Service = app.NewPresenceService(c.PresenceReader, c.UserReader, c.PresenceTables, c.Users, c.Config.Cache.TTL, c.Logger)
}

// WebServer builds the dashboard server
func (c *Container) WebServer() (*ui.Server, error) {
	return ui.NewServer(c.Service, c.HTTPMetrics, c.Logger)
}

// AdminHandler builds the admin router
func (c *Container) AdminHandler() http.Handler {
	return ui.NewAdminRouter(c.Service, c.Registry, c.Logger)
}

// SyncUsers refreshes the users XML file and drops the cached copy
func (c *Container) SyncUsers(ctx context.Context) error {
	if c.UserSync == nil {
		return fmt.Errorf("users XML sync is not configured")
	}
	if err := c.UserSync.Sync(ctx); err != nil {
		return err
	}
	c.Users.Reset(app.UsersXMLKey)
	return nil
}
