package config

import (
	"os"
	"strconv"
	"time"

	"presence-analyzer/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Cache   CacheConfig
	Sync    SyncConfig
	Admin   AdminConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the location of the presence and user files
type DataConfig struct {
	PresenceFile string
	UsersXMLFile string
}

// CacheConfig holds how long parsed files stay servable without reloading
type CacheConfig struct {
	TTL time.Duration
}

// SyncConfig holds the remote source of the users XML file
type SyncConfig struct {
	UsersXMLURL string
	Timeout     time.Duration
}

// AdminConfig holds the metrics/profiling server settings
type AdminConfig struct {
	Port    string
	Enabled bool
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Data:    *loadDataConfig(),
		Cache:   *loadCacheConfig(),
		Sync:    *loadSyncConfig(),
		Admin:   *loadAdminConfig(),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadSync reads the subset of configuration used by the users XML sync
// command, which runs without a presence file
func LoadSync() (*Config, error) {
	config := &Config{
		Data:    *loadDataConfig(),
		Sync:    *loadSyncConfig(),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := config.ValidateSync(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		PresenceFile: getEnvOrDefault("DATA_CSV", ""),
		UsersXMLFile: getEnvOrDefault("USERS_XML_FILE", "runtime/data/users.xml"),
	}
}

func loadCacheConfig() *CacheConfig {
	return &CacheConfig{
		TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SECONDS", 600)) * time.Second,
	}
}

func loadSyncConfig() *SyncConfig {
	return &SyncConfig{
		UsersXMLURL: getEnvOrDefault("USERS_XML_URL", ""),
		Timeout:     time.Duration(getEnvIntOrDefault("SYNC_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func loadAdminConfig() *AdminConfig {
	return &AdminConfig{
		Port:    getEnvOrDefault("ADMIN_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("ADMIN_ENABLED", true),
	}
}

func validateConfig(config *Config) error {
	if config.Data.PresenceFile == "" {
		return errors.ConfigInvalid("DATA_CSV is required")
	}
	if config.Cache.TTL <= 0 {
		return errors.ConfigInvalid("CACHE_TTL_SECONDS must be positive")
	}
	if config.Admin.Enabled && config.Admin.Port == config.Server.Port {
		return errors.ConfigInvalid("ADMIN_PORT must differ from PORT")
	}
	return nil
}

// ValidateSync checks the settings needed by the users XML sync command
func (c *Config) ValidateSync() error {
	if c.Sync.UsersXMLURL == "" {
		return errors.ConfigInvalid("USERS_XML_URL is required")
	}
	if c.Data.UsersXMLFile == "" {
		return errors.ConfigInvalid("USERS_XML_FILE is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
