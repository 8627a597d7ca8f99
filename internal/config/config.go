package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/healthprice-aggregator/internal/domain"
)

// Manager loads and validates application configuration using Viper.
type Manager struct {
	config *domain.Config
}

// NewManager creates a configuration manager and loads configuration from
// file, environment, and defaults.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/healthprice-aggregator/")

	viper.SetEnvPrefix("HEALTHPRICE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Cache defaults
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_url", "redis://localhost:6379")
	viper.SetDefault("cache.max_entries", 4096)
	viper.SetDefault("cache.sweep_interval", "1m")
	viper.SetDefault("cache.default_ttl", "5m")
	viper.SetDefault("cache.emergency_ttl", "2m")
	viper.SetDefault("cache.drug_price_ttl", "1h")
	viper.SetDefault("cache.trials_ttl", "24h")
	viper.SetDefault("cache.insurance_ttl", "24h")

	// Upstream source defaults
	viper.SetDefault("sources.npi_registry.base_url", "https://npiregistry.cms.hhs.gov/api/")
	viper.SetDefault("sources.google_places.base_url", "https://places.googleapis.com/v1/")
	viper.SetDefault("sources.quality_data.base_url", "https://data.cms.gov/provider-data/")
	viper.SetDefault("sources.cms.base_url", "https://data.cms.gov/")
	viper.SetDefault("sources.fair_health.base_url", "https://api.fairhealth.org/")
	viper.SetDefault("sources.goodrx.base_url", "https://api.goodrx.com/")
	viper.SetDefault("sources.rxsaver.base_url", "https://api.rxsaver.com/")
	viper.SetDefault("sources.blink_health.base_url", "https://api.blinkhealth.com/")
	viper.SetDefault("sources.fda.base_url", "https://api.fda.gov/drug/")
	viper.SetDefault("sources.telemedicine.base_url", "https://api.telemedicine-directory.example.com/")
	viper.SetDefault("sources.emergency_feed.base_url", "https://api.hospital-feeds.example.com/")
	viper.SetDefault("sources.trials.base_url", "https://clinicaltrials.gov/api/v2/")
	viper.SetDefault("sources.tourism.base_url", "https://api.medicaltourism.example.com/")
	viper.SetDefault("sources.travel.base_url", "https://partners.api.skyscanner.net/")
	viper.SetDefault("sources.healthcare_gov.base_url", "https://marketplace.api.healthcare.gov/api/v1/")
	for _, name := range []string{
		"npi_registry", "google_places", "quality_data", "cms", "fair_health",
		"goodrx", "rxsaver", "blink_health", "fda", "telemedicine",
		"emergency_feed", "trials", "tourism", "travel", "healthcare_gov",
	} {
		viper.SetDefault("sources."+name+".timeout", "30s")
		viper.SetDefault("sources."+name+".rate_limit", 10)
	}

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetCacheConfig returns cache configuration
func (m *Manager) GetCacheConfig() *domain.CacheConfig {
	return &m.config.Cache
}

// GetSourcesConfig returns upstream source configuration
func (m *Manager) GetSourcesConfig() *domain.SourcesConfig {
	return &m.config.Sources
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Cache.Backend {
	case "memory":
		if config.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", config.Cache.MaxEntries)
		}
	case "redis":
		if config.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", config.Cache.Backend)
	}

	if config.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("cache.default_ttl must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(viper.GetString("environment")) == "production"
}
