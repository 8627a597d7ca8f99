package domain

import "time"

// Config is the full application configuration.
type Config struct {
	Environment string        `mapstructure:"environment"`
	Server      ServerConfig  `mapstructure:"server"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Sources     SourcesConfig `mapstructure:"sources"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CacheConfig selects the cache backend and the per-domain TTLs. Real-time
// data (ER wait times) expires quickly; slow-moving data (trials, insurance
// plans) lives for a day.
type CacheConfig struct {
	Backend       string        `mapstructure:"backend"` // memory or redis
	RedisURL      string        `mapstructure:"redis_url"`
	MaxEntries    int           `mapstructure:"max_entries"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	DefaultTTL    time.Duration `mapstructure:"default_ttl"`
	EmergencyTTL  time.Duration `mapstructure:"emergency_ttl"`
	DrugPriceTTL  time.Duration `mapstructure:"drug_price_ttl"`
	TrialsTTL     time.Duration `mapstructure:"trials_ttl"`
	InsuranceTTL  time.Duration `mapstructure:"insurance_ttl"`
}

// SourceConfig holds the client settings for one upstream data source.
type SourceConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit int           `mapstructure:"rate_limit"` // requests per second
}

// SourcesConfig holds client settings for every upstream collaborator.
type SourcesConfig struct {
	NPIRegistry   SourceConfig `mapstructure:"npi_registry"`
	GooglePlaces  SourceConfig `mapstructure:"google_places"`
	QualityData   SourceConfig `mapstructure:"quality_data"`
	CMS           SourceConfig `mapstructure:"cms"`
	FairHealth    SourceConfig `mapstructure:"fair_health"`
	GoodRx        SourceConfig `mapstructure:"goodrx"`
	RxSaver       SourceConfig `mapstructure:"rxsaver"`
	BlinkHealth   SourceConfig `mapstructure:"blink_health"`
	FDA           SourceConfig `mapstructure:"fda"`
	Telemedicine  SourceConfig `mapstructure:"telemedicine"`
	EmergencyFeed SourceConfig `mapstructure:"emergency_feed"`
	Trials        SourceConfig `mapstructure:"trials"`
	Tourism       SourceConfig `mapstructure:"tourism"`
	Travel        SourceConfig `mapstructure:"travel"`
	HealthcareGov SourceConfig `mapstructure:"healthcare_gov"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}
