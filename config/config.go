package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration settings.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	TBA           TBAConfig           `yaml:"tba"`
	Jobs          JobsConfig          `yaml:"jobs"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. A blank URL disables event publishing.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// TBAConfig holds The Blue Alliance API configuration.
type TBAConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// JobsConfig holds background job configuration. StatsRefreshInterval <= 0
// disables the periodic snapshot refresh.
type JobsConfig struct {
	Enabled              bool          `yaml:"enabled"`
	StatsRefreshInterval time.Duration `yaml:"stats_refresh_interval"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Environment variables
// override file values either way.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN not set (config file %q or DATABASE_URL)", filename)
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := os.Getenv("TBA_BASE_URL"); v != "" {
		cfg.TBA.BaseURL = v
	}
	if v := os.Getenv("TBA_API_KEY"); v != "" {
		cfg.TBA.APIKey = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("JOBS_ENABLED"); v != "" {
		cfg.Jobs.Enabled = v == "true"
	}
	if v := os.Getenv("STATS_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Jobs.StatsRefreshInterval = d
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = "5000"
	}
	if cfg.TBA.BaseURL == "" {
		cfg.TBA.BaseURL = "https://www.thebluealliance.com/api/v3"
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}
