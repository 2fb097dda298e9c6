package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// EnvAPIBaseURL overrides api.base_url; error messages reference it so users
// know what to fix when the backend is unreachable.
const (
	EnvAPIBaseURL    = "HOSTDECK_API_URL"
	EnvAPIPathPrefix = "HOSTDECK_API_PREFIX"
	EnvLogLevel      = "HOSTDECK_LOG_LEVEL"
	EnvJWTSecret     = "HOSTDECK_JWT_SECRET"
)

type Config struct {
	API struct {
		BaseURL    string        `yaml:"base_url"`
		PathPrefix string        `yaml:"path_prefix"`
		Timeout    time.Duration `yaml:"timeout"`
		Mock       bool          `yaml:"mock"`
	} `yaml:"api"`

	Auth struct {
		// AllowOpaqueTokens restores the demo-mode leniency: tokens that do
		// not parse as JWTs are treated as never expiring. Off by default;
		// unparsable tokens then count as expired.
		AllowOpaqueTokens bool `yaml:"allow_opaque_tokens"`
	} `yaml:"auth"`

	Storage struct {
		Dir      string `yaml:"dir"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"storage"`

	Preferences struct {
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"preferences"`

	Server struct {
		Address         string        `yaml:"address"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		JWTSecret       string        `yaml:"jwt_secret"`
		TokenTTL        time.Duration `yaml:"token_ttl"`
		Seed            bool          `yaml:"seed"`
		MetricsInterval time.Duration `yaml:"metrics_interval"`
		AlertInterval   time.Duration `yaml:"alert_interval"`
	} `yaml:"server"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
	} `yaml:"monitoring"`

	Tracing struct {
		Enabled    bool    `yaml:"enabled"`
		JaegerURL  string  `yaml:"jaeger_url"`
		SampleRate float64 `yaml:"sample_rate"`
	} `yaml:"tracing"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	RateLimiting struct {
		Enabled           bool    `yaml:"enabled"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limiting"`
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0")
	}

	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be > 0")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be > 0")
	}
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret must not be empty")
	}
	if c.Server.TokenTTL <= 0 {
		return fmt.Errorf("server.token_ttl must be > 0")
	}

	if c.Logging.Level == "" {
		return fmt.Errorf("logging.level must not be empty")
	}

	if c.Preferences.PollInterval <= 0 {
		return fmt.Errorf("preferences.poll_interval must be > 0")
	}

	if c.Redis.Enabled {
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address must not be empty when redis.enabled=true")
		}
		if c.Redis.PoolSize <= 0 {
			return fmt.Errorf("redis.pool_size must be > 0 when redis.enabled=true")
		}
	}

	if c.RateLimiting.Enabled {
		if c.RateLimiting.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limiting.requests_per_second must be > 0 when rate limiting is enabled")
		}
		if c.RateLimiting.Burst <= 0 {
			return fmt.Errorf("rate_limiting.burst must be > 0 when rate limiting is enabled")
		}
	}

	return nil
}

// Load reads configuration from YAML file, applies defaults and env overrides.
func Load(configPath string) (*Config, error) {
	// If file does not exist, fall back to defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns configuration with sane defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = "http://localhost:8080"
	cfg.API.PathPrefix = "/api"
	cfg.API.Timeout = 30 * time.Second
	cfg.API.Mock = false

	cfg.Auth.AllowOpaqueTokens = false

	cfg.Storage.Dir = "" // resolved under the user config dir when empty
	cfg.Storage.Disabled = false

	cfg.Preferences.PollInterval = 5 * time.Second

	cfg.Server.Address = ":8080"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.ShutdownTimeout = 30 * time.Second
	// Demo-only secret, mirrors the fixed key the original backend shipped with
	cfg.Server.JWTSecret = "VGhpc0lzQVNlY3VyZUFwcEpXVERlbW9TZWNyZXRLZXlBVDMyQnl0ZXM="
	cfg.Server.TokenTTL = 7 * 24 * time.Hour
	cfg.Server.Seed = true
	cfg.Server.MetricsInterval = 5 * time.Second
	cfg.Server.AlertInterval = 15 * time.Second

	cfg.Monitoring.PrometheusEnabled = true

	cfg.Tracing.Enabled = false
	cfg.Tracing.JaegerURL = "http://localhost:14268/api/traces"
	cfg.Tracing.SampleRate = 1.0

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	cfg.Redis.Enabled = false
	cfg.Redis.Address = "localhost:6379"
	cfg.Redis.DB = 0
	cfg.Redis.PoolSize = 10

	cfg.RateLimiting.Enabled = false
	cfg.RateLimiting.RequestsPerSecond = 50
	cfg.RateLimiting.Burst = 100

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv(EnvAPIBaseURL); url != "" {
		c.API.BaseURL = url
	}
	if prefix := os.Getenv(EnvAPIPathPrefix); prefix != "" {
		c.API.PathPrefix = prefix
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if secret := os.Getenv(EnvJWTSecret); secret != "" {
		c.Server.JWTSecret = secret
	}
}
