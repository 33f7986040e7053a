package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	Tracing     TracingConfig     `yaml:"tracing"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Cache       CacheConfig       `yaml:"cache"`
	Client      ClientConfig      `yaml:"client"`
	KeyMappings KeyMappings       `yaml:"key_mappings"`
	Theme       Theme             `yaml:"theme"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port        int      `yaml:"port"`
	BodyLimitMB int      `yaml:"body_limit_mb"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig points at the data store. An empty URL means the default
// SQLite file under ~/.flowboard.
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	Key          string `yaml:"key"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// LoggingConfig selects the slog handler
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`
}

// TracingConfig selects the OpenTelemetry exporter
type TracingConfig struct {
	Exporter    string `yaml:"exporter"` // none or stdout
	ServiceName string `yaml:"service_name"`
}

// MaintenanceConfig schedules background repairs. Zero disables the job.
type MaintenanceConfig struct {
	RecountInterval time.Duration `yaml:"recount_interval"`
}

// CacheConfig tunes the user lookup cache
type CacheConfig struct {
	UserTTL time.Duration `yaml:"user_ttl"`
}

// ClientConfig is used by the CLI and board to reach the API
type ClientConfig struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Defaults
const (
	DefaultPort            = 5000
	DefaultBodyLimitMB     = 10
	DefaultMaxOpenConns    = 10
	DefaultRecountInterval = 15 * time.Minute
	DefaultUserTTL         = 5 * time.Minute
	DefaultClientTimeout   = 10 * time.Second
)

// DefaultAPIURL is where the CLI looks for the server when nothing is configured
const DefaultAPIURL = "http://localhost:5000"

// Default returns the configuration used when no file or environment is set
func Default() *Config {
	cfg := &Config{Maintenance: MaintenanceConfig{RecountInterval: DefaultRecountInterval}}
	cfg.applyDefaults()
	return cfg
}

// Load reads .env, the YAML config at path and the environment, in that order
// of increasing precedence. An empty path falls back to FLOWBOARD_CONFIG and
// then the user's config directory. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	// set before decoding so an explicit 0 in the file still disables the job
	cfg := &Config{Maintenance: MaintenanceConfig{RecountInterval: DefaultRecountInterval}}

	if path == "" {
		path = os.Getenv("FLOWBOARD_CONFIG")
	}
	if path == "" {
		if p, err := getConfigPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	loadThemeFile(cfg)

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// the file may hold the database key
	return os.WriteFile(path, data, 0o600)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "flowboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "flowboard", "config.yaml"), nil
}

// DataDir returns ~/.flowboard, where the default database and logs live
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".flowboard"), nil
}

// applyEnv overrides file values with the process environment
func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DATABASE_KEY"); v != "" {
		c.Database.Key = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	} else if strings.EqualFold(os.Getenv("ENVIRONMENT"), "production") && c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if v := os.Getenv("FLOWBOARD_API_URL"); v != "" {
		c.Client.APIURL = v
	}
	if v := os.Getenv("OTEL_TRACES_EXPORTER"); v != "" {
		c.Tracing.Exporter = v
	}
	if v := os.Getenv("FLOWBOARD_RECOUNT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FLOWBOARD_RECOUNT_INTERVAL %q: %w", v, err)
		}
		c.Maintenance.RecountInterval = d
	}
	return nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.BodyLimitMB <= 0 {
		c.Server.BodyLimitMB = DefaultBodyLimitMB
	}
	if c.Database.URL == "" {
		if dir, err := DataDir(); err == nil {
			c.Database.URL = "sqlite://" + filepath.Join(dir, "flowboard.db")
		}
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = "none"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "flowboard"
	}
	if c.Maintenance.RecountInterval < 0 {
		c.Maintenance.RecountInterval = 0
	}
	if c.Cache.UserTTL <= 0 {
		c.Cache.UserTTL = DefaultUserTTL
	}
	if c.Client.APIURL == "" {
		c.Client.APIURL = DefaultAPIURL
	}
	c.Client.APIURL = strings.TrimRight(c.Client.APIURL, "/")
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = DefaultClientTimeout
	}
	c.KeyMappings.applyDefaults()
	c.Theme.ApplyDefaults()
}
