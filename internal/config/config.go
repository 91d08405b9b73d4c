package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Property store backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendFile     = "file"
)

// ShroudServer holds all configuration for the shroud zone service.
type ShroudServer struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Property store
	Store StoreConfig `yaml:"store"`

	// Property key holding the zone list
	PropertyKey string `yaml:"property_key"`

	// Reload
	RefreshSchedule string        `yaml:"refresh_schedule"` // cron spec for database backends
	WatchDebounce   time.Duration `yaml:"watch_debounce"`   // file backend (default: 200ms)

	// Metrics endpoint, empty disables it
	MetricsAddress string `yaml:"metrics_address"`
}

// StoreConfig selects and configures the property store.
type StoreConfig struct {
	Backend    string         `yaml:"backend"`
	Database   DatabaseConfig `yaml:"database"`
	SQLitePath string         `yaml:"sqlite_path"`
	FilePath   string         `yaml:"file_path"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultShroudServer returns ShroudServer config with sensible defaults.
func DefaultShroudServer() ShroudServer {
	return ShroudServer{
		LogLevel:        "info",
		PropertyKey:     "shroud_zones",
		RefreshSchedule: "@every 30s",
		WatchDebounce:   200 * time.Millisecond,
		MetricsAddress:  ":9108",
		Store: StoreConfig{
			Backend:    BackendPostgres,
			SQLitePath: "data/properties.db",
			FilePath:   "config/properties.yaml",
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "ace",
				Password: "ace",
				DBName:   "ace_world",
				SSLMode:  "disable",
			},
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c ShroudServer) Validate() error {
	switch c.Store.Backend {
	case BackendPostgres:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for backend %q", c.Store.Backend)
		}
	case BackendFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("store.file_path is required for backend %q", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.PropertyKey == "" {
		return fmt.Errorf("property_key must not be empty")
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative")
	}
	return nil
}

// LoadShroudServer loads service config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadShroudServer(path string) (ShroudServer, error) {
	cfg := DefaultShroudServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
