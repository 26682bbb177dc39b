// Package config loads tdexplorer settings from tdexplorer.yaml, the
// environment (TDEXPLORER_*) and defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conduit-lang/tdexplorer/internal/entity"
	"github.com/conduit-lang/tdexplorer/internal/explorer/classlink"
)

// EnvPrefix prefixes every environment override, e.g. TDEXPLORER_STORE_DRIVER.
const EnvPrefix = "TDEXPLORER"

// DriverMemory keeps entities in memory, seeded from the catalogue.
const DriverMemory = "memory"

// Config represents the tdexplorer configuration.
type Config struct {
	Catalogue string       `mapstructure:"catalogue"`
	Store     StoreConfig  `mapstructure:"store"`
	Server    ServerConfig `mapstructure:"server"`
	Links     LinksConfig  `mapstructure:"links"`
	Log       LogConfig    `mapstructure:"log"`
}

// StoreConfig selects the entity store.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Table  string `mapstructure:"table"`
}

// ServerConfig represents the web server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LinksConfig holds the class link templates.
type LinksConfig struct {
	FileTemplate    string `mapstructure:"file_template"`
	PackageTemplate string `mapstructure:"package_template"`
}

// LogConfig represents the logger configuration.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads the configuration. An empty path searches for tdexplorer.yaml
// in the current directory and falls back to defaults when none exists; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tdexplorer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalogue", "catalogue.yaml")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.table", entity.DefaultTable)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8088)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("links.file_template", classlink.DefaultFileTemplate)
	v.SetDefault("links.package_template", classlink.DefaultPackageTemplate)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Catalogue == "" {
		errs = append(errs, errors.New("catalogue must not be empty"))
	}
	switch c.Store.Driver {
	case DriverMemory:
	case entity.DriverSQLite, entity.DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, fmt.Errorf("store.dsn is required for driver %q", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver must be one of %s, %s, %s, got: %q",
			DriverMemory, entity.DriverSQLite, entity.DriverPostgres, c.Store.Driver))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got: %d", c.Server.Port))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must not be negative, got: %s", c.Server.ShutdownTimeout))
	}
	errs = append(errs,
		requirePlaceholders("links.file_template", c.Links.FileTemplate, "{file}"),
		requirePlaceholders("links.package_template", c.Links.PackageTemplate, "{package}", "{name}"),
	)
	return errors.Join(errs...)
}

// LinkGenerator returns the class link generator for the configured templates.
func (c *Config) LinkGenerator() classlink.LinkGenerator {
	return classlink.LinkGenerator{FileTemplate: c.Links.FileTemplate, PackageTemplate: c.Links.PackageTemplate}
}

func requirePlaceholders(key, template string, placeholders ...string) error {
	var missing []string
	for _, p := range placeholders {
		if !strings.Contains(template, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s must contain %s, got: %q", key, strings.Join(missing, " and "), template)
	}
	return nil
}
