// Package config loads svccat settings from ~/.svccat/config.yaml, a .env file
// and SVCCAT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/svccat/internal/debounce"
	"github.com/rshade/svccat/internal/logging"
	"github.com/rshade/svccat/internal/pagination"
)

// Defaults applied by New.
const (
	DefaultEndpoint      = "http://localhost:8080/api/services"
	DefaultTimeout       = 10 * time.Second
	DefaultOutputFormat  = "table"
	DefaultLogLevel      = "info"
	configFileName       = "config.yaml"
	configDirName        = ".svccat"
	homeEnvVar           = "SVCCAT_HOME"
	configFilePermission = 0o600
	configDirPermission  = 0o700
)

// OutputFormats lists the accepted values of output.default_format.
//
//nolint:gochecknoglobals // read-only lookup table
var OutputFormats = []string{"table", "json", "yaml"}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrConfigExists is returned by Save when the file exists and overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// Config is the complete svccat configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog" envPrefix:"CATALOG_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Output  OutputConfig  `yaml:"output"  envPrefix:"OUTPUT_"`
}

// CatalogConfig configures the catalog client and the pagination controller.
type CatalogConfig struct {
	Endpoint string        `yaml:"endpoint"  env:"ENDPOINT"`
	PageSize int           `yaml:"page_size" env:"PAGE_SIZE"`
	Debounce time.Duration `yaml:"debounce"  env:"DEBOUNCE"`
	Timeout  time.Duration `yaml:"timeout"   env:"TIMEOUT"`
}

// OutputConfig configures non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" env:"DEFAULT_FORMAT"`
}

// New returns a configuration holding the defaults.
func New() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Endpoint: DefaultEndpoint,
			PageSize: pagination.DefaultPageSize,
			Debounce: debounce.DefaultDelay,
			Timeout:  DefaultTimeout,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: logging.FormatConsole,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
	}
}

// GetConfigDir returns the svccat configuration directory, $SVCCAT_HOME or ~/.svccat.
func GetConfigDir() (string, error) {
	if home := os.Getenv(homeEnvVar); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// DefaultPath returns the path of the default config file.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load builds the effective configuration: defaults, then the YAML file at path
// (the default path when empty; a missing default file is not an error), then
// .env, then SVCCAT_* variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := ShallowMergeYAML(cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if err := validateEndpoint(c.Catalog.Endpoint); err != nil {
		errs = append(errs, err)
	}
	if c.Catalog.PageSize < pagination.MinPageSize || c.Catalog.PageSize > pagination.MaxPageSize {
		errs = append(errs, fmt.Errorf("catalog.page_size must be between %d and %d, got %d",
			pagination.MinPageSize, pagination.MaxPageSize, c.Catalog.PageSize))
	}
	if c.Catalog.Debounce < 0 {
		errs = append(errs, fmt.Errorf("catalog.debounce must not be negative, got %s", c.Catalog.Debounce))
	}
	if c.Catalog.Timeout < 0 {
		errs = append(errs, fmt.Errorf("catalog.timeout must not be negative, got %s", c.Catalog.Timeout))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(OutputFormats, c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("output.default_format must be one of %v, got %q",
			OutputFormats, c.Output.DefaultFormat))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("catalog.endpoint: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("catalog.endpoint must be an absolute URL, got %q", endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("catalog.endpoint scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}

// Save writes the configuration to path as YAML, creating parent directories.
// An existing file is replaced only when overwrite is true.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirPermission); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePermission); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
