package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"logpane/internal/app/errors"
)

// MinLevels lists the accepted viewer.level values from least to most severe
var MinLevels = []string{"trace", "debug", "info", "warn", "error"}

// Config represents the application configuration
type Config struct {
	Logging struct {
		Level  string `yaml:"level" mapstructure:"level"`
		Format string `yaml:"format" mapstructure:"format"`
		File   string `yaml:"file,omitempty" mapstructure:"file"`
	} `yaml:"logging" mapstructure:"logging"`
	Viewer struct {
		PageSize   int    `yaml:"pageSize" mapstructure:"pagesize"`
		Level      string `yaml:"level" mapstructure:"level"`
		TimeFormat string `yaml:"timeFormat" mapstructure:"timeformat"`
	} `yaml:"viewer" mapstructure:"viewer"`
	Client struct {
		URL     string        `yaml:"url" mapstructure:"url"`
		Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	} `yaml:"client" mapstructure:"client"`
	Server struct {
		Addr         string        `yaml:"addr" mapstructure:"addr"`
		Driver       string        `yaml:"driver" mapstructure:"driver"`
		DSN          string        `yaml:"dsn" mapstructure:"dsn"`
		QueryTimeout time.Duration `yaml:"queryTimeout" mapstructure:"querytimeout"`
		SentryDSN    string        `yaml:"sentryDSN,omitempty" mapstructure:"sentrydsn"`
	} `yaml:"server" mapstructure:"server"`
	Report struct {
		Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
	} `yaml:"report" mapstructure:"report"`
	Version int `yaml:"version" mapstructure:"version"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	cfg.Viewer.PageSize = DefaultPageSize
	cfg.Viewer.Level = DefaultMinLevel
	cfg.Viewer.TimeFormat = DefaultTimeFormat

	cfg.Client.URL = DefaultClientURL
	cfg.Client.Timeout = DefaultClientTimeout

	cfg.Server.Addr = DefaultServerAddr
	cfg.Server.Driver = DefaultDriver
	cfg.Server.DSN = DefaultDSN
	cfg.Server.QueryTimeout = DefaultQueryTimeout

	cfg.Report.Debounce = DefaultReportDebounce

	return cfg
}

// Load loads the configuration from logpane.yaml, .env and LOGPANE_* environment variables
func Load() (*Config, error) {
	return LoadFrom(ConfigFile, EnvFile)
}

// LoadFrom loads the configuration from the given config and env file paths
func LoadFrom(path, envPath string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.ErrFailedToParseConfig
		}
	case !os.IsNotExist(err):
		return nil, errors.ErrFailedToReadConfig
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// bindDefaults registers every key with viper so environment overrides apply without a config file
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("viewer.pagesize", cfg.Viewer.PageSize)
	v.SetDefault("viewer.level", cfg.Viewer.Level)
	v.SetDefault("viewer.timeformat", cfg.Viewer.TimeFormat)
	v.SetDefault("client.url", cfg.Client.URL)
	v.SetDefault("client.timeout", cfg.Client.Timeout)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.driver", cfg.Server.Driver)
	v.SetDefault("server.dsn", cfg.Server.DSN)
	v.SetDefault("server.querytimeout", cfg.Server.QueryTimeout)
	v.SetDefault("server.sentrydsn", cfg.Server.SentryDSN)
	v.SetDefault("report.debounce", cfg.Report.Debounce)
	v.SetDefault("version", cfg.Version)
}

// Template renders the default configuration as YAML for `logpane init`
func Template() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(DefaultConfig()); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteTemplate writes the default configuration to path, refusing to overwrite
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.ErrConfigExists
	}

	data, err := Template()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateViewer(); err != nil {
		return err
	}

	if err := c.validateClient(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if c.Report.Debounce < 0 {
		return errors.ErrInvalidDebounce
	}

	return nil
}

// validateViewer validates viewer settings
func (c *Config) validateViewer() error {
	if c.Viewer.PageSize <= 0 {
		return errors.ErrInvalidPageSize
	}

	for _, level := range MinLevels {
		if c.Viewer.Level == level {
			return nil
		}
	}

	return fmt.Errorf("%w: '%s' (must be one of %s)", errors.ErrInvalidLevel, c.Viewer.Level, strings.Join(MinLevels, ", "))
}

// validateClient validates log service client settings
func (c *Config) validateClient() error {
	if c.Client.URL == "" {
		return errors.ErrClientURLRequired
	}

	if c.Client.Timeout < 0 {
		return errors.ErrInvalidTimeout
	}

	return nil
}

// validateServer validates log service settings
func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return errors.ErrServerAddrRequired
	}

	switch c.Server.Driver {
	case DriverSQLite, DriverDuckDB:
	default:
		return fmt.Errorf("%w: '%s' (must be 'sqlite' or 'duckdb')", errors.ErrInvalidDriver, c.Server.Driver)
	}

	if c.Server.QueryTimeout < 0 {
		return errors.ErrInvalidTimeout
	}

	return nil
}

// normalize trims and lowercases enumerated values
func (c *Config) normalize() {
	c.Viewer.Level = strings.ToLower(strings.TrimSpace(c.Viewer.Level))
	c.Server.Driver = strings.ToLower(strings.TrimSpace(c.Server.Driver))
	c.Client.URL = strings.TrimRight(strings.TrimSpace(c.Client.URL), "/")

	if c.Viewer.TimeFormat == "" {
		c.Viewer.TimeFormat = DefaultTimeFormat
	}
}
