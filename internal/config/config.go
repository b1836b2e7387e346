package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Reports  ReportsConfig  `mapstructure:"reports"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address for server (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// StorageConfig represents file storage configuration
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"` // Directory for saved numbers and generated reports
}

// ReportsConfig represents report generation configuration
type ReportsConfig struct {
	Workers         int           `mapstructure:"workers"`          // Concurrent report workers
	QueueSize       int           `mapstructure:"queue_size"`       // Pending report queue capacity
	Expiration      time.Duration `mapstructure:"expiration"`       // How long a finished report stays downloadable
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // How often expired reports are removed
}

// AnalysisConfig represents analysis service configuration
type AnalysisConfig struct {
	MaxBatchSeries   int `mapstructure:"max_batch_series"`  // Max series per batch request
	BatchConcurrency int `mapstructure:"batch_concurrency"` // Concurrent series analyzed per batch
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	if err := c.Reports.Validate(); err != nil {
		return fmt.Errorf("reports config: %w", err)
	}

	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// ListenAddress returns the host:port address the HTTP server binds to
func (c *ServerConfig) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// Validate validates storage configuration
func (c *StorageConfig) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	return nil
}

// Validate validates reports configuration
func (c *ReportsConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("reports.workers must be at least 1")
	}

	if c.QueueSize < 1 {
		return fmt.Errorf("reports.queue_size must be at least 1")
	}

	if c.Expiration <= 0 {
		return fmt.Errorf("reports.expiration must be positive")
	}

	if c.CleanupInterval <= 0 {
		return fmt.Errorf("reports.cleanup_interval must be positive")
	}

	return nil
}

// Validate validates analysis configuration
func (c *AnalysisConfig) Validate() error {
	if c.MaxBatchSeries < 1 {
		return fmt.Errorf("analysis.max_batch_series must be at least 1")
	}

	if c.BatchConcurrency < 1 {
		return fmt.Errorf("analysis.batch_concurrency must be at least 1")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
