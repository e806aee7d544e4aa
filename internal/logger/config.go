package logger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled *bool  `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
	FileCompress   bool   `yaml:"file_compress"`

	// Components overrides Level for loggers made by With, keyed by
	// component name ("preview", "content", "skills").
	Components map[string]string `yaml:"components"`

	// ConsoleWriter replaces stdout; tests point it at a buffer.
	ConsoleWriter io.Writer `yaml:"-"`
}

// LoggingConfig wraps the Config for YAML parsing
type LoggingConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns console-only text logging at INFO.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: boolPtr(true),
		ConsoleFormat:  "text",
		FilePath:       "logs/cradle.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// ConsoleOn reports whether console output is enabled. Unset means on.
func (c Config) ConsoleOn() bool {
	return c.ConsoleEnabled == nil || *c.ConsoleEnabled
}

// LoadConfig loads logging configuration from a YAML file and applies
// CRADLE_LOG_* environment overrides. A missing file yields the defaults;
// a file that exists but does not parse is an error.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults
		case err != nil:
			return config, fmt.Errorf("failed to read logging config: %w", err)
		default:
			var lc LoggingConfig
			if err := yaml.Unmarshal(data, &lc); err != nil {
				return config, fmt.Errorf("failed to parse logging config: %w", err)
			}
			config.merge(lc.Logging)
		}
	}

	applyEnv(&config)
	return config, nil
}

func (c *Config) merge(o Config) {
	if o.Level != "" {
		c.Level = o.Level
	}
	if o.ConsoleEnabled != nil {
		c.ConsoleEnabled = o.ConsoleEnabled
	}
	if o.ConsoleFormat != "" {
		c.ConsoleFormat = o.ConsoleFormat
	}
	c.FileEnabled = o.FileEnabled
	if o.FilePath != "" {
		c.FilePath = o.FilePath
	}
	if o.FileFormat != "" {
		c.FileFormat = o.FileFormat
	}
	if o.FileMaxSizeMB > 0 {
		c.FileMaxSizeMB = o.FileMaxSizeMB
	}
	if o.FileMaxBackups > 0 {
		c.FileMaxBackups = o.FileMaxBackups
	}
	if o.FileMaxAgeDays > 0 {
		c.FileMaxAgeDays = o.FileMaxAgeDays
	}
	c.FileCompress = o.FileCompress
	if len(o.Components) > 0 {
		c.Components = o.Components
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv("CRADLE_LOG_LEVEL"); v != "" {
		c.Level = v
	}
	if v := os.Getenv("CRADLE_LOG_CONSOLE_FORMAT"); v != "" {
		c.ConsoleFormat = v
	}
	if v := os.Getenv("CRADLE_LOG_FILE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.FileEnabled = enabled
		}
	}
	if v := os.Getenv("CRADLE_LOG_FILE_PATH"); v != "" {
		c.FilePath = v
	}
}

func boolPtr(b bool) *bool {
	return &b
}
