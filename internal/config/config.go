// Package config provides configuration management for the vobject command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the vobject command configuration.
type Config struct {
	LineEnding string   `yaml:"line_ending"` // "crlf" or "lf"
	QR         QRConfig `yaml:"qr"`
}

// QRConfig contains QR code rendering settings.
type QRConfig struct {
	Size  int    `yaml:"size"`  // pixels
	Level string `yaml:"level"` // "low", "medium", "high" or "highest"
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		LineEnding: "crlf",
		QR: QRConfig{
			Size:  256,
			Level: "medium",
		},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".vobject.yaml")
}

// Load loads the configuration from a file. Settings missing from the file
// keep their default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.EOL(); err != nil {
		return err
	}
	switch strings.ToLower(c.QR.Level) {
	case "low", "medium", "high", "highest":
	default:
		return fmt.Errorf("unknown qr.level %q", c.QR.Level)
	}
	if c.QR.Size <= 0 || c.QR.Size > 4096 {
		return fmt.Errorf("qr.size %d out of range", c.QR.Size)
	}
	return nil
}

// EOL returns the line terminator for LineEnding.
func (c *Config) EOL() (string, error) {
	switch strings.ToLower(c.LineEnding) {
	case "", "crlf":
		return "\r\n", nil
	case "lf":
		return "\n", nil
	}
	return "", fmt.Errorf("unknown line_ending %q", c.LineEnding)
}
