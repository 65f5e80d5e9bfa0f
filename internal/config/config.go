// Package config loads the server configuration from a yaml file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

const (
	DefaultListenAddress  = ":8080"
	DefaultDatabasePath   = "argo-broker.duckdb"
	DefaultCurrencyTicker = "ARS"
)

// Config is the server configuration. CurrencyTicker names the deployment's
// single CURRENCY instrument; every cash leg settles against it.
type Config struct {
	ListenAddress  string `yaml:"listen_address"`
	DatabasePath   string `yaml:"database_path"`
	CurrencyTicker string `yaml:"currency_ticker"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		ListenAddress:  DefaultListenAddress,
		DatabasePath:   DefaultDatabasePath,
		CurrencyTicker: DefaultCurrencyTicker,
	}
}

// Load reads the yaml file at path and fills missing fields with defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddress == "" {
		c.ListenAddress = DefaultListenAddress
	}

	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath
	}

	if c.CurrencyTicker == "" {
		c.CurrencyTicker = DefaultCurrencyTicker
	}
}
