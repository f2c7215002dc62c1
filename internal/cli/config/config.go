package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"mergington/internal/client/api"
)

const (
	// DefaultServerURL points at a locally running portal API.
	DefaultServerURL = "http://localhost:8000"

	// DefaultTimeout bounds each request issued by the CLI.
	DefaultTimeout = 10 * time.Second
)

// Config holds the CLI settings resolved from flags, environment, and the
// config file, in that precedence order.
type Config struct {
	ServerURL string
	Timeout   time.Duration
	Verbose   bool
}

// Load wires viper to the portal config file and environment. Called once
// before any command runs. A missing config file is not an error.
func Load() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "mergington"))
	}
	viper.SetEnvPrefix("MERGINGTON")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", DefaultServerURL)
	viper.SetDefault("timeout", DefaultTimeout)

	// The config file is optional
	_ = viper.ReadInConfig()
}

// Get resolves the current configuration from viper.
func Get() (*Config, error) {
	cfg := &Config{
		ServerURL: viper.GetString("server_url"),
		Verbose:   viper.GetBool("verbose"),
		Timeout:   DefaultTimeout,
	}

	switch v := viper.Get("timeout").(type) {
	case time.Duration:
		cfg.Timeout = v
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, err
		}
		cfg.Timeout = d
	case int:
		cfg.Timeout = time.Duration(v) * time.Second
	}

	return cfg, nil
}

// Client builds an API client for the configured server.
func (c *Config) Client() *api.Client {
	client := api.NewClient(c.ServerURL)
	client.HTTPClient.Timeout = c.Timeout
	return client
}
