package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Session providers to query, in order
	// Default: ["system"]
	Providers []string

	// Deadline for one command, including session enumeration
	// Default: 5s
	Timeout time.Duration

	// Log level (debug, info, warn, error)
	// Default: "warn"
	LogLevel string

	// Music Player Daemon connection settings
	MPD MPDConfig

	// MPRIS specific settings
	MPRIS MPRISConfig
}

// MPDConfig holds MPD specific configuration
type MPDConfig struct {
	Network  string
	Address  string
	Password string
}

// MPRISConfig holds MPRIS specific configuration
type MPRISConfig struct {
	// Number of players probed at once
	Concurrency int
}

// Load reads configuration from file and environment. An empty path searches
// the default locations; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Set config name and paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Config file locations (in order of precedence)
		v.AddConfigPath(getConfigDir())
		v.AddConfigPath(".")
	}

	// Set defaults
	v.SetDefault("providers", []string{"system"})
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("log_level", "warn")
	v.SetDefault("mpd.network", "tcp")
	v.SetDefault("mpd.address", "localhost:6600")
	v.SetDefault("mpris.concurrency", 4)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("MEDIACTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		Providers: splitList(v.GetStringSlice("providers")),
		Timeout:   v.GetDuration("timeout"),
		LogLevel:  v.GetString("log_level"),
		MPD: MPDConfig{
			Network:  v.GetString("mpd.network"),
			Address:  v.GetString("mpd.address"),
			Password: v.GetString("mpd.password"),
		},
		MPRIS: MPRISConfig{
			Concurrency: v.GetInt("mpris.concurrency"),
		},
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}

	return cfg, nil
}

// splitList accepts both YAML lists and comma separated environment values
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "mediactl")
}
