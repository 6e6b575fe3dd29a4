// Package config loads scraper settings from config files and the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	DatabasePath      string
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
}

const envPrefix = "NHL_SCRAPER"

// Load reads configuration with the usual precedence: defaults, then an
// optional config file, then NHL_SCRAPER_* environment variables. An
// empty configFile searches the working directory for nhl-scraper.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database_path", "data/nhl.db")
	v.SetDefault("base_url", "https://api-web.nhle.com/v1")
	v.SetDefault("user_agent", "nhl-scraper/0.1.0 (analytics research project)")
	v.SetDefault("requests_per_second", 1.0)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("nhl-scraper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		DatabasePath:      v.GetString("database_path"),
		BaseURL:           v.GetString("base_url"),
		UserAgent:         v.GetString("user_agent"),
		RequestsPerSecond: v.GetFloat64("requests_per_second"),
	}
	if cfg.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("requests_per_second must be positive, got %v", cfg.RequestsPerSecond)
	}
	return cfg, nil
}
