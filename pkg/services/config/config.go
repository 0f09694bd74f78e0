package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AirtableConfig struct {
	BaseURL string `mapstructure:"base_url"`
	BaseID  string `mapstructure:"base_id"`
	APIKey  string `mapstructure:"api_key"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Airtable AirtableConfig `mapstructure:"airtable"`
}

// Load reads the YAML app config from the given path. Record-source
// credentials can be supplied (or overridden) through AIRTABLE_API_KEY and
// AIRTABLE_BASE_ID, so a config file without secrets stays committable.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	_ = v.BindEnv("airtable.api_key", "AIRTABLE_API_KEY")
	_ = v.BindEnv("airtable.base_id", "AIRTABLE_BASE_ID")
	_ = v.BindEnv("airtable.base_url", "AIRTABLE_BASE_URL")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Airtable.BaseID == "" {
		return nil, fmt.Errorf("airtable base id is not configured")
	}
	if cfg.Airtable.APIKey == "" {
		return nil, fmt.Errorf("airtable api key is not configured")
	}

	return &cfg, nil
}
