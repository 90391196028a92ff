package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	GatewayURL       string `mapstructure:"gateway_url"`
	CapabilitiesFile string `mapstructure:"capabilities_file"`
	SinksFile        string `mapstructure:"sinks_file"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	GatewayTimeoutSeconds int64         `mapstructure:"gateway_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	GatewayTimeout        time.Duration `mapstructure:"-"`

	JournalType            string        `mapstructure:"journal_type"`
	JournalPath            string        `mapstructure:"journal_path"`
	JournalTTLSeconds      int64         `mapstructure:"journal_ttl_seconds"`
	JournalCleanupSeconds  int64         `mapstructure:"journal_cleanup_interval_seconds"`
	JournalTTL             time.Duration `mapstructure:"-"`
	JournalCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "pylon-go")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("gateway_url", "https://pylon-gateway-api.fly.dev")
	v.SetDefault("capabilities_file", "")
	v.SetDefault("sinks_file", "")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("gateway_timeout_seconds", 60)
	v.SetDefault("journal_type", "none")
	v.SetDefault("journal_path", "./data/journal.db")
	v.SetDefault("journal_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("journal_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	if cfg.GatewayTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid gateway_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	cfg.GatewayTimeout = time.Duration(cfg.GatewayTimeoutSeconds) * time.Second

	if cfg.JournalTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid journal_ttl_seconds (must be positive seconds)")
	}
	if cfg.JournalCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid journal_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.JournalTTL = time.Duration(cfg.JournalTTLSeconds) * time.Second
	cfg.JournalCleanupInterval = time.Duration(cfg.JournalCleanupSeconds) * time.Second

	return &cfg, nil
}
