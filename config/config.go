package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/ratelimit"
	"github.com/s0up4200/sankaku/sankaku"
	"github.com/s0up4200/sankaku/transport"
)

// EnvPrefix is the prefix of environment overrides, e.g. SANKAKU_AUTH_ACCESS_TOKEN
const EnvPrefix = "SANKAKU"

// Load loads the configuration. A missing file in the standard locations is not
// an error; defaults and environment overrides apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sankaku"))
		}

		v.AddConfigPath("/etc/sankaku/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// The default rate applies only when neither rps nor rpm is set
	if cfg.Request.RPS == 0 && cfg.Request.RPM == 0 {
		cfg.Request.RPS = ratelimit.DefaultRPS
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key gets a default so
// that environment overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("auth.login", "")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.access_token", "")

	v.SetDefault("api.url", sankaku.DefaultAPIURL)
	v.SetDefault("api.login_url", sankaku.DefaultLoginURL)

	v.SetDefault("request.rps", 0)
	v.SetDefault("request.rpm", 0)
	v.SetDefault("request.retries", transport.DefaultRetries)
	v.SetDefault("request.limit", paginator.DefaultLimit)
	v.SetDefault("request.lang", paginator.DefaultLang)
	v.SetDefault("request.timeout", 30*time.Second)
	v.SetDefault("request.strict", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}

	switch {
	case cfg.Request.RPS > 0 && cfg.Request.RPM > 0:
		return fmt.Errorf("request.rps and request.rpm cannot both be set")
	case cfg.Request.RPS <= 0 && cfg.Request.RPM <= 0:
		return fmt.Errorf("one of request.rps or request.rpm must be set")
	}

	if cfg.Request.Retries < 0 {
		return fmt.Errorf("request.retries must not be negative")
	}

	if cfg.Request.Limit < 1 || cfg.Request.Limit > paginator.MaxLimit {
		return fmt.Errorf("request.limit must be between 1 and %d", paginator.MaxLimit)
	}

	if cfg.Request.Timeout <= 0 {
		return fmt.Errorf("request.timeout must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
