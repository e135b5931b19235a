package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config.yaml in the working directory. Environment variables use the
// STOREFRONT_ prefix with underscores separating nested keys (for example
// STOREFRONT_AUTH_JWT_SECRET) and take precedence over file values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only honors environment variables for keys it already knows
	// about, so every key is bound explicitly. Without this, env-only keys
	// that have no default (secrets, connection strings) would be invisible
	// to Unmarshal.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes", "auth.refresh_token_lifetime_minutes",
		"mail.host", "mail.port", "mail.username", "mail.password",
		"mail.from_address", "mail.send_timeout_seconds",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	// The config file is optional; environment variables alone are a
	// complete configuration source.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers default values for settings that have a sensible
// out-of-the-box choice. Secrets and connection strings have no defaults
// and must be provided explicitly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.send_timeout_seconds", 10)
}

// validate runs struct validation over the loaded configuration and adds
// the cross-field checks the tag language cannot express.
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			first := validationErrors[0]
			return fmt.Errorf("invalid configuration: field %q failed on the %q rule",
				first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Auth.RefreshTokenLifetimeMinutes <= cfg.Auth.TokenLifetimeMinutes {
		return fmt.Errorf(
			"invalid configuration: refresh token lifetime (%d min) must exceed access token lifetime (%d min)",
			cfg.Auth.RefreshTokenLifetimeMinutes, cfg.Auth.TokenLifetimeMinutes)
	}

	return nil
}
