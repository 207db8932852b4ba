package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one. The JWT secret and
	// database URL deliberately have no default.
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars alone can carry the config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PROMANAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env vars for keys that appear in
	// neither defaults nor the config file, so bind the critical ones
	// explicitly.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "PROMANAGE_SERVER_PORT"},
		{"server.log_level", "PROMANAGE_SERVER_LOG_LEVEL"},
		{"database.url", "PROMANAGE_DATABASE_URL"},
		{"auth.jwt_secret", "PROMANAGE_AUTH_JWT_SECRET"},
		{"auth.token_lifetime_minutes", "PROMANAGE_AUTH_TOKEN_LIFETIME_MINUTES"},
		{"auth.bcrypt_cost", "PROMANAGE_AUTH_BCRYPT_COST"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
