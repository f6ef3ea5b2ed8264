package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from PAGEGEN_-prefixed environment variables, applies
// defaults, and validates the result. Environment variables take
// precedence over file values.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; env vars and defaults apply.
	}

	v.SetEnvPrefix("PAGEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every configuration key so environment-only
// values are visible to Unmarshal. The generation defaults mirror the
// original plugin's shipped settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.capacity", 1024)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_seconds", 3600)

	v.SetDefault("providers.openai_key", "")
	v.SetDefault("providers.deepseek_key", "")
	v.SetDefault("providers.gemini_key", "")
	v.SetDefault("providers.anthropic_key", "")

	v.SetDefault("generation.provider", "openai")
	v.SetDefault("generation.word_count", 500)
	v.SetDefault("generation.content_type", "post")
	v.SetDefault("generation.post_status", "draft")
}
