// Package config defines the application configuration and its loader.
// Values come from an optional config.yaml and environment variables
// with the PAGEGEN_ prefix; environment variables take precedence.
package config

import (
	"time"

	"github.com/phrazzld/pagegen/internal/provider"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// CacheConfig controls the generation response cache.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Backend    string `mapstructure:"backend" validate:"required,oneof=memory redis"`
	Capacity   int    `mapstructure:"capacity" validate:"gte=0"`
	RedisURL   string `mapstructure:"redis_url"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gt=0"`
}

// TTL returns the configured cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ProvidersConfig holds the per-provider API credentials. Keys are
// opaque strings; an empty key means "not configured". They are read
// by the generation core and never written or logged by it.
type ProvidersConfig struct {
	OpenAIKey    string `mapstructure:"openai_key"`
	DeepSeekKey  string `mapstructure:"deepseek_key"`
	GeminiKey    string `mapstructure:"gemini_key"`
	AnthropicKey string `mapstructure:"anthropic_key"`
}

// APIKey returns the credential for the given provider ID, or "" when
// the provider is unknown or not configured.
func (p ProvidersConfig) APIKey(providerID string) string {
	switch providerID {
	case provider.OpenAI:
		return p.OpenAIKey
	case provider.DeepSeek:
		return p.DeepSeekKey
	case provider.Gemini:
		return p.GeminiKey
	case provider.Anthropic:
		return p.AnthropicKey
	default:
		return ""
	}
}

// GenerationConfig contains the generation defaults applied when a
// caller omits a field.
type GenerationConfig struct {
	Provider    string `mapstructure:"provider" validate:"required,oneof=openai deepseek gemini anthropic"`
	WordCount   int    `mapstructure:"word_count" validate:"required,oneof=100 300 500 1000 2000"`
	ContentType string `mapstructure:"content_type" validate:"required,oneof=post page"`
	PostStatus  string `mapstructure:"post_status" validate:"required,oneof=publish draft pending"`
}
