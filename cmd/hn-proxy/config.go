package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/sternhagen/hn-api-client/pkg/hn"
)

// Config holds all proxy configuration, loaded from environment variables
// with the HNPROXY_ prefix.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// UpstreamConfig contains the settings for the Hacker News backend.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	UserAgent      string `mapstructure:"user_agent" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=300"`
	MaxConcurrency int    `mapstructure:"max_concurrency" validate:"gte=0"`
	MaxRetries     int    `mapstructure:"max_retries" validate:"gte=1,lte=10"`
}

// loadConfig reads configuration from the environment. Every key has a
// default, so an empty environment yields a working proxy against the
// official API.
func loadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("upstream.base_url", hn.DefaultBaseURL)
	v.SetDefault("upstream.user_agent", "hn-proxy/0.1.0")
	v.SetDefault("upstream.timeout_seconds", 10)
	v.SetDefault("upstream.max_concurrency", 64)
	v.SetDefault("upstream.max_retries", 3)

	v.SetEnvPrefix("HNPROXY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// so every key is bound explicitly.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "HNPROXY_SERVER_PORT"},
		{"server.log_level", "HNPROXY_SERVER_LOG_LEVEL"},
		{"upstream.base_url", "HNPROXY_UPSTREAM_BASE_URL"},
		{"upstream.user_agent", "HNPROXY_UPSTREAM_USER_AGENT"},
		{"upstream.timeout_seconds", "HNPROXY_UPSTREAM_TIMEOUT_SECONDS"},
		{"upstream.max_concurrency", "HNPROXY_UPSTREAM_MAX_CONCURRENCY"},
		{"upstream.max_retries", "HNPROXY_UPSTREAM_MAX_RETRIES"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
