package main

import (
	"testing"

	"github.com/sternhagen/hn-api-client/pkg/hn"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.Server.LogLevel, "info")
	}
	if cfg.Upstream.BaseURL != hn.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.Upstream.BaseURL, hn.DefaultBaseURL)
	}
	if cfg.Upstream.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.Upstream.TimeoutSeconds)
	}
	if cfg.Upstream.MaxConcurrency != 64 {
		t.Errorf("MaxConcurrency = %d, want 64", cfg.Upstream.MaxConcurrency)
	}
	if cfg.Upstream.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Upstream.MaxRetries)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HNPROXY_SERVER_PORT", "9090")
	t.Setenv("HNPROXY_SERVER_LOG_LEVEL", "debug")
	t.Setenv("HNPROXY_UPSTREAM_BASE_URL", "http://localhost:3000/v0")
	t.Setenv("HNPROXY_UPSTREAM_USER_AGENT", "custom-agent/2.0")
	t.Setenv("HNPROXY_UPSTREAM_MAX_CONCURRENCY", "16")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.Server.LogLevel, "debug")
	}
	if cfg.Upstream.BaseURL != "http://localhost:3000/v0" {
		t.Errorf("BaseURL = %q, unexpected", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.UserAgent != "custom-agent/2.0" {
		t.Errorf("UserAgent = %q, unexpected", cfg.Upstream.UserAgent)
	}
	if cfg.Upstream.MaxConcurrency != 16 {
		t.Errorf("MaxConcurrency = %d, want 16", cfg.Upstream.MaxConcurrency)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"port out of range", "HNPROXY_SERVER_PORT", "70000"},
		{"unknown log level", "HNPROXY_SERVER_LOG_LEVEL", "verbose"},
		{"base URL not a URL", "HNPROXY_UPSTREAM_BASE_URL", "not a url"},
		{"zero retries", "HNPROXY_UPSTREAM_MAX_RETRIES", "0"},
		{"negative concurrency", "HNPROXY_UPSTREAM_MAX_CONCURRENCY", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if _, err := loadConfig(); err == nil {
				t.Errorf("Expected validation error for %s=%s, got nil", tt.envVar, tt.value)
			}
		})
	}
}
