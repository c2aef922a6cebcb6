package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Level = %s, want %s", cfg.Level, LevelInfo)
	}
	if cfg.Pretty {
		t.Error("Pretty should default to false (JSON output)")
	}
	if cfg.Output == nil {
		t.Error("Output should default to a writer")
	}
}

func TestSetup_WritesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: buf,
	})

	logger.Info().Str("endpoint", "topstories").Msg("feed resolved")

	output := buf.String()
	if !strings.Contains(output, `"endpoint":"topstories"`) {
		t.Errorf("Expected structured field in output, got %q", output)
	}
	if !strings.Contains(output, "feed resolved") {
		t.Errorf("Expected message in output, got %q", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel}, // long-form alias
		{LevelError, zerolog.ErrorLevel},
		{"DEBUG", zerolog.DebugLevel}, // case-insensitive
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewLogger_ComponentField(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: buf,
	})

	logger := NewLogger("hn-client")
	logger.Info().Msg("resolving batch")

	output := buf.String()
	if !strings.Contains(output, `"component":"hn-client"`) {
		t.Errorf("Expected component field, got %q", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelWarn,
		Pretty: false,
		Output: buf,
	})

	logger := NewLogger("hn-transport")

	logger.Debug().Msg("retry scheduled")
	logger.Info().Msg("request ok")
	logger.Warn().Msg("retry exhausted")
	logger.Error().Msg("request failed")

	output := buf.String()
	if strings.Contains(output, "retry scheduled") || strings.Contains(output, "request ok") {
		t.Errorf("Levels below warn should be filtered, got %q", output)
	}
	if !strings.Contains(output, "retry exhausted") {
		t.Error("Warn message should be included at Warn level")
	}
	if !strings.Contains(output, "request failed") {
		t.Error("Error message should be included at Warn level")
	}
}
