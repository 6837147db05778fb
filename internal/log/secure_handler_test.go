package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSecureHandlerMasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "cookie header", key: "Cookie", value: "session=abc123"},
		{name: "authorization header", key: "Authorization", value: "Bearer xyz"},
		{name: "api key", key: "x-api-key", value: "k-12345"},
		{name: "password", key: "password", value: "hunter2"},
		{name: "keyword substring", key: "proxy_auth_mode", value: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, false)
			logger.Warn("request prepared", tt.key, tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("sensitive value %q leaked into log output: %s", tt.value, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("expected masked value in log output: %s", out)
			}
		})
	}
}

func TestSecureHandlerMasksSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "jwt", value: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig"},
		{name: "bearer token", value: "Bearer abc.def.ghi"},
		{name: "basic auth", value: "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, false)
			logger.Warn("header echoed", "value", tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("sensitive value leaked into log output: %s", out)
			}
		})
	}
}

func TestSecureHandlerKeepsOrdinaryAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false)
	logger.Warn("crawl finished", "seed", "https://example.com/", "pages_fetched", 12)

	out := buf.String()
	if !strings.Contains(out, "https://example.com/") {
		t.Errorf("expected seed URL in log output: %s", out)
	}
	if !strings.Contains(out, "pages_fetched=12") {
		t.Errorf("expected counter in log output: %s", out)
	}
	if strings.Contains(out, MaskValue) {
		t.Errorf("ordinary attributes were masked: %s", out)
	}
}

func TestSecureHandlerMasksGroupedAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false)
	logger.Warn("client built", slog.Group("headers",
		slog.String("Cookie", "session=abc"),
		slog.String("Accept", "text/html"),
	))

	out := buf.String()
	if strings.Contains(out, "session=abc") {
		t.Errorf("grouped sensitive value leaked: %s", out)
	}
	if !strings.Contains(out, "text/html") {
		t.Errorf("grouped ordinary value was lost: %s", out)
	}
}

func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false).With("token", "secret-value")
	logger.Warn("run started")

	if strings.Contains(buf.String(), "secret-value") {
		t.Errorf("pre-bound sensitive attribute leaked: %s", buf.String())
	}
}

func TestNewSecureLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("quiet by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, false)
		logger.Info("should be suppressed")

		if buf.Len() != 0 {
			t.Errorf("expected no output at info level, got %q", buf.String())
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)
		logger.Debug("trace detail")

		if !strings.Contains(buf.String(), "trace detail") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})
}
