package cfg

import (
	"os"
	"testing"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadArgs_Defaults(t *testing.T) {
	for _, key := range []string{"FEED_URL", "SOURCE_FILE", "REFRESH_INTERVAL", "PORT", "WORKER_COUNT", "DEBUG"} {
		unsetEnv(t, key)
	}
	t.Setenv("TZ", "UTC")

	cfg, err := LoadArgs([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.FeedURL != "https://ictransport.ru/rss-feed-827453696181.xml" {
		t.Errorf("Unexpected default feed URL %q", cfg.FeedURL)
	}
	if cfg.Port != "3000" {
		t.Errorf("Expected port '3000', got '%s'", cfg.Port)
	}
	if cfg.SourceFile != "./source.yml" {
		t.Errorf("Expected source file './source.yml', got '%s'", cfg.SourceFile)
	}
	if cfg.RefreshInterval != 0 {
		t.Errorf("Expected refresh interval 0, got %d", cfg.RefreshInterval)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", cfg.WorkerCount)
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestLoadArgs_FlagsAndEnv(t *testing.T) {
	for _, key := range []string{"FEED_URL", "REFRESH_INTERVAL", "WORKER_COUNT", "DEBUG"} {
		unsetEnv(t, key)
	}
	t.Setenv("PORT", "9090")
	t.Setenv("TZ", "UTC")

	cfg, err := LoadArgs([]string{"--feed-url", "https://example.com/rss.xml", "--refresh-interval", "600", "--debug"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.FeedURL != "https://example.com/rss.xml" {
		t.Errorf("Expected feed URL from flag, got %q", cfg.FeedURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port from env, got %q", cfg.Port)
	}
	if cfg.RefreshInterval != 600 {
		t.Errorf("Expected refresh interval 600, got %d", cfg.RefreshInterval)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestLoadArgs_Invalid(t *testing.T) {
	for _, key := range []string{"FEED_URL", "REFRESH_INTERVAL", "WORKER_COUNT", "DEBUG"} {
		unsetEnv(t, key)
	}
	t.Setenv("TZ", "UTC")

	tests := []struct {
		name string
		args []string
	}{
		{"negative refresh interval", []string{"--refresh-interval=-1"}},
		{"zero workers", []string{"--worker-count=0"}},
		{"non-numeric workers", []string{"--worker-count=many"}},
		{"unknown flag", []string{"--no-such-flag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadArgs(tt.args); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
