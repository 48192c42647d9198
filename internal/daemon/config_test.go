package daemon

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8714 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8714)
	}
	if cfg.Remote.Enabled {
		t.Error("remote sync should be opt-in")
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("prometheus should default on")
	}
	if cfg.User.ID == "" {
		t.Error("user id must have a default")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("EARTHWISE_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("expected default port, got %d", cfg.API.Port)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("EARTHWISE_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9001
	cfg.Remote.Enabled = true
	cfg.Remote.BaseURL = "https://sync.example.com/api"
	cfg.Remote.Timeout = "2s"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9001 {
		t.Errorf("port = %d, want 9001", loaded.API.Port)
	}
	if !loaded.Remote.Enabled || loaded.Remote.BaseURL != "https://sync.example.com/api" {
		t.Errorf("remote section did not round-trip: %+v", loaded.Remote)
	}
}

func TestRemoteTimeout(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"2s", 2 * time.Second},
		{"500ms", 500 * time.Millisecond},
		{"", 5 * time.Second},        // Default
		{"garbage", 5 * time.Second}, // Default
		{"-1s", 5 * time.Second},     // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rc := RemoteConfig{Timeout: tt.input}
			if got := rc.RemoteTimeout(); got != tt.want {
				t.Errorf("RemoteTimeout(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
