package config

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"CHESS_ADDR":                 ":8080",
		"CHESS_ALLOWED_ORIGINS":      "https://a.example, https://b.example",
		"CHESS_LOG_LEVEL":            "DEBUG",
		"CHESS_WS_BUFFER":            "4096",
		"CHESS_MATCHMAKING_INTERVAL": "250ms",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.LogLevel != log.LevelDebug || cfg.WSBufferSize != 4096 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.MatchmakingInterval != 250*time.Millisecond {
		t.Fatalf("unexpected interval %s", cfg.MatchmakingInterval)
	}
	origins := cfg.Origins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", origins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"LogLevel", map[string]string{"CHESS_LOG_LEVEL": "loud"}},
		{"BufferNotANumber", map[string]string{"CHESS_WS_BUFFER": "big"}},
		{"BufferZero", map[string]string{"CHESS_WS_BUFFER": "0"}},
		{"Interval", map[string]string{"CHESS_MATCHMAKING_INTERVAL": "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(env(tt.vars)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
