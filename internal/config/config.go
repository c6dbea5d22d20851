package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Config is the server configuration, read from CHESS_* environment
// variables.
type Config struct {
	Addr                string
	AllowedOrigins      string
	LogLevel            log.Level
	WSBufferSize        int
	MatchmakingInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowedOrigins:      "http://localhost:5173",
		LogLevel:            log.LevelInfo,
		WSBufferSize:        1024,
		MatchmakingInterval: time.Second,
	}
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Load starts from Default and applies any variables set in the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("CHESS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("CHESS_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = v
	}
	if v := getenv("CHESS_LOG_LEVEL"); v != "" {
		level, ok := logLevels[strings.ToLower(v)]
		if !ok {
			return Config{}, fmt.Errorf("CHESS_LOG_LEVEL: unknown level %q", v)
		}
		cfg.LogLevel = level
	}
	if v := getenv("CHESS_WS_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("CHESS_WS_BUFFER: invalid size %q", v)
		}
		cfg.WSBufferSize = n
	}
	if v := getenv("CHESS_MATCHMAKING_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("CHESS_MATCHMAKING_INTERVAL: invalid duration %q", v)
		}
		cfg.MatchmakingInterval = d
	}
	return cfg, nil
}

// Origins splits AllowedOrigins on commas for the websocket origin check.
func (c Config) Origins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
