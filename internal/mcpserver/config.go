package mcpserver

import (
	"go/token"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Generation defaults.
	PackageName string
	Gofumpt     bool
	Strict      bool
	HeaderFile  string

	// Bundle cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// MaxInlineSize caps inline bundle content in bytes.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SCHEMAGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		PackageName:   envPackage("SCHEMAGEN_PACKAGE", "yaml"),
		Gofumpt:       envBool("SCHEMAGEN_GOFUMPT", false),
		Strict:        envBool("SCHEMAGEN_STRICT", false),
		HeaderFile:    os.Getenv("SCHEMAGEN_HEADER_FILE"),
		CacheEnabled:  envBool("SCHEMAGEN_CACHE_ENABLED", true),
		CacheMaxSize:  envInt("SCHEMAGEN_CACHE_MAX_SIZE", 10),
		CacheTTL:      envDuration("SCHEMAGEN_CACHE_TTL", 15*time.Minute),
		MaxInlineSize: int64(envInt("SCHEMAGEN_MAX_INLINE_SIZE", 10*1024*1024)),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envPackage(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !token.IsIdentifier(v) {
		slog.Warn("invalid package name env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}
