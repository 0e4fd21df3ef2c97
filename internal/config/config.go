package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the portal server.
type ServerConfig struct {
	Addr       string `yaml:"addr"`        // Listen address (default ":8080")
	BackendURL string `yaml:"backend_url"` // Competition backend base URL
	LogLevel   string `yaml:"log_level"`   // debug, info, warn, error
	LogFormat  string `yaml:"log_format"`  // text, json
	DBPath     string `yaml:"db_path"`     // SQLite path (":memory:" for testing)

	// SecureCookies marks the login cookie Secure. Enable whenever the
	// portal is served over HTTPS.
	SecureCookies bool `yaml:"secure_cookies"`

	// SessionTTL bounds the portal login session; the backend token's own
	// expiry shortens it further when the token expires sooner.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// ResyncInterval is how often the session gate re-reads the backend
	// clock to re-anchor armed deadlines against local clock drift.
	ResyncInterval time.Duration `yaml:"resync_interval"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		BackendURL:     "http://localhost:4402",
		LogLevel:       "info",
		LogFormat:      "text",
		SessionTTL:     24 * time.Hour,
		ResyncInterval: 30 * time.Second,
	}
}

// Load reads a YAML config file over the defaults. Env overrides (PORTAL_*)
// are applied last so a deployment can adjust a single value without a file.
func Load(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.SessionTTL <= 0 {
		return cfg, fmt.Errorf("session_ttl must be positive, got %v", cfg.SessionTTL)
	}
	if cfg.ResyncInterval <= 0 {
		return cfg, fmt.Errorf("resync_interval must be positive, got %v", cfg.ResyncInterval)
	}

	return cfg, nil
}

func applyEnv(cfg *ServerConfig) {
	setEnvString(&cfg.Addr, "PORTAL_ADDR")
	setEnvString(&cfg.BackendURL, "PORTAL_BACKEND_URL")
	setEnvString(&cfg.LogLevel, "PORTAL_LOG_LEVEL")
	setEnvString(&cfg.LogFormat, "PORTAL_LOG_FORMAT")
	setEnvString(&cfg.DBPath, "PORTAL_DB")
	setEnvBool(&cfg.SecureCookies, "PORTAL_SECURE_COOKIES")
	setEnvDuration(&cfg.SessionTTL, "PORTAL_SESSION_TTL")
	setEnvDuration(&cfg.ResyncInterval, "PORTAL_RESYNC_INTERVAL")
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setEnvBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setEnvDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
