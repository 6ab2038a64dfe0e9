// Package config provides application-wide configuration.
// Precedence: built-in defaults, then the optional YAML config file, then
// environment variables. All fields have safe defaults so the binary serves
// a local stdio client without any setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akansha-code/volumemcpserver/internal/infra/logging"
)

// Audio backend selectors.
const (
	// BackendSystem opens the platform's default output endpoint.
	BackendSystem = "system"
	// BackendFake serves an in-memory endpoint, for demos and machines
	// without an audio device.
	BackendFake = "fake"
)

const (
	envKeyLogLevel      = "VOLUMEMCP_LOG_LEVEL"
	envKeyAudioBackend  = "VOLUMEMCP_AUDIO_BACKEND"
	envKeyAccessKeyHash = "VOLUMEMCP_ACCESS_KEY_HASH"
	envKeyJWTSecret     = "VOLUMEMCP_JWT_SECRET"
)

// Config holds runtime configuration for volumemcpserver.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Audio AudioConfig `yaml:"audio"`
	HTTP  HTTPConfig  `yaml:"http"`
	Auth  AuthConfig  `yaml:"auth"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error (default "info")
}

// AudioConfig selects the endpoint implementation.
type AudioConfig struct {
	Backend string `yaml:"backend"` // "system" | "fake" (default "system")
}

// HTTPConfig controls the optional streamable-HTTP transport.
// When disabled, the server speaks MCP over stdio only.
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Host    string `yaml:"host"`    // default: "127.0.0.1"
	Port    int    `yaml:"port"`    // default: 8726
}

// AuthConfig controls bearer auth on the HTTP transport. With both fields
// set, /mcp requires a token issued by POST /auth/token. With both empty,
// auth is disabled.
type AuthConfig struct {
	AccessKeyHash string `yaml:"access_key_hash"` // bcrypt hash of the shared access key (see `volumemcpserver keygen`)
	JWTSecret     string `yaml:"jwt_secret"`      // HS256 signing secret for issued tokens
	TokenTTLHours int    `yaml:"token_ttl_hours"` // default: 24
}

// Enabled reports whether bearer auth is configured.
func (a AuthConfig) Enabled() bool {
	return a.AccessKeyHash != "" && a.JWTSecret != ""
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log:   LogConfig{Level: "info"},
		Audio: AudioConfig{Backend: BackendSystem},
		HTTP:  HTTPConfig{Enabled: false, Host: "127.0.0.1", Port: 8726},
		Auth:  AuthConfig{TokenTTLHours: 24},
	}
}

// Load builds the effective configuration. path may be empty (no config file);
// a non-empty path must exist and parse.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Log.Level = envOr(envKeyLogLevel, cfg.Log.Level)
	cfg.Audio.Backend = envOr(envKeyAudioBackend, cfg.Audio.Backend)
	cfg.Auth.AccessKeyHash = envOr(envKeyAccessKeyHash, cfg.Auth.AccessKeyHash)
	cfg.Auth.JWTSecret = envOr(envKeyJWTSecret, cfg.Auth.JWTSecret)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot act on.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if c.Audio.Backend != BackendSystem && c.Audio.Backend != BackendFake {
		return fmt.Errorf("audio.backend: unknown backend %q (want %q or %q)",
			c.Audio.Backend, BackendSystem, BackendFake)
	}

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port: %d out of range", c.HTTP.Port)
	}

	// Auth settings only work as a pair.
	hasHash, hasSecret := c.Auth.AccessKeyHash != "", c.Auth.JWTSecret != ""
	if hasHash != hasSecret {
		return fmt.Errorf("auth: access_key_hash and jwt_secret must be set together")
	}
	if c.Auth.TokenTTLHours < 0 {
		return fmt.Errorf("auth.token_ttl_hours: must not be negative")
	}

	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
