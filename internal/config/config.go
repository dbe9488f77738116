package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 4000
	defaultEnv        = "development"
	defaultDataDir    = "data"
	defaultBackupsDir = "backups"
	defaultSessionTTL = 30 * 24 // hours
	defaultRateLimit  = 10      // requests per second per IP, unauthenticated
	defaultRateBurst  = 20
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"` // "development" | "production"
	DataDir        string   `yaml:"data_dir"`
	BackupsDir     string   `yaml:"backups_dir"`
	JWTSecret      string   `yaml:"jwt_secret"`
	SessionTTLH    int      `yaml:"session_ttl_hours"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

// Load reads the YAML config at path. A missing file yields pure defaults;
// a malformed file is an error.
func Load(path string) (*AppConfig, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func defaults() *AppConfig {
	return &AppConfig{
		Port:           defaultPort,
		Env:            defaultEnv,
		DataDir:        defaultDataDir,
		BackupsDir:     defaultBackupsDir,
		SessionTTLH:    defaultSessionTTL,
		RateLimitRPS:   defaultRateLimit,
		RateLimitBurst: defaultRateBurst,
	}
}

func (c *AppConfig) normalize() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	if c.BackupsDir == "" {
		c.BackupsDir = defaultBackupsDir
	}
	if c.SessionTTLH <= 0 {
		c.SessionTTLH = defaultSessionTTL
	}
	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = defaultRateLimit
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = defaultRateBurst
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// SessionTTL returns the configured session lifetime.
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLH) * time.Hour
}
