// Package config loads runtime configuration from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Config captures the runtime configuration.
type Config struct {
	Backend     string   `yaml:"backend"`
	DBPath      string   `yaml:"db_path"`
	PostgresDSN string   `yaml:"postgres_dsn"`
	Redis       Redis    `yaml:"redis"`
	HTTPAddress string   `yaml:"http_address"`
	CORSOrigins []string `yaml:"cors_origins"`
	AdminHash   string   `yaml:"admin_secret_hash"`
	LogMode     string   `yaml:"log_mode"`
}

// Redis holds the Redis backend settings.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

var validBackends = map[string]bool{
	"sqlite":   true,
	"postgres": true,
	"redis":    true,
	"memory":   true,
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Backend:     "sqlite",
		DBPath:      filepath.Join(home, ".uklc-lessons", "lessons.db"),
		HTTPAddress: ":8080",
		LogMode:     "dev",
		Redis:       Redis{Prefix: "uklc:"},
	}
}

// Load reads and validates the configuration.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read builds the configuration without validating it, so callers can apply
// flag overrides first. path names an optional YAML file; when it is empty,
// $UKLC_CONFIG is consulted. A missing .env file is not an error.
//
// godotenv expands $NAME in unquoted and double-quoted values, so a bcrypt
// hash in .env must be single-quoted.
func Read(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("UKLC_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Backend = valueOrDefault(os.Getenv("UKLC_BACKEND"), cfg.Backend)
	cfg.DBPath = valueOrDefault(os.Getenv("UKLC_DB"), cfg.DBPath)
	cfg.PostgresDSN = valueOrDefault(os.Getenv("UKLC_POSTGRES_DSN"), cfg.PostgresDSN)
	cfg.Redis.Addr = valueOrDefault(os.Getenv("UKLC_REDIS_ADDR"), cfg.Redis.Addr)
	cfg.Redis.Password = valueOrDefault(os.Getenv("UKLC_REDIS_PASSWORD"), cfg.Redis.Password)
	cfg.HTTPAddress = valueOrDefault(os.Getenv("UKLC_HTTP_ADDR"), cfg.HTTPAddress)
	cfg.AdminHash = valueOrDefault(os.Getenv("UKLC_ADMIN_SECRET_HASH"), cfg.AdminHash)
	cfg.LogMode = valueOrDefault(os.Getenv("UKLC_LOG_MODE"), cfg.LogMode)

	if v := os.Getenv("UKLC_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("UKLC_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}
	if v := os.Getenv("UKLC_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return nil
}

// Validate checks the backend selection has what it needs.
func (c Config) Validate() error {
	if !validBackends[c.Backend] {
		return fmt.Errorf("invalid backend %q (valid: sqlite, postgres, redis, memory)", c.Backend)
	}
	switch c.Backend {
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("db_path must be provided for the sqlite backend")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("UKLC_POSTGRES_DSN must be provided for the postgres backend")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("UKLC_REDIS_ADDR must be provided for the redis backend")
		}
	}
	if c.AdminHash != "" {
		if _, err := bcrypt.Cost([]byte(c.AdminHash)); err != nil {
			return fmt.Errorf("admin_secret_hash is not a bcrypt hash (single-quote it in .env): %w", err)
		}
	}
	return nil
}

func valueOrDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
