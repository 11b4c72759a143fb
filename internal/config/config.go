// Package config loads application configuration from defaults, an optional
// YAML file, environment variables and command-line flags, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Store backends selectable with the "store" key.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Configuration keys, shared by the YAML file and the command-line flags.
const (
	KeyListenAddr  = "listen-addr"
	KeyStore       = "store"
	KeyDBPath      = "db-path"
	KeyPostgresDSN = "postgres-dsn"
	KeyBcryptCost  = "bcrypt-cost"
	KeyRequireAuth = "require-auth"
	KeyLogFormat   = "log-format"
	KeyLogLevel    = "log-level"
)

// defaults holds the value of every key before any source is applied.
var defaults = map[string]string{
	KeyListenAddr:  "127.0.0.1:8080",
	KeyStore:       StoreSQLite,
	KeyDBPath:      "personauth.db",
	KeyPostgresDSN: "",
	KeyBcryptCost:  "10",
	KeyRequireAuth: "false",
	KeyLogFormat:   "json",
	KeyLogLevel:    "info",
}

// envVars maps each key to the environment variable that overrides it.
var envVars = map[string]string{
	KeyListenAddr:  "PERSONAUTH_LISTEN_ADDR",
	KeyStore:       "PERSONAUTH_STORE",
	KeyDBPath:      "PERSONAUTH_DB_PATH",
	KeyPostgresDSN: "PERSONAUTH_POSTGRES_DSN",
	KeyBcryptCost:  "PERSONAUTH_BCRYPT_COST",
	KeyRequireAuth: "PERSONAUTH_REQUIRE_AUTH",
	KeyLogFormat:   "PERSONAUTH_LOG_FORMAT",
	KeyLogLevel:    "PERSONAUTH_LOG_LEVEL",
}

// Config holds the validated application configuration.
type Config struct {
	ListenAddr  string
	Store       string
	DBPath      string
	PostgresDSN string
	BcryptCost  int
	RequireAuth bool
	LogFormat   string
	LogLevel    slog.Level
}

// RegisterFlags defines one flag per configuration key on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyListenAddr, defaults[KeyListenAddr], "HTTP listen address")
	fs.String(KeyStore, defaults[KeyStore], "credential store backend: sqlite, postgres or memory")
	fs.String(KeyDBPath, defaults[KeyDBPath], "SQLite database file")
	fs.String(KeyPostgresDSN, defaults[KeyPostgresDSN], "PostgreSQL connection string")
	fs.Int(KeyBcryptCost, 10, "bcrypt work factor for sign-up hashing")
	fs.Bool(KeyRequireAuth, false, "require HTTP basic authentication on person routes")
	fs.String(KeyLogFormat, defaults[KeyLogFormat], "log format: json or text")
	fs.String(KeyLogLevel, defaults[KeyLogLevel], "log level: debug, info, warn or error")
}

// Load builds a Config. path names an optional YAML file; fs may be nil.
// Only flags explicitly set on the command line override the environment.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	for key, name := range envVars {
		if v, ok := os.LookupEnv(name); ok {
			if err := k.Set(key, v); err != nil {
				return nil, fmt.Errorf("apply %s: %w", name, err)
			}
		}
	}

	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	return parse(k)
}

func parse(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		ListenAddr:  k.String(KeyListenAddr),
		Store:       strings.ToLower(strings.TrimSpace(k.String(KeyStore))),
		DBPath:      k.String(KeyDBPath),
		PostgresDSN: k.String(KeyPostgresDSN),
		LogFormat:   strings.ToLower(k.String(KeyLogFormat)),
	}

	cost, err := strconv.Atoi(k.String(KeyBcryptCost))
	if err != nil {
		return nil, fmt.Errorf("%s has invalid integer %q: %w", describe(KeyBcryptCost), k.String(KeyBcryptCost), err)
	}
	cfg.BcryptCost = cost

	requireAuth, err := strconv.ParseBool(k.String(KeyRequireAuth))
	if err != nil {
		return nil, fmt.Errorf("%s has invalid boolean %q: %w", describe(KeyRequireAuth), k.String(KeyRequireAuth), err)
	}
	cfg.RequireAuth = requireAuth

	if err := cfg.LogLevel.UnmarshalText([]byte(k.String(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("%s has invalid level %q: %w", describe(KeyLogLevel), k.String(KeyLogLevel), err)
	}

	switch cfg.Store {
	case StoreSQLite, StoreMemory:
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("%s is required when store is %q", describe(KeyPostgresDSN), StorePostgres)
		}
	default:
		return nil, fmt.Errorf("%s has unknown store %q", describe(KeyStore), cfg.Store)
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("%s has unknown format %q", describe(KeyLogFormat), cfg.LogFormat)
	}

	return cfg, nil
}

// describe names a key the way an operator would set it.
func describe(key string) string {
	return fmt.Sprintf("%s (--%s)", envVars[key], key)
}
