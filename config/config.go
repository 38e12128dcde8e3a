// Package config loads process configuration for the engine and its
// operator surfaces (cmd/argraphctl) from environment variables and an
// optional argraph.yaml, via a viper instance.
//
// Env vars override argraph.yaml, which overrides the built-in defaults,
// using this module's own ARGRAPH_-prefixed env vars, resolved in a single
// Load() call.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage carries the metadata store connection settings.
type Storage struct {
	// DSN is the MySQL/Dolt data source name, e.g.
	// "user:pass@tcp(127.0.0.1:3306)/argraph?parseTime=true".
	DSN string

	MaxOpenConns int
	MaxIdleConns int
}

// Log carries structured-logging setup.
type Log struct {
	Level string
	JSON  bool
}

// Propagation carries the score-propagator's resource budget.
type Propagation struct {
	MaxDepth int
}

// Server is parsed but unused by the core engine; it documents the seam for
// an HTTP layer this module leaves out of scope.
type Server struct {
	ListenAddr string
}

// Config is the fully-resolved process configuration.
type Config struct {
	Storage     Storage
	Log         Log
	Propagation Propagation
	Server      Server
}

// defaults applies the "sane default, override via env/file" convention:
// every field below has a safe zero-config value.
func defaults(v *viper.Viper) {
	v.SetDefault("storage.dsn", "argraph:argraph@tcp(127.0.0.1:3306)/argraph?parseTime=true&multiStatements=true")
	v.SetDefault("storage.max_open_conns", 10)
	v.SetDefault("storage.max_idle_conns", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)
	v.SetDefault("propagation.max_depth", 256)
	v.SetDefault("server.listen_addr", "")
}

// Load resolves Config from (in ascending priority) argraph.yaml in the
// current directory, then ARGRAPH_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix("ARGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("argraph")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading argraph.yaml: %w", err)
		}
	}

	cfg := &Config{
		Storage: Storage{
			DSN:          v.GetString("storage.dsn"),
			MaxOpenConns: v.GetInt("storage.max_open_conns"),
			MaxIdleConns: v.GetInt("storage.max_idle_conns"),
		},
		Log: Log{
			Level: v.GetString("log.level"),
			JSON:  v.GetBool("log.json"),
		},
		Propagation: Propagation{
			MaxDepth: v.GetInt("propagation.max_depth"),
		},
		Server: Server{
			ListenAddr: v.GetString("server.listen_addr"),
		},
	}

	if cfg.Propagation.MaxDepth <= 0 {
		return nil, fmt.Errorf("config: propagation.max_depth must be positive, got %d", cfg.Propagation.MaxDepth)
	}

	return cfg, nil
}

// connMaxLifetime is the fixed connection lifetime the store applies to its
// *sql.DB pool.
const connMaxLifetime = 5 * time.Minute

// ConnMaxLifetime returns the metadata store's pooled-connection lifetime.
func ConnMaxLifetime() time.Duration {
	return connMaxLifetime
}
