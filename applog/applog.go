// Package applog builds the structured logger for the module's operator
// surface (cmd/argraphctl); the library packages take no logger.
//
// Named via the go.mod dependency on go.uber.org/zap (adopted from the
// logging stack carried in the pack's go.mod files; no retrieved repo ships
// a bespoke zap wrapper to imitate file-for-file, so this follows zap's own
// idiomatic NewProduction/NewDevelopment + SugaredLogger construction,
// per DESIGN.md's allowance for an out-of-pack-file, in-pack-dependency
// library).
package applog

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/opendebate/argraph/config"
)

// New builds a *zap.Logger from the process log configuration: JSON output
// for production, console output for local development, level parsed from
// cfg.Level ("debug", "info", "warn", "error").
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("applog: invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	if cfg.JSON {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("applog: building logger: %w", err)
	}

	return logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
