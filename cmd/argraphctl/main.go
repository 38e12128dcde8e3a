// Command argraphctl is the operator CLI standing in for an HTTP layer
// this module leaves out of scope: one Cobra subcommand per engine
// operation, printing each call's updated-score diff as a JSON line so
// a caller can script cache invalidation.
//
// A single root *cobra.Command loads config via PersistentPreRun before any
// subcommand runs. There is no daemon, RPC layer, or auto-flush machinery:
// this engine has no out-of-process server to dial, so every invocation
// builds a fresh in-memory graph.Graph against the durable metadata store
// and exits.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opendebate/argraph/applog"
	"github.com/opendebate/argraph/config"
	"github.com/opendebate/argraph/engine"
	"github.com/opendebate/argraph/store"
)

// process holds the wired dependencies every subcommand's RunE closes over,
// populated by rootCmd's PersistentPreRunE.
type process struct {
	cfg    *config.Config
	store  *store.Store
	engine *engine.Engine
}

var proc process

var rootCmd = &cobra.Command{
	Use:   "argraphctl",
	Short: "Operate an argument-graph scoring engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("argraphctl: loading config: %w", err)
		}
		logger, err := applog.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("argraphctl: building logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		st, err := store.Open(cmd.Context(), cfg.Storage)
		if err != nil {
			return fmt.Errorf("argraphctl: opening store: %w", err)
		}

		proc = process{cfg: cfg, store: st, engine: engine.New(st, cfg.Propagation)}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if proc.store == nil {
			return nil
		}
		return proc.store.Close()
	},
}

func init() {
	rootCmd.AddCommand(opinionCmd, linkCmd, debateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
