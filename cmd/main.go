// Claims Review Engine CLI
//
// Runs the agent-pipeline claims review engine: a metrics-exporting server,
// a terminal replay of the investigation pipeline for one claim, and data
// utilities over the in-memory claim set.
//
// Usage:
//
//	go run ./cmd serve                      # metrics + health endpoints
//	go run ./cmd replay AC-2025-00124       # replay one claim's pipeline
//	go run ./cmd export -o claims.csv       # dump the claim set
//	go run ./cmd stats                      # status/SLA breakdown
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/commbus"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/claims"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/config"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/observability"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/scenario"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/sequencer"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/workspace"
)

var (
	configPath string
	verbose    bool

	logger applog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "claimsd",
	Short: "Agent-pipeline claims review engine",
	Long: `claimsd drives the scripted six-stage investigation pipeline
(document ingest, vision, document analysis, liability, fraud, payout)
over an in-memory claim set and exposes the results for review.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			config.Set(cfg)
		}
		level := config.Get().LogLevel
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = applog.New(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML engine config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, replayCmd, exportCmd, importCmd, statsCmd)
}

// engine bundles the wired core for one process.
type engine struct {
	bus  *commbus.InMemoryCommBus
	repo *claims.Repository
	seq  *sequencer.Sequencer
	ws   *workspace.Workspace
}

// buildEngine wires the bus, repository, scenario store, sequencer and
// workspace from the global config.
func buildEngine() (*engine, error) {
	cfg := config.Get()

	bus := commbus.NewInMemoryCommBus(logger, 5*time.Second)
	bus.AddMiddleware(commbus.NewLoggingMiddleware(logger))

	repo := claims.NewRepository(logger)
	if cfg.SeedClaims {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := claims.SeedRepository(repo, rng); err != nil {
			return nil, fmt.Errorf("seed claims: %w", err)
		}
		logger.Info("claims_seeded", "count", repo.Len())
	}

	store, err := scenario.NewStore(logger,
		scenario.WithFallbackHook(func(string) { observability.RecordScenarioFallback() }))
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}

	seq := sequencer.New(store, cfg.Timing,
		sequencer.WithLogger(logger),
		sequencer.WithBus(bus))

	return &engine{
		bus:  bus,
		repo: repo,
		seq:  seq,
		ws:   workspace.New(repo, store, seq, logger, bus),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
