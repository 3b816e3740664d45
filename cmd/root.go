package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/sememe-cli/internal/config"
	"github.com/kamusis/sememe-cli/internal/logging"
	"github.com/kamusis/sememe-cli/internal/sememe"
	"github.com/kamusis/sememe-cli/internal/similarity"
	"github.com/kamusis/sememe-cli/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "sememe",
	Short:        "Sememe CLI: HowNet KDML parser and sememe-tree similarity",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Sememe parses HowNet KDML definitions into sememe trees and scores
word similarity over an imported HowNet data bundle at ~/.sememe/data/.`,
	PersistentPreRunE: setupRuntime,
}

var (
	appCfg *config.Config
	appLog *slog.Logger
)

// setupRuntime loads the config and installs the logger before any command.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	appCfg = cfg
	appLog = logging.New(cfg.Log)
	appLog.Debug("config loaded",
		slog.String("command", cmd.Name()),
		slog.String("data_dir", cfg.DataDir))
	return nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printErr(os.Stderr, "", err.Error())
		os.Exit(1)
	}
}

// openEngine loads the installed bundle. A missing bundle is reported as
// similarity.ErrNotInitialized, never as a missing word. workers > 0
// overrides search.workers.
func openEngine(workers int) (*similarity.Engine, *sememe.Registry, error) {
	b, reg, err := store.Open(appCfg.DataDir)
	if err != nil {
		if errors.Is(err, store.ErrNoBundle) {
			return nil, nil, fmt.Errorf("%w: no data bundle in %s\nRun 'sememe import <bundle-dir>' first.",
				similarity.ErrNotInitialized, appCfg.DataDir)
		}
		return nil, nil, err
	}
	if workers <= 0 {
		workers = appCfg.Search.Workers
	}
	e, err := similarity.New(b, similarity.Options{
		Workers: workers,
		MinNo:   appCfg.Search.MinNo,
		Logger:  appLog,
	})
	if err != nil {
		return nil, nil, err
	}
	appLog.Debug("engine ready",
		slog.Int("senses", b.Lexicon.Len()),
		slog.Int("sememes", reg.Len()))
	return e, reg, nil
}
