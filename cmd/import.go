package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/kamusis/sememe-cli/internal/config"
	"github.com/kamusis/sememe-cli/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <bundle-dir>",
	Short: "Validate a HowNet data bundle and install it into the data dir",
	Long: `Import a data bundle (manifest.json, senses.jsonl, sememes.jsonl,
sememe_sim.jsonl) into the configured data_dir.

The bundle is validated against its manifest, staged under ~/.sememe/tmp and
swapped into place. Concurrent imports wait on a per-user lock.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var flagImportTimeout time.Duration

func init() {
	importCmd.Flags().DurationVar(&flagImportTimeout, "timeout", 30*time.Second, "How long to wait for another import to finish")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	src, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", args[0], err)
	}

	_, unlock, err := acquireImportLock(flagImportTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	dir, err := config.SememeDir()
	if err != nil {
		return err
	}

	printInfo(w, "", fmt.Sprintf("Importing %s", src))
	start := time.Now()
	m, err := store.Install(src, appCfg.DataDir, filepath.Join(dir, "tmp"))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	appLog.Info("bundle installed",
		slog.String("bundle_id", m.ID),
		slog.String("source", src),
		slog.String("data_dir", appCfg.DataDir),
		slog.Duration("elapsed", time.Since(start)))

	printOK(w, "", fmt.Sprintf("Installed bundle %s into %s", m.ID, appCfg.DataDir))
	printInfo(w, "", fmt.Sprintf("senses=%d sememes=%d pairs=%d", m.Senses, m.Sememes, m.Pairs))
	return nil
}

// acquireImportLock obtains the per-user import lock.
func acquireImportLock(timeout time.Duration) (*flock.Flock, func(), error) {
	lockPath, err := importLockPath()
	if err != nil {
		return nil, func() {}, err
	}
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, func() {}, fmt.Errorf("cannot acquire import lock: %w", err)
		}
		if locked {
			return l, func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, func() {}, fmt.Errorf("another import is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// importLockPath is ~/.sememe/import.lock.
func importLockPath() (string, error) {
	dir, err := config.SememeDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return filepath.Join(dir, "import.lock"), nil
}
