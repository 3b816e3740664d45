package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/sememe-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.sememe with a default config and .env template",
	Long: `Initialize ~/.sememe/.

Writes sememe.yaml with defaults if it is missing, creates the data and tmp
directories, and writes a commented .env template. Existing files are kept.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	// ── 1. Resolve ~/.sememe directory ────────────────────────────────────────
	dir, err := config.SememeDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK(w, "", fmt.Sprintf("Sememe directory ready: %s", dir))

	// ── 2. Write sememe.yaml if missing ───────────────────────────────────────
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK(w, "", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip(w, "", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. Data and staging directories ───────────────────────────────────────
	for _, d := range []string{appCfg.DataDir, filepath.Join(dir, "tmp")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", d, err)
		}
	}
	printOK(w, "", fmt.Sprintf("Data directory ready: %s", appCfg.DataDir))

	// ── 4. .env template ──────────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	printOK(w, "", fmt.Sprintf(".env ready: %s", envPath))

	printInfo(w, "", "Next: sememe import <bundle-dir>")
	return nil
}
