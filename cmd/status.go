package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kamusis/sememe-cli/internal/config"
	"github.com/kamusis/sememe-cli/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show config, data bundle and readiness",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	printSection(w, "Config")
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		printOK(w, "", cfgPath)
	} else {
		printMiss(w, "", fmt.Sprintf("%s (defaults in use; run: sememe init)", cfgPath))
	}
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	dotenv, err := config.LoadDotEnv()
	if err != nil {
		printErr(w, ".env", err.Error())
	} else {
		keys := make([]string, 0, len(dotenv))
		for k, v := range dotenv {
			if v != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			printSkip(w, ".env", fmt.Sprintf("no overrides in %s", envPath))
		}
		for _, k := range keys {
			printInfo(w, ".env", fmt.Sprintf("%s=%s", k, dotenv[k]))
		}
	}
	printInfo(w, "log", fmt.Sprintf("level=%s format=%s", appCfg.Log.Level, appCfg.Log.Format))
	printInfo(w, "search", fmt.Sprintf("k=%d workers=%d min_no=%d", appCfg.Search.K, appCfg.Search.Workers, appCfg.Search.MinNo))

	printSection(w, "Data")
	printInfo(w, "data_dir", appCfg.DataDir)
	m, err := store.ReadManifest(appCfg.DataDir)
	switch {
	case errors.Is(err, store.ErrNoBundle):
		printMiss(w, "", "no data bundle (run: sememe import <bundle-dir>)")
		printWarn(w, "", "engine not initialized")
		return nil
	case err != nil:
		printErr(w, "", err.Error())
		printWarn(w, "", "engine not initialized")
		return nil
	}
	printOK(w, "manifest", fmt.Sprintf("id=%s format=%d created=%s", m.ID, m.FormatVersion, m.CreatedAt))
	if m.Source != "" {
		printInfo(w, "source", m.Source)
	}
	printInfo(w, "counts", fmt.Sprintf("senses=%d sememes=%d pairs=%d", m.Senses, m.Sememes, m.Pairs))

	if _, err := store.Load(appCfg.DataDir); err != nil {
		printErr(w, "", err.Error())
		printWarn(w, "", "engine not initialized")
		return nil
	}
	printOK(w, "", "engine ready")
	return nil
}
