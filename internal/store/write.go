package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kamusis/sememe-cli/internal/lexicon"
)

// Write writes a bundle to dir. Counts, file names, the senses hash and
// CreatedAt are filled in from the data. A bundle without an ID gets a fresh
// UUID.
func Write(dir string, manifest Manifest, senses []*lexicon.Sense, sememes []SememeEntry, pairs []PairEntry) error {
	if len(senses) == 0 {
		return fmt.Errorf("no senses to write")
	}
	for _, p := range pairs {
		if p.Sim < 0 || p.Sim > 1 {
			return fmt.Errorf("similarity of (%s, %s) out of range: %v", p.A, p.B, p.Sim)
		}
	}
	manifest.applyDefaults()
	manifest.FormatVersion = formatVersion
	manifest.Senses = len(senses)
	manifest.Sememes = len(sememes)
	manifest.Pairs = len(pairs)
	if manifest.ID == "" {
		manifest.ID = uuid.NewString()
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create bundle dir %s: %w", dir, err)
	}

	sensesPath := filepath.Join(dir, manifest.SensesFile)
	if err := writeJSONL(sensesPath, senses); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, manifest.SememesFile), sememes); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, manifest.PairsFile), pairs); err != nil {
		return err
	}

	h, err := FileHash(sensesPath)
	if err != nil {
		return err
	}
	manifest.SensesHash = h

	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}
	return nil
}

func writeJSONL[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			_ = f.Close()
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
