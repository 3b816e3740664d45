package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Install validates the bundle in srcDir, stages a copy under tmpBase and
// swaps it into destDir. The caller is responsible for serializing installs.
func Install(srcDir, destDir, tmpBase string) (*Manifest, error) {
	d, err := Load(srcDir)
	if err != nil {
		return nil, err
	}
	if _, err := d.Registry(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if err := os.MkdirAll(tmpBase, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create temp dir %s: %w", tmpBase, err)
	}
	stage, err := os.MkdirTemp(tmpBase, "bundle-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create staging dir: %w", err)
	}
	defer os.RemoveAll(stage)

	m := d.Manifest
	for _, name := range []string{manifestFile, m.SensesFile, m.SememesFile, m.PairsFile} {
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(stage, name)); err != nil {
			return nil, fmt.Errorf("cannot stage %s: %w", name, err)
		}
	}
	if err := AtomicSwap(stage, destDir); err != nil {
		return nil, fmt.Errorf("cannot install bundle: %w", err)
	}
	return &m, nil
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
