package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/sememe-cli/internal/lexicon"
	"github.com/kamusis/sememe-cli/internal/sememe"
	"github.com/kamusis/sememe-cli/internal/similarity"
)

// maxLine bounds one JSONL row. Definitions are short, but remarks can run long.
const maxLine = 1 << 20

// Data is a loaded bundle.
type Data struct {
	Manifest Manifest
	Senses   []*lexicon.Sense
	Sememes  []SememeEntry
	Pairs    []PairEntry
}

// ReadManifest reads dir's manifest only.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoBundle, dir)
		}
		return nil, fmt.Errorf("cannot read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", path, err)
	}
	if m.FormatVersion != formatVersion {
		return nil, fmt.Errorf("unsupported bundle format %d (want %d)", m.FormatVersion, formatVersion)
	}
	m.applyDefaults()
	return &m, nil
}

// Load reads a bundle from dir and checks it against its manifest.
func Load(dir string) (*Data, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	sensesPath := filepath.Join(dir, m.SensesFile)
	if m.SensesHash != "" {
		h, err := FileHash(sensesPath)
		if err != nil {
			return nil, fmt.Errorf("cannot hash senses file: %w", err)
		}
		if h != m.SensesHash {
			return nil, fmt.Errorf("%w: senses hash mismatch in %s", ErrCorrupt, dir)
		}
	}

	senses, err := readJSONL[lexicon.Sense](sensesPath)
	if err != nil {
		return nil, err
	}
	sememes, err := readJSONL[SememeEntry](filepath.Join(dir, m.SememesFile))
	if err != nil {
		return nil, err
	}
	pairs, err := readJSONL[PairEntry](filepath.Join(dir, m.PairsFile))
	if err != nil {
		return nil, err
	}

	if len(senses) != m.Senses || len(sememes) != m.Sememes || len(pairs) != m.Pairs {
		return nil, fmt.Errorf("%w: counts senses=%d sememes=%d pairs=%d, manifest says %d/%d/%d",
			ErrCorrupt, len(senses), len(sememes), len(pairs), m.Senses, m.Sememes, m.Pairs)
	}

	d := &Data{Manifest: *m, Sememes: sememes, Pairs: pairs}
	d.Senses = make([]*lexicon.Sense, len(senses))
	for i := range senses {
		d.Senses[i] = &senses[i]
	}
	return d, nil
}

func readJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	var out []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("invalid JSONL %s:%d: %w", path, line, err)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return out, nil
}

// Registry builds the sememe registry.
func (d *Data) Registry() (*sememe.Registry, error) {
	reg := sememe.NewRegistry()
	for _, e := range d.Sememes {
		s, err := sememe.ParseID(e.ID)
		if err != nil {
			return nil, err
		}
		s.Freq = e.Freq
		reg.Add(s)
	}
	return reg, nil
}

// Table builds the pairwise similarity table.
func (d *Data) Table() *sememe.Table {
	t := sememe.NewTable()
	for _, p := range d.Pairs {
		t.Set(p.A, p.B, p.Sim)
	}
	return t
}

// Bundle assembles what the similarity engine needs, sense trees included.
func (d *Data) Bundle() similarity.Bundle {
	return similarity.Bundle{
		Lexicon: lexicon.New(d.Senses),
		Table:   d.Table(),
		Trees:   lexicon.BuildTrees(d.Senses),
	}
}

// Open loads the bundle in dir and returns the engine bundle together with
// its sememe registry.
func Open(dir string) (similarity.Bundle, *sememe.Registry, error) {
	d, err := Load(dir)
	if err != nil {
		return similarity.Bundle{}, nil, err
	}
	reg, err := d.Registry()
	if err != nil {
		return similarity.Bundle{}, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return d.Bundle(), reg, nil
}
