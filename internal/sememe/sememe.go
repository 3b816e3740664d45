// Package sememe holds the sememe registry and the precomputed pairwise
// sememe similarity table.
package sememe

import (
	"fmt"
	"sort"
	"strings"
)

// Sememe is the smallest semantic unit, named in English and Chinese.
type Sememe struct {
	En   string
	Zh   string
	Freq int
}

// ID returns the bilingual "English|Chinese" id.
func (s Sememe) ID() string { return s.En + "|" + s.Zh }

func (s Sememe) String() string { return s.ID() }

// NormalizeID trims id and joins words of multi-word sememes with '_', the
// spelling used by the registry.
func NormalizeID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), " ", "_")
}

// ParseID splits a bilingual id at its first '|'.
func ParseID(id string) (Sememe, error) {
	en, zh, ok := strings.Cut(NormalizeID(id), "|")
	if !ok || en == "" || zh == "" {
		return Sememe{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return Sememe{En: en, Zh: zh}, nil
}

// Registry indexes sememes by id. It is built once and read-only afterwards.
type Registry struct {
	byID map[string]*Sememe
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Sememe)}
}

// Add registers s, replacing any sememe with the same id.
func (r *Registry) Add(s Sememe) {
	r.byID[s.ID()] = &s
}

// Get returns the sememe with the given id.
func (r *Registry) Get(id string) (*Sememe, bool) {
	s, ok := r.byID[NormalizeID(id)]
	return s, ok
}

func (r *Registry) Len() int { return len(r.byID) }

// All returns every id in sorted order.
func (r *Registry) All() []string {
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// FuzzyMatch returns the sorted ids containing q in either language.
func (r *Registry) FuzzyMatch(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	var out []string
	for id := range r.byID {
		if strings.Contains(id, q) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
