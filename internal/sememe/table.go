package sememe

import "fmt"

type pair struct {
	a, b string
}

// Table maps unordered sememe pairs to a similarity in [0,1]. Each pair is
// stored once, under the ordering it was set with.
type Table struct {
	sims map[pair]float64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{sims: make(map[pair]float64)}
}

// Set records the similarity of a and b. A later Set of (b, a) adds a second
// entry; Lookup prefers the (a, b) ordering it is called with.
func (t *Table) Set(a, b string, sim float64) {
	t.sims[pair{a, b}] = sim
}

// Lookup returns the similarity of a and b, trying (a, b) then (b, a).
func (t *Table) Lookup(a, b string) (float64, error) {
	if v, ok := t.sims[pair{a, b}]; ok {
		return v, nil
	}
	if v, ok := t.sims[pair{b, a}]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: (%s, %s)", ErrMissingPair, a, b)
}

func (t *Table) Len() int { return len(t.sims) }

// Range calls fn for every stored entry until fn returns false.
func (t *Table) Range(fn func(a, b string, sim float64) bool) {
	for p, v := range t.sims {
		if !fn(p.a, p.b, v) {
			return
		}
	}
}
