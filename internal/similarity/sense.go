// Package similarity scores sememe trees against each other and ranks
// senses by the result.
package similarity

import (
	"fmt"

	"github.com/kamusis/sememe-cli/internal/kdml"
)

const (
	// delta is the contribution of each child left without a role partner.
	delta = 0.1

	betaRelationDefault = 0.3
	betaSememeDefault   = 0.7
)

// Lookuper returns the precomputed similarity of two sememe ids. It must
// treat the pair as unordered.
type Lookuper interface {
	Lookup(a, b string) (float64, error)
}

// SenseSimilarity compares the subtree of a at ai with the subtree of b at
// bi. Two leaves score exactly their base sememe similarity; otherwise the
// score mixes the children's structural similarity with the base sememe
// similarity of ai and bi.
func SenseSimilarity(a *kdml.Tree, ai kdml.NodeID, b *kdml.Tree, bi kdml.NodeID, table Lookuper) (float64, error) {
	betaRelation, betaSememe := betaRelationDefault, betaSememeDefault
	var relationSim float64
	if a.IsLeaf(ai) && b.IsLeaf(bi) {
		betaRelation, betaSememe = 0, 1
	} else {
		var err error
		relationSim, err = relationSimilarity(a, ai, b, bi, table)
		if err != nil {
			return 0, err
		}
	}

	sememeSim, err := table.Lookup(a.Label(ai), b.Label(bi))
	if err != nil {
		return 0, err
	}
	return betaRelation*relationSim + betaSememe*sememeSim, nil
}

// TreeSimilarity compares two sense trees. The synthetic roots carry a word,
// not a sememe, so the root pair scores its structural term alone.
func TreeSimilarity(a, b *kdml.Tree, table Lookuper) (float64, error) {
	if a.IsLeaf(a.Root()) && b.IsLeaf(b.Root()) {
		return 0, ErrEmptyTree
	}
	return relationSimilarity(a, a.Root(), b, b.Root(), table)
}

// relationSimilarity pairs children first-fit by equal role and averages
// over the N - matched slots: one per matched pair, one per unmatched child.
func relationSimilarity(a *kdml.Tree, ai kdml.NodeID, b *kdml.Tree, bi kdml.NodeID, table Lookuper) (float64, error) {
	ka, kb := a.Children(ai), b.Children(bi)
	n := len(ka) + len(kb)
	usedA := make([]bool, len(ka))
	usedB := make([]bool, len(kb))

	var sim float64
	matched := 0
	for i, ca := range ka {
		for j, cb := range kb {
			if usedA[i] || usedB[j] || a.Role(ca) != b.Role(cb) {
				continue
			}
			usedA[i], usedB[j] = true, true
			matched++
			s, err := SenseSimilarity(a, ca, b, cb, table)
			if err != nil {
				return 0, err
			}
			sim += s
		}
	}
	sim += float64(n-2*matched) * delta

	slots := n - matched
	if slots <= 0 {
		return 0, fmt.Errorf("%w: %q vs %q", ErrDegenerate, a.Label(ai), b.Label(bi))
	}
	return sim / float64(slots), nil
}
