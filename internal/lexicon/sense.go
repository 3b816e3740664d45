// Package lexicon indexes HowNet senses by English word, Chinese word and
// sense number.
package lexicon

import (
	"strconv"

	"github.com/kamusis/sememe-cli/internal/kdml"
	"github.com/kamusis/sememe-cli/internal/sememe"
)

// Sense is one annotated word meaning.
type Sense struct {
	No        string `json:"no"`
	EnWord    string `json:"en_word"`
	EnGrammar string `json:"en_grammar"`
	ZhWord    string `json:"zh_word"`
	ZhGrammar string `json:"zh_grammar"`
	Def       string `json:"def"`
}

func (s *Sense) String() string { return "No." + s.No }

// Number returns No as an integer, or -1 when it is not numeric.
func (s *Sense) Number() int {
	n, err := strconv.Atoi(s.No)
	if err != nil {
		return -1
	}
	return n
}

// Tree parses the sense's definition, rooted at its Chinese word.
func (s *Sense) Tree() *kdml.Tree {
	return kdml.Parse(s.Def, s.ZhWord)
}

// SememeList returns the normalized ids of the sememes used by the sense's
// definition, in order of first appearance.
func (s *Sense) SememeList() []string {
	raw := kdml.Sememes(s.Def)
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		id := sememe.NormalizeID(r)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// BuildTrees parses every sense into the sense-tree corpus keyed by No.
func BuildTrees(senses []*Sense) map[string]*kdml.Tree {
	out := make(map[string]*kdml.Tree, len(senses))
	for _, s := range senses {
		out[s.No] = s.Tree()
	}
	return out
}
