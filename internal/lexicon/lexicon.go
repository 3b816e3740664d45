package lexicon

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/kamusis/sememe-cli/internal/sememe"
)

// Lang restricts a lookup to one vocabulary.
type Lang int

const (
	LangAny Lang = iota
	LangEn
	LangZh
)

// ParseLang maps "en", "zh" and "" to a Lang.
func ParseLang(s string) (Lang, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return LangAny, true
	case "en":
		return LangEn, true
	case "zh":
		return LangZh, true
	}
	return LangAny, false
}

// Lexicon is a read-only index over a fixed set of senses.
type Lexicon struct {
	senses []*Sense
	byNo   map[string]*Sense
	en     map[string][]*Sense
	zh     map[string][]*Sense
}

// New indexes senses. Senses sharing a word keep their sense-number order.
func New(senses []*Sense) *Lexicon {
	l := &Lexicon{
		senses: make([]*Sense, len(senses)),
		byNo:   make(map[string]*Sense, len(senses)),
		en:     make(map[string][]*Sense),
		zh:     make(map[string][]*Sense),
	}
	copy(l.senses, senses)
	sort.SliceStable(l.senses, func(i, j int) bool {
		return lessNo(l.senses[i], l.senses[j])
	})
	for _, s := range l.senses {
		l.byNo[s.No] = s
		if w := key(s.EnWord); w != "" {
			l.en[w] = append(l.en[w], s)
		}
		if w := key(s.ZhWord); w != "" {
			l.zh[w] = append(l.zh[w], s)
		}
	}
	return l
}

func lessNo(a, b *Sense) bool {
	na, nb := a.Number(), b.Number()
	if na != nb {
		return na < nb
	}
	return a.No < b.No
}

// key is the lookup form of a word: trimmed and NFC-normalized. HowNet is
// case sensitive, so case is kept.
func key(w string) string {
	return norm.NFC.String(strings.TrimSpace(w))
}

// Get returns the senses of word. LangAny tries English words, then Chinese
// words, then sense numbers, and returns the first hit.
func (l *Lexicon) Get(word string, lang Lang) []*Sense {
	w := key(word)
	switch lang {
	case LangEn:
		return l.en[w]
	case LangZh:
		return l.zh[w]
	}
	if s, ok := l.en[w]; ok {
		return s
	}
	if s, ok := l.zh[w]; ok {
		return s
	}
	if s, ok := l.byNo[w]; ok {
		return []*Sense{s}
	}
	return nil
}

// Has reports whether word is annotated.
func (l *Lexicon) Has(word string, lang Lang) bool {
	return len(l.Get(word, lang)) > 0
}

// Sense returns the sense numbered no.
func (l *Lexicon) Sense(no string) (*Sense, bool) {
	s, ok := l.byNo[no]
	return s, ok
}

// Senses returns every sense ordered by sense number.
func (l *Lexicon) Senses() []*Sense { return l.senses }

func (l *Lexicon) Len() int { return len(l.senses) }

func (l *Lexicon) EnWords() []string { return sortedKeys(l.en) }

func (l *Lexicon) ZhWords() []string { return sortedKeys(l.zh) }

// SensesBySememe returns the senses annotated with any sememe of reg whose
// id contains q, ordered by sense number.
func (l *Lexicon) SensesBySememe(reg *sememe.Registry, q string) []*Sense {
	ids := reg.FuzzyMatch(q)
	if len(ids) == 0 {
		return nil
	}
	want := mapset.NewThreadUnsafeSet(ids...)
	var out []*Sense
	for _, s := range l.senses {
		for _, id := range s.SememeList() {
			if want.Contains(id) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// MergeSememeLists unions the sememe lists of senses in order of first
// appearance.
func MergeSememeLists(senses []*Sense) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []string
	for _, s := range senses {
		for _, id := range s.SememeList() {
			if seen.Add(id) {
				out = append(out, id)
			}
		}
	}
	return out
}

func sortedKeys(m map[string][]*Sense) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
