package similarity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kamusis/sememe-cli/internal/kdml"
	"github.com/kamusis/sememe-cli/internal/lexicon"
)

// Bundle is everything a query needs. Trees may be nil or partial; missing
// sense trees are parsed from the lexicon when the engine is built.
type Bundle struct {
	Lexicon *lexicon.Lexicon
	Table   Lookuper
	Trees   map[string]*kdml.Tree
}

// Options tunes nearest-neighbour search.
type Options struct {
	// Workers bounds the goroutines scoring candidates. Zero means GOMAXPROCS.
	Workers int
	// MinNo excludes candidate senses numbered below it.
	MinNo int
	Logger *slog.Logger
}

// Engine answers similarity queries over a loaded bundle. The zero value is
// a valid engine that is not initialized.
type Engine struct {
	bundle *Bundle
	opts   Options
}

// Neighbour is one ranked candidate.
type Neighbour struct {
	Sense *lexicon.Sense
	Score float64
}

// Result holds the neighbours of one sense of the query word.
type Result struct {
	Sense      *lexicon.Sense
	Neighbours []Neighbour
	// Skipped counts candidates that could not be scored.
	Skipped int
}

// New returns a ready engine.
func New(b Bundle, opts Options) (*Engine, error) {
	if b.Lexicon == nil {
		return nil, errors.New("bundle has no lexicon")
	}
	if b.Table == nil {
		return nil, errors.New("bundle has no similarity table")
	}
	trees := make(map[string]*kdml.Tree, b.Lexicon.Len())
	for no, t := range b.Trees {
		trees[no] = t
	}
	for _, s := range b.Lexicon.Senses() {
		if _, ok := trees[s.No]; !ok {
			trees[s.No] = s.Tree()
		}
	}
	b.Trees = trees

	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{bundle: &b, opts: opts}, nil
}

// Ready reports whether queries can be answered.
func (e *Engine) Ready() bool {
	return e != nil && e.bundle != nil
}

// Lexicon returns the loaded lexicon, or nil when not initialized.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	if !e.Ready() {
		return nil
	}
	return e.bundle.Lexicon
}

// SenseTree returns the tree of the sense numbered no.
func (e *Engine) SenseTree(no string) (*kdml.Tree, error) {
	if !e.Ready() {
		return nil, ErrNotInitialized
	}
	t, ok := e.bundle.Trees[no]
	if !ok {
		return nil, fmt.Errorf("sense %s: %w", no, ErrNotFound)
	}
	return t, nil
}

func (e *Engine) senses(word string) ([]*lexicon.Sense, error) {
	if !e.Ready() {
		return nil, ErrNotInitialized
	}
	ss := e.bundle.Lexicon.Get(word, lexicon.LangAny)
	if len(ss) == 0 {
		return nil, fmt.Errorf("%s: %w", word, ErrNotFound)
	}
	return ss, nil
}

// Similarity compares two senses by number.
func (e *Engine) Similarity(no0, no1 string) (float64, error) {
	t0, err := e.SenseTree(no0)
	if err != nil {
		return 0, err
	}
	t1, err := e.SenseTree(no1)
	if err != nil {
		return 0, err
	}
	return TreeSimilarity(t0, t1, e.bundle.Table)
}

// WordSimilarity returns the best score over every pair of senses of w0 and
// w1. A missing table entry fails the whole query.
func (e *Engine) WordSimilarity(w0, w1 string) (float64, error) {
	s0, err := e.senses(w0)
	if err != nil {
		return 0, err
	}
	s1, err := e.senses(w1)
	if err != nil {
		return 0, err
	}

	best := -1.0
	for _, a := range s0 {
		for _, b := range s1 {
			sim, err := e.Similarity(a.No, b.No)
			if err != nil {
				return 0, fmt.Errorf("%s vs %s: %w", a, b, err)
			}
			if sim > best {
				best = sim
			}
		}
	}
	return best, nil
}

// Nearest returns, for each sense of word, the k most similar senses of
// other words. Ties keep sense-number order. Candidates that fail to score
// are logged and skipped.
func (e *Engine) Nearest(ctx context.Context, word string, k int) ([]Result, error) {
	query, err := e.senses(word)
	if err != nil {
		return nil, err
	}

	banned := make(map[string]struct{}, len(query))
	for _, s := range query {
		banned[s.No] = struct{}{}
	}
	var candidates []*lexicon.Sense
	for _, s := range e.bundle.Lexicon.Senses() {
		if _, ok := banned[s.No]; ok {
			continue
		}
		if e.opts.MinNo > 0 && s.Number() < e.opts.MinNo {
			continue
		}
		candidates = append(candidates, s)
	}

	out := make([]Result, 0, len(query))
	for _, q := range query {
		res, err := e.rank(ctx, q, candidates, k)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (e *Engine) rank(ctx context.Context, q *lexicon.Sense, candidates []*lexicon.Sense, k int) (Result, error) {
	qt := e.bundle.Trees[q.No]
	scores := make([]float64, len(candidates))
	ok := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(candidates) + e.opts.Workers - 1) / e.opts.Workers
	for lo := 0; lo < len(candidates); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(candidates))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				c := candidates[i]
				sim, err := TreeSimilarity(qt, e.bundle.Trees[c.No], e.bundle.Table)
				if err != nil {
					e.opts.Logger.Warn("skipping candidate",
						slog.String("sense", q.No),
						slog.String("candidate", c.No),
						slog.Any("error", err))
					continue
				}
				scores[i], ok[i] = sim, true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Sense: q}
	ranked := make([]Neighbour, 0, len(candidates))
	for i, c := range candidates {
		if !ok[i] {
			res.Skipped++
			continue
		}
		ranked = append(ranked, Neighbour{Sense: c, Score: scores[i]})
	}
	SortNeighbours(ranked)
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	res.Neighbours = ranked
	return res, nil
}

// SortNeighbours sorts by score, descending. Equal scores keep their order.
func SortNeighbours(ns []Neighbour) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].Score > ns[j].Score
	})
}
