package similarity

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sememe-cli/internal/kdml"
	"github.com/kamusis/sememe-cli/internal/sememe"
)

const (
	richHuman = "{human|人:{own|有:possession={wealth|钱财},possessor={~}},modifier={rich|富}}"
	poorHuman = "{human|人:modifier={poor|穷}}"
)

func firstChild(t *kdml.Tree) kdml.NodeID { return t.Children(t.Root())[0] }

func TestSenseSimilarity_LeafPairIsBaseSimilarity(t *testing.T) {
	tab := sememe.NewTable()
	tab.Set("fruit|水果", "tree|树", 0.4)

	a := kdml.Parse("{fruit|水果}", "水果")
	b := kdml.Parse("{tree|树}", "树")

	got, err := SenseSimilarity(a, firstChild(a), b, firstChild(b), tab)
	require.NoError(t, err)
	assert.Equal(t, 0.4, got)
}

func TestTreeSimilarity_IdenticalTreesScoreOne(t *testing.T) {
	tab := sememe.NewTable()
	for _, id := range []string{"human|人", "own|有", "wealth|钱财", "rich|富"} {
		tab.Set(id, id, 1)
	}
	a := kdml.Parse(richHuman, "富人")
	b := kdml.Parse(richHuman, "富人")

	got, err := TreeSimilarity(a, b, tab)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	tab2 := sememe.NewTable()
	tab2.Set("place|地方", "place|地方", 1)
	tab2.Set("city|市", "city|市", 1)
	tab2.Set("county|县", "county|县", 1)
	c := kdml.Parse("{place|地方:PlaceSect={city|市}};{place|地方:PlaceSect={county|县}}", "市县")
	got, err = TreeSimilarity(c, c, tab2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestTreeSimilarity_UnmatchedChildrenArePenalized(t *testing.T) {
	tab := sememe.NewTable()
	tab.Set("human|人", "human|人", 1)
	tab.Set("rich|富", "poor|穷", 0.2)

	a := kdml.Parse(richHuman, "富人")
	b := kdml.Parse(poorHuman, "穷人")

	// human vs human: rich/poor pair by role (0.2), own is unmatched (0.1),
	// two slots -> 0.15; 0.3*0.15 + 0.7*1.
	got, err := TreeSimilarity(a, b, tab)
	require.NoError(t, err)
	assert.InDelta(t, 0.745, got, 1e-12)

	back, err := TreeSimilarity(b, a, tab)
	require.NoError(t, err)
	assert.Equal(t, got, back)
}

func TestTreeSimilarity_MissingPairFails(t *testing.T) {
	tab := sememe.NewTable()
	tab.Set("human|人", "human|人", 1)

	_, err := TreeSimilarity(kdml.Parse(richHuman, "a"), kdml.Parse(poorHuman, "b"), tab)
	require.Error(t, err)
	assert.ErrorIs(t, err, sememe.ErrMissingPair)
}

func TestTreeSimilarity_EmptyTrees(t *testing.T) {
	_, err := TreeSimilarity(kdml.Parse("", "a"), kdml.Parse("RMK=x", "b"), sememe.NewTable())
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestRelationSimilarity_LeafPairIsDegenerate(t *testing.T) {
	a := kdml.Parse("{fruit|水果}", "a")
	b := kdml.Parse("{tree|树}", "b")
	_, err := relationSimilarity(a, firstChild(a), b, firstChild(b), sememe.NewTable())
	assert.ErrorIs(t, err, ErrDegenerate)
}

// hashTable scores every pair of ids deterministically in [0,1], 1 on the
// diagonal.
type hashTable struct{}

func (hashTable) Lookup(a, b string) (float64, error) {
	if a == b {
		return 1, nil
	}
	if a > b {
		a, b = b, a
	}
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s/%s", a, b)
	return float64(h.Sum32()%1000) / 999, nil
}

func TestTreeSimilarity_SymmetricAndBounded(t *testing.T) {
	defs := []string{
		"{fruit|水果}",
		richHuman,
		poorHuman,
		"{place|地方:PlaceSect={city|市}};{place|地方:PlaceSect={county|县}}",
		"{InstitutePlace|场所:domain={economy|经济},{buy|买:location={~}},{sell|卖:location={~}}}",
		"{tool|用具:{cut|切削:instrument={~},patient={part|部件}}}",
		"{information|信息:{ExpressAgainst|谴责:content={~},patient={?}}}",
		"{attribute|属性:host={$}}",
	}
	trees := make([]*kdml.Tree, len(defs))
	for i, d := range defs {
		trees[i] = kdml.Parse(d, fmt.Sprintf("w%d", i))
	}

	for i := range trees {
		for j := range trees {
			ab, err := TreeSimilarity(trees[i], trees[j], hashTable{})
			require.NoError(t, err)
			ba, err := TreeSimilarity(trees[j], trees[i], hashTable{})
			require.NoError(t, err)

			assert.InDelta(t, ab, ba, 1e-12, "pair %d/%d", i, j)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0+1e-12)
			if i == j {
				assert.InDelta(t, 1.0, ab, 1e-12, "self similarity of %d", i)
			}
		}
	}
}
