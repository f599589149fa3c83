package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ids"
)

// fakeAdjacency is a small, hand-built project graph stand-in: a cycle of
// three "classes" plus one isolated function, used to exercise Rank without
// needing a real ProjectGraph.
type fakeAdjacency struct {
	entries []Node
	edges   map[ids.BlockId][]ids.BlockId
}

func (f *fakeAdjacency) Entries() []Node { return f.entries }

func (f *fakeAdjacency) Related(from ids.BlockId, rel block.Relation) []ids.BlockId {
	if rel != block.RelDependsOn {
		return nil
	}
	return f.edges[from]
}

func cycleAdjacency() *fakeAdjacency {
	return &fakeAdjacency{
		entries: []Node{
			{BlockID: 1, Name: "A", Kind: block.KindClass},
			{BlockID: 2, Name: "B", Kind: block.KindClass},
			{BlockID: 3, Name: "C", Kind: block.KindClass},
			{BlockID: 4, Name: "Isolated", Kind: block.KindFunc},
		},
		edges: map[ids.BlockId][]ids.BlockId{
			1: {2},
			2: {3},
			3: {1},
		},
	}
}

func TestComputePageRank_SumsToApproximatelyOne(t *testing.T) {
	adjacency := [][]int{{1}, {2}, {0}}
	ranks, iterations, converged := computePageRank(adjacency, DefaultConfig())

	sum := 0.0
	for _, r := range ranks {
		sum += r
	}
	assert.InDelta(t, 1.0, sum, 1e-4)
	assert.True(t, converged)
	assert.Greater(t, iterations, 0)
}

func TestComputePageRank_SinkNodeRedistributes(t *testing.T) {
	// node 0 points to node 1, node 1 is a dangling sink.
	adjacency := [][]int{{1}, {}}
	ranks, _, _ := computePageRank(adjacency, DefaultConfig())

	sum := ranks[0] + ranks[1]
	assert.InDelta(t, 1.0, sum, 1e-4)
}

func TestRank_FiltersIsolatedNodes(t *testing.T) {
	result := Rank(cycleAdjacency(), DefaultConfig())

	assert.Equal(t, 4, result.TotalNodes)
	assert.Equal(t, 1, result.IsolatedNodesFiltered)
	for _, rb := range result.Blocks {
		assert.NotEqual(t, "Isolated", rb.Node.Name)
	}
	assert.Len(t, result.Blocks, 3)
}

func TestRank_StableOrderingDescendingCompositeThenName(t *testing.T) {
	result := Rank(cycleAdjacency(), DefaultConfig())
	require.Len(t, result.Blocks, 3)
	for i := 1; i < len(result.Blocks); i++ {
		prev, cur := result.Blocks[i-1], result.Blocks[i]
		if prev.Composite == cur.Composite {
			assert.Less(t, prev.Node.Name, cur.Node.Name)
		} else {
			assert.Greater(t, prev.Composite, cur.Composite)
		}
	}
}

func TestRank_SymmetricCycleYieldsEqualPageRank(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProximityEnabled = false
	result := Rank(cycleAdjacency(), cfg)

	require.Len(t, result.Blocks, 3)
	first := result.Blocks[0].PageRank
	for _, rb := range result.Blocks {
		assert.InDelta(t, first, rb.PageRank, 1e-6)
	}
}

func TestRank_EmptyGraphReturnsConvergedEmptyResult(t *testing.T) {
	result := Rank(&fakeAdjacency{}, DefaultConfig())
	assert.Empty(t, result.Blocks)
	assert.True(t, result.PageRankConverged)
}

func TestRank_NoInterestingKindsReturnsEmpty(t *testing.T) {
	adj := &fakeAdjacency{
		entries: []Node{{BlockID: 1, Name: "field", Kind: block.KindField}},
	}
	result := Rank(adj, DefaultConfig())
	assert.Empty(t, result.Blocks)
}

func TestResult_TopK(t *testing.T) {
	r := Result{Blocks: []RankedBlock{
		{Node: Node{Name: "A"}, Composite: 3},
		{Node: Node{Name: "B"}, Composite: 2},
		{Node: Node{Name: "C"}, Composite: 1},
	}}
	top := r.TopK(2)
	assert.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Node.Name)
	assert.Equal(t, "B", top[1].Node.Name)

	assert.Len(t, r.TopK(10), 3)
	assert.Len(t, r.TopK(-1), 3)
}

func TestKindWeight(t *testing.T) {
	assert.Equal(t, 2.0, kindWeight(block.KindClass))
	assert.Equal(t, 1.5, kindWeight(block.KindFunc))
	assert.Equal(t, 1.0, kindWeight(block.KindField))
}

func TestRelationToFollow_DependedByDirectionFlips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = DirectionDependedBy
	cfg.Relation = block.RelDependsOn
	assert.Equal(t, block.RelDependedBy, relationToFollow(cfg))
}
