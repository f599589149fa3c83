package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ids"
)

// fakeGraph is a minimal render.Graph backed by plain maps, standing in for
// a project.ProjectGraph.
type fakeGraph struct {
	blocks    map[ids.BlockId]*block.Block
	byKind    map[block.Kind][]ids.BlockId
	relations *block.RelationMap
	symBlocks map[ids.SymId]ids.BlockId
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		blocks:    make(map[ids.BlockId]*block.Block),
		byKind:    make(map[block.Kind][]ids.BlockId),
		relations: block.NewRelationMap(),
		symBlocks: make(map[ids.SymId]ids.BlockId),
	}
}

func (g *fakeGraph) add(id ids.BlockId, kind block.Kind) {
	g.blocks[id] = &block.Block{Base: block.Base{ID: id, Kind: kind}}
	g.byKind[kind] = append(g.byKind[kind], id)
}

func (g *fakeGraph) BlocksByKind(kind block.Kind) []ids.BlockId { return g.byKind[kind] }
func (g *fakeGraph) Block(id ids.BlockId) *block.Block          { return g.blocks[id] }
func (g *fakeGraph) Relations() *block.RelationMap              { return g.relations }
func (g *fakeGraph) SymbolBlock(id ids.SymId) (ids.BlockId, bool) {
	b, ok := g.symBlocks[id]
	return b, ok
}

func TestCollect_CallerCalleeEdge(t *testing.T) {
	g := newFakeGraph()
	g.add(1, block.KindFunc)
	g.add(2, block.KindFunc)
	g.relations.Insert(1, 2, block.RelCalls)

	edges := Collect(g)
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{From: 1, To: 2, FromLabel: "caller", ToLabel: "callee"}, edges[0])
}

func TestCollect_DeterministicOrdering(t *testing.T) {
	g := newFakeGraph()
	g.add(1, block.KindFunc)
	g.add(2, block.KindFunc)
	g.add(3, block.KindFunc)
	g.relations.Insert(3, 1, block.RelCalls)
	g.relations.Insert(1, 2, block.RelCalls)

	first := Collect(g)
	second := Collect(g)
	assert.Equal(t, first, second)
	assert.Equal(t, ids.BlockId(1), first[0].From)
	assert.Equal(t, ids.BlockId(3), first[1].From)
}

func TestCollect_UsesOnFuncToClassProducesTypeDepEdge(t *testing.T) {
	g := newFakeGraph()
	g.add(1, block.KindFunc)
	g.add(2, block.KindClass)
	g.relations.Insert(1, 2, block.RelUses)

	edges := Collect(g)
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{From: 1, To: 2, FromLabel: "func", ToLabel: "type_dep"}, edges[0])
}

func TestCollect_TypeDepSuppressedByMoreSpecificExtendsEdge(t *testing.T) {
	g := newFakeGraph()
	g.add(1, block.KindFunc)
	g.add(2, block.KindClass)
	g.relations.Insert(1, 2, block.RelUses)
	g.relations.Insert(1, 2, block.RelExtends)

	edges := Collect(g)
	var labels []string
	for _, e := range edges {
		labels = append(labels, e.FromLabel)
	}
	assert.Contains(t, labels, "base")
	assert.NotContains(t, labels, "func")
}

func TestCollect_TypeArgEdgeIsReversed(t *testing.T) {
	g := newFakeGraph()
	g.add(1, block.KindClass) // container
	g.add(2, block.KindClass) // type argument
	g.symBlocks[99] = 2
	g.blocks[1].TypeDeps = []ids.SymId{99}

	edges := Collect(g)
	require.Len(t, edges, 1)
	assert.Equal(t, ids.BlockId(2), edges[0].From)
	assert.Equal(t, ids.BlockId(1), edges[0].To)
}

func TestDOT_RoundTripDeterministic(t *testing.T) {
	g := newFakeGraph()
	g.add(1, block.KindFunc)
	g.add(2, block.KindFunc)
	g.relations.Insert(1, 2, block.RelCalls)

	dot1 := DesignGraph(g)
	dot2 := DesignGraph(g)
	assert.Equal(t, dot1, dot2)
	assert.Contains(t, dot1, "digraph design {")
	assert.Contains(t, dot1, "block_1 -> block_2")
}

func TestArchGraph_ExcludesCallEdges(t *testing.T) {
	g := newFakeGraph()
	g.add(1, block.KindFunc)
	g.add(2, block.KindFunc)
	g.add(3, block.KindClass)
	g.relations.Insert(1, 2, block.RelCalls)
	g.relations.Insert(1, 3, block.RelExtends)

	arch := ArchGraph(g)
	assert.NotContains(t, arch, "block_1 -> block_2")
	assert.Contains(t, arch, "block_1 -> block_3")
}
