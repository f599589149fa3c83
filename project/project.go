// Package project implements the ProjectGraph of spec.md §4.9: aggregation
// of per-unit block graphs, cross-unit linking, indexed lookups, traversal,
// and the rank.Adjacency view the ranker consumes.
package project

import (
	"sort"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ctxt"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/rank"
)

// blockInfo is the index row of spec.md §4.9's "BlockId → (unit, name, kind)".
type blockInfo struct {
	unit int
	name string
	kind block.Kind
	path string
}

// ProjectGraph aggregates every compile unit's block tree and relation map
// into one project-wide, queryable graph.
type ProjectGraph struct {
	c         *ctxt.CompileCtxt
	relations *block.RelationMap

	byID    map[ids.BlockId]blockInfo
	byName  map[string][]ids.BlockId
	byKind  map[block.Kind][]ids.BlockId
	byUnit  map[int][]ids.BlockId
	roots   map[int]ids.BlockId
}

// Build constructs a ProjectGraph from c's populated arenas: every unit
// must already have been collected, bound, and block-built (the caller
// drives those phases, typically via internal/parallel). unitRoots maps
// each unit index to its root BlockId (block.Builder.Build's return).
func Build(c *ctxt.CompileCtxt, unitRoots map[int]ids.BlockId, relations *block.RelationMap) *ProjectGraph {
	g := &ProjectGraph{
		c:         c,
		relations: relations,
		byID:      make(map[ids.BlockId]blockInfo),
		byName:    make(map[string][]ids.BlockId),
		byKind:    make(map[block.Kind][]ids.BlockId),
		byUnit:    make(map[int][]ids.BlockId),
		roots:     unitRoots,
	}

	c.Blocks.Each(func(id ids.BlockId, blk *block.Block) {
		unit := g.unitOf(blk)
		name := g.nameOf(blk)
		info := blockInfo{unit: unit, name: name, kind: blk.Kind}
		if u := c.Unit(unit); u != nil {
			info.path = u.Path
		}
		g.byID[id] = info
		g.byName[name] = append(g.byName[name], id)
		g.byKind[blk.Kind] = append(g.byKind[blk.Kind], id)
		g.byUnit[unit] = append(g.byUnit[unit], id)
	})

	for _, bucket := range g.byName {
		sortBlockIDs(bucket)
	}
	for _, bucket := range g.byKind {
		sortBlockIDs(bucket)
	}
	for _, bucket := range g.byUnit {
		sortBlockIDs(bucket)
	}

	return g
}

func sortBlockIDs(ids_ []ids.BlockId) {
	sort.Slice(ids_, func(i, j int) bool { return ids_[i] < ids_[j] })
}

func (g *ProjectGraph) unitOf(blk *block.Block) int {
	if blk.HasSymbol {
		if sym, ok := g.c.Symbol(blk.Symbol); ok && sym.HasUnit {
			return sym.UnitIndex
		}
	}
	// walk up to the owning root block, whose unit is known by construction
	cur := blk
	for cur.HasParent {
		parent := g.c.Blocks.Get(cur.Parent)
		if parent == nil {
			break
		}
		cur = parent
	}
	for unit, root := range g.roots {
		if root == cur.ID {
			return unit
		}
	}
	return -1
}

func (g *ProjectGraph) nameOf(blk *block.Block) string {
	if blk.HasSymbol {
		if sym, ok := g.c.Symbol(blk.Symbol); ok {
			return sym.Name
		}
	}
	return ""
}

// BlocksByName returns every block named name, across all units.
func (g *ProjectGraph) BlocksByName(name string) []ids.BlockId {
	return g.byName[name]
}

// BlocksByKind returns every block of the given kind.
func (g *ProjectGraph) BlocksByKind(kind block.Kind) []ids.BlockId {
	return g.byKind[kind]
}

// BlocksIn returns every block belonging to the given unit index.
func (g *ProjectGraph) BlocksIn(unit int) []ids.BlockId {
	return g.byUnit[unit]
}

// Relations exposes the merged relation map for callers (renderer, ranker
// adjacency) that need direct edge access.
func (g *ProjectGraph) Relations() *block.RelationMap { return g.relations }

// Block resolves id to its stored *block.Block, or nil if unknown.
func (g *ProjectGraph) Block(id ids.BlockId) *block.Block { return g.c.Blocks.Get(id) }

// FindRelatedBlocks is spec.md §4.9's find_related_blocks: the union of
// direct relation edges and their reverse counterparts.
func (g *ProjectGraph) FindRelatedBlocks(id ids.BlockId, relations []block.Relation) []ids.BlockId {
	return g.relations.Related(id, relations)
}

// FindDependsRecursive returns the transitive closure of DependsOn edges
// from id, excluding id itself. Idempotent: re-running on the returned set
// yields the same union (spec.md §8).
func (g *ProjectGraph) FindDependsRecursive(id ids.BlockId) []ids.BlockId {
	return g.transitiveClosure(id, block.RelDependsOn)
}

// FindDependedRecursive is the DependedBy-direction analogue.
func (g *ProjectGraph) FindDependedRecursive(id ids.BlockId) []ids.BlockId {
	return g.transitiveClosure(id, block.RelDependedBy)
}

func (g *ProjectGraph) transitiveClosure(start ids.BlockId, rel block.Relation) []ids.BlockId {
	visited := map[ids.BlockId]bool{start: true}
	var out []ids.BlockId
	stack := []ids.BlockId{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.relations.Out(cur, rel) {
			if visited[next] {
				continue
			}
			visited[next] = true
			out = append(out, next)
			stack = append(stack, next)
		}
	}
	sortBlockIDs(out)
	return out
}

// TraverseBFS walks the closure of id over every outgoing relation edge
// plus contained child blocks, breadth-first, visiting each block once.
func (g *ProjectGraph) TraverseBFS(start ids.BlockId) []ids.BlockId {
	return g.traverse(start, true)
}

// TraverseDFS is the depth-first analogue of TraverseBFS.
func (g *ProjectGraph) TraverseDFS(start ids.BlockId) []ids.BlockId {
	return g.traverse(start, false)
}

func (g *ProjectGraph) neighboursOf(id ids.BlockId) []ids.BlockId {
	set := make(map[ids.BlockId]bool)
	for _, tos := range g.relations.AllFrom(id) {
		for _, to := range tos {
			set[to] = true
		}
	}
	if blk := g.c.Blocks.Get(id); blk != nil {
		for _, child := range blk.Children {
			set[child] = true
		}
	}
	out := make([]ids.BlockId, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sortBlockIDs(out)
	return out
}

func (g *ProjectGraph) traverse(start ids.BlockId, breadthFirst bool) []ids.BlockId {
	visited := map[ids.BlockId]bool{start: true}
	var order []ids.BlockId

	if breadthFirst {
		frontier := []ids.BlockId{start}
		for len(frontier) > 0 {
			var next []ids.BlockId
			for _, cur := range frontier {
				order = append(order, cur)
				for _, n := range g.neighboursOf(cur) {
					if visited[n] {
						continue
					}
					visited[n] = true
					next = append(next, n)
				}
			}
			frontier = next
		}
		return order
	}

	var walk func(ids.BlockId)
	walk = func(id ids.BlockId) {
		order = append(order, id)
		for _, n := range g.neighboursOf(id) {
			if visited[n] {
				continue
			}
			visited[n] = true
			walk(n)
		}
	}
	walk(start)
	return order
}

// Entries implements rank.Adjacency.
func (g *ProjectGraph) Entries() []rank.Node {
	var out []rank.Node
	ids_ := make([]ids.BlockId, 0, len(g.byID))
	for id := range g.byID {
		ids_ = append(ids_, id)
	}
	sortBlockIDs(ids_)
	for _, id := range ids_ {
		info := g.byID[id]
		out = append(out, rank.Node{
			UnitIndex: info.unit,
			BlockID:   id,
			Name:      info.name,
			Kind:      info.kind,
			FilePath:  info.path,
		})
	}
	return out
}

// Related implements rank.Adjacency.
func (g *ProjectGraph) Related(from ids.BlockId, rel block.Relation) []ids.BlockId {
	return g.relations.Out(from, rel)
}

// SymbolBlock implements render.Graph: resolves a symbol to the block it
// owns, if any.
func (g *ProjectGraph) SymbolBlock(id ids.SymId) (ids.BlockId, bool) {
	sym, ok := g.c.Symbol(id)
	if !ok || !sym.HasBlock {
		return 0, false
	}
	return sym.BlockID, true
}
