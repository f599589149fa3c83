// Package render implements the edge collectors and DOT serialization of
// spec.md §4.11: projecting a ProjectGraph's relations into labeled design
// and architecture graphs. DOT syntax itself is not contractual beyond
// deterministic ordering and stable node identity (spec.md §6).
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ids"
)

// Edge is one labeled edge produced by an edge collector.
type Edge struct {
	From      ids.BlockId
	To        ids.BlockId
	FromLabel string
	ToLabel   string
}

type edgeKey struct {
	from, to ids.BlockId
	label    string
}

// Graph owns the source it was queried against, so Adjacency can be
// implemented without importing package project (spec.md §9's
// accept-interfaces note, mirrored from rank.Adjacency).
type Graph interface {
	BlocksByKind(kind block.Kind) []ids.BlockId
	Block(id ids.BlockId) *block.Block
	Relations() *block.RelationMap
	// SymbolBlock resolves a symbol (e.g. a generic type argument recorded
	// in a block's TypeDeps) to the block it owns, if any.
	SymbolBlock(id ids.SymId) (ids.BlockId, bool)
}

// collectorRule is one row of spec.md §4.11's edge-collector table.
type collectorRule struct {
	label           string
	fromLabel       string
	toLabel         string
	compose         func(g Graph, id ids.BlockId) []ids.BlockId
	sourceBlockKind block.Kind
	hasSourceKind   bool
	// reversed swaps compose's (id, result) pair when the table's
	// direction column runs opposite to the relation being walked — only
	// type_arg needs this: TypeDeps is recorded on the container, but the
	// edge points argument → container.
	reversed bool
}

func composeVia(rel1, rel2 block.Relation) func(Graph, ids.BlockId) []ids.BlockId {
	return func(g Graph, id ids.BlockId) []ids.BlockId {
		var out []ids.BlockId
		for _, mid := range g.Relations().Out(id, rel1) {
			out = append(out, g.Relations().Out(mid, rel2)...)
		}
		return out
	}
}

func direct(rel block.Relation) func(Graph, ids.BlockId) []ids.BlockId {
	return func(g Graph, id ids.BlockId) []ids.BlockId {
		return g.Relations().Out(id, rel)
	}
}

// rules implements spec.md §4.11's table, in priority order: earlier rules
// suppress the generic type_dep edge between the same pair (more-specific
// labels win).
var rules = []collectorRule{
	{label: "field_type", fromLabel: "field_type", toLabel: "struct", compose: composeVia(block.RelHasField, block.RelTypeOf)},
	{label: "caller", fromLabel: "caller", toLabel: "callee", compose: direct(block.RelCalls)},
	{label: "input", fromLabel: "input", toLabel: "func", compose: composeVia(block.RelHasParameters, block.RelTypeOf)},
	{label: "func_output", fromLabel: "func", toLabel: "output", compose: composeVia(block.RelHasReturn, block.RelTypeOf)},
	{label: "trait_impl", fromLabel: "trait", toLabel: "impl", compose: composeVia(block.RelHasImpl, block.RelImplements)},
	{label: "interface_impl", fromLabel: "interface", toLabel: "implements", compose: direct(block.RelImplements), sourceBlockKind: block.KindClass, hasSourceKind: true},
	{label: "extends", fromLabel: "base", toLabel: "extends", compose: direct(block.RelExtends)},
	{label: "generic_bound", fromLabel: "bound", toLabel: "generic", compose: direct(block.RelUsedBy), sourceBlockKind: block.KindClass, hasSourceKind: true},
	{label: "type_dep", fromLabel: "func", toLabel: "type_dep", compose: usesTypeDep},
	{label: "type_arg", fromLabel: "type_arg", toLabel: "impl", compose: typeDepsEdge, reversed: true},
	{label: "decorates", fromLabel: "decorator", toLabel: "decorates", compose: direct(block.RelUses), sourceBlockKind: block.KindClass, hasSourceKind: true},
}

// usesTypeDep implements spec.md §4.11's "Uses on fn where target ∈
// {Class, Enum, Trait} and no more-specific edge exists" row.
func usesTypeDep(g Graph, id ids.BlockId) []ids.BlockId {
	blk := g.Block(id)
	if blk == nil || blk.Kind != block.KindFunc {
		return nil
	}
	var out []ids.BlockId
	for _, to := range g.Relations().Out(id, block.RelUses) {
		if target := g.Block(to); target != nil && target.Kind == block.KindClass {
			out = append(out, to)
		}
	}
	return out
}

// typeDepsEdge implements the "type_deps on class/enum" row: each block's
// explicit TypeDeps list (generic/impl type arguments) becomes an edge from
// the argument's block to the container.
func typeDepsEdge(g Graph, id ids.BlockId) []ids.BlockId {
	blk := g.Block(id)
	if blk == nil {
		return nil
	}
	var out []ids.BlockId
	for _, arg := range blk.TypeDeps {
		if argBlock, ok := g.SymbolBlock(arg); ok {
			out = append(out, argBlock)
		}
	}
	return out
}

// Collect produces the deduplicated, ordered edge set of spec.md §4.11 over
// every block in g, in ascending BlockId order for determinism.
func Collect(g Graph) []Edge {
	seen := make(map[edgeKey]bool)
	var out []Edge

	var allBlocks []ids.BlockId
	for _, k := range []block.Kind{
		block.KindRoot, block.KindClass, block.KindFunc, block.KindField,
		block.KindImpl, block.KindStmt, block.KindCall, block.KindScope,
	} {
		allBlocks = append(allBlocks, g.BlocksByKind(k)...)
	}
	sort.Slice(allBlocks, func(i, j int) bool { return allBlocks[i] < allBlocks[j] })

	for _, id := range allBlocks {
		blk := g.Block(id)
		if blk == nil {
			continue
		}

		for _, rule := range rules {
			if rule.hasSourceKind && blk.Kind != rule.sourceBlockKind {
				continue
			}
			for _, to := range rule.compose(g, id) {
				from, to := id, to
				if rule.reversed {
					from, to = to, from
				}
				key := edgeKey{from: from, to: to, label: rule.label}
				if seen[key] {
					continue
				}
				// suppress a generic type_dep edge once a more-specific
				// labeled edge already connects the same pair.
				if rule.label == "type_dep" {
					suppressed := false
					for _, other := range rules {
						if other.label == "type_dep" {
							break
						}
						if seen[edgeKey{from: id, to: to, label: other.label}] {
							suppressed = true
							break
						}
					}
					if suppressed {
						continue
					}
				}
				seen[key] = true
				out = append(out, Edge{From: from, To: to, FromLabel: rule.fromLabel, ToLabel: rule.toLabel})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// nodeLabel formats a block's DOT node identity, stable across invocations
// (spec.md §6): "block_<id>".
func nodeLabel(id ids.BlockId) string {
	return fmt.Sprintf("block_%d", uint32(id))
}

// DOT renders edges as a DOT digraph. Node identity is the block id;
// edge labels are attached as from= and to= attributes.
func DOT(name string, edges []Edge) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)
	for _, e := range edges {
		fmt.Fprintf(&b, "  %s -> %s [from=%q, to=%q];\n",
			nodeLabel(e.From), nodeLabel(e.To), e.FromLabel, e.ToLabel)
	}
	b.WriteString("}\n")
	return b.String()
}

// DesignGraph renders the full relation-based edge set (spec.md §4.9's
// render_design_graph).
func DesignGraph(g Graph) string {
	return DOT("design", Collect(g))
}

// ArchGraph renders the type-flow subset of edges relevant to architecture
// diagrams: field/parameter/return type flow, implements/extends, and
// generic instantiation, excluding plain call edges (spec.md §4.9's
// render_arch_graph).
func ArchGraph(g Graph) string {
	all := Collect(g)
	var filtered []Edge
	for _, e := range all {
		if e.FromLabel == "caller" || e.ToLabel == "callee" {
			continue
		}
		filtered = append(filtered, e)
	}
	return DOT("architecture", filtered)
}
