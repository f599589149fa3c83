package rank

import "github.com/viant/llmcc/block"
import "github.com/viant/llmcc/ids"

// Node is one ranker candidate: a block plus the display metadata the
// renderer and CLI need (spec.md §4.10's GraphNode/BlockEntry).
type Node struct {
	UnitIndex int
	BlockID   ids.BlockId
	Name      string
	Kind      block.Kind
	FilePath  string
}

// Adjacency is the read-only view the ranker needs of a project graph —
// defined here, implemented by package project, so rank never imports
// project (spec.md §9's "accept interfaces" polymorphism note, applied to
// avoid a rank<->project import cycle).
type Adjacency interface {
	// Entries returns every ranker candidate, already sorted by BlockId so
	// ranking is deterministic given fixed adjacency (spec.md §5).
	Entries() []Node
	// Related returns the blocks `from` reaches via rel.
	Related(from ids.BlockId, rel block.Relation) []ids.BlockId
}
