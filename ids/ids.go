// Package ids defines the five monotonic integer id types that every other
// llmcc package refers to entities by (spec.md §3.1): HirId, ScopeId,
// SymId, BlockId, InternedStr. Keeping them in their own leaf package lets
// hir, scope, symbol and block refer to each other's entities by id
// without importing each other or the ctxt package that owns the arenas —
// only ids, never pointers, cross package boundaries (spec.md §9).
package ids

import (
	"fmt"
	"sync/atomic"
)

// HirId identifies a node in the HIR arena.
type HirId uint32

// ScopeId identifies a Scope.
type ScopeId uint32

// SymId identifies a Symbol.
type SymId uint32

// BlockId identifies a BasicBlock.
type BlockId uint32

// InternedStr identifies a string held by the InternPool.
type InternedStr uint32

// InvalidHirId marks the absence of a HIR parent (root nodes only).
const InvalidHirId HirId = 0

func (id HirId) String() string   { return fmt.Sprintf("hir#%d", uint32(id)) }
func (id ScopeId) String() string { return fmt.Sprintf("scope#%d", uint32(id)) }
func (id SymId) String() string   { return fmt.Sprintf("sym#%d", uint32(id)) }
func (id BlockId) String() string { return fmt.Sprintf("block#%d", uint32(id)) }

// Counter mints ids starting at 1, so the zero value of each id type can
// serve as a sentinel "unset" value. Safe for concurrent use: collection and
// binding run data-parallel per compile-unit (spec.md §5).
type Counter struct {
	next atomic.Uint32
}

// Next32 returns the next id value, starting at 1.
func (c *Counter) Next32() uint32 {
	return c.next.Add(1)
}
