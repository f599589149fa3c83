package hir

import "github.com/viant/llmcc/ids"

// Store is the HIR map of spec.md §4.2 (`HirId → HirNode`): a bump
// allocator over *Node addressed by ids.HirId, with index 0 reserved so
// ids.InvalidHirId never aliases a real node (mirrors ctxt.InternPool's
// reserved zero slot).
type Store struct {
	arena *ids.Arena[*Node]
}

// NewStore creates an empty HIR store.
func NewStore(capHint int) *Store {
	s := &Store{arena: ids.NewArena[*Node](capHint + 1)}
	s.arena.Alloc(nil) // index 0 == InvalidHirId
	return s
}

// Alloc reserves a fresh HirId for n, sets n.ID, and inserts it.
func (s *Store) Alloc(n *Node) ids.HirId {
	idx := s.arena.Alloc(n)
	id := ids.HirId(idx)
	n.ID = id
	return id
}

// Get resolves id to its node, or nil if id is invalid/unknown.
func (s *Store) Get(id ids.HirId) *Node {
	if id == ids.InvalidHirId || int(id) >= s.arena.Len() {
		return nil
	}
	return s.arena.Get(int(id))
}

// Len reports how many real nodes (excluding the reserved zero slot) exist.
func (s *Store) Len() int { return s.arena.Len() - 1 }

// Each visits every real node in allocation order.
func (s *Store) Each(fn func(id ids.HirId, n *Node)) {
	s.arena.Each(func(idx int, n *Node) {
		if idx == 0 {
			return
		}
		fn(ids.HirId(idx), n)
	})
}
