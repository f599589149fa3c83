package block

import "github.com/viant/llmcc/ids"

// Store is the block map of spec.md §4.2 (block arenas + a block map).
type Store struct {
	arena *ids.Arena[*Block]
}

// NewStore creates an empty block store.
func NewStore(capHint int) *Store {
	s := &Store{arena: ids.NewArena[*Block](capHint + 1)}
	s.arena.Alloc(nil) // index 0 unused, block ids start at 1
	return s
}

// Alloc reserves a fresh BlockId for blk, sets blk.ID, and inserts it.
func (s *Store) Alloc(blk *Block) ids.BlockId {
	idx := s.arena.Alloc(blk)
	id := ids.BlockId(idx)
	blk.ID = id
	return id
}

// Get resolves id to its block, or nil if unknown.
func (s *Store) Get(id ids.BlockId) *Block {
	if id == 0 || int(id) >= s.arena.Len() {
		return nil
	}
	return s.arena.Get(int(id))
}

// Len reports how many real blocks (excluding the reserved zero slot) exist.
func (s *Store) Len() int { return s.arena.Len() - 1 }

// Each visits every real block in allocation order.
func (s *Store) Each(fn func(id ids.BlockId, blk *Block)) {
	s.arena.Each(func(idx int, blk *Block) {
		if idx == 0 {
			return
		}
		fn(ids.BlockId(idx), blk)
	})
}
