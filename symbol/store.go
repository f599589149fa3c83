package symbol

import "github.com/viant/llmcc/ids"

// Store is the symbol map of spec.md §4.2 (`SymId → &Symbol`).
type Store struct {
	arena *ids.Arena[*Symbol]
}

// NewStore creates an empty symbol store.
func NewStore(capHint int) *Store {
	s := &Store{arena: ids.NewArena[*Symbol](capHint + 1)}
	s.arena.Alloc(nil) // index 0 unused, symbol ids start at 1
	return s
}

// Alloc reserves a fresh SymId for sym, sets sym.ID, and inserts it.
func (s *Store) Alloc(sym *Symbol) ids.SymId {
	idx := s.arena.Alloc(sym)
	id := ids.SymId(idx)
	sym.ID = id
	return id
}

// Get resolves id to its symbol. Implements symbol.Resolver.
func (s *Store) Get(id ids.SymId) (*Symbol, bool) {
	if id == 0 || int(id) >= s.arena.Len() {
		return nil, false
	}
	sym := s.arena.Get(int(id))
	return sym, sym != nil
}

// Len reports how many real symbols (excluding the reserved zero slot) exist.
func (s *Store) Len() int { return s.arena.Len() - 1 }

// Each visits every real symbol in allocation order.
func (s *Store) Each(fn func(id ids.SymId, sym *Symbol)) {
	s.arena.Each(func(idx int, sym *Symbol) {
		if idx == 0 {
			return
		}
		fn(ids.SymId(idx), sym)
	})
}
