package scope

import "github.com/viant/llmcc/ids"

// Store is the scope map of spec.md §4.2 (`ScopeId → &Scope`), and
// implements the scope.Provider interface consumed by Stack.
type Store struct {
	arena *ids.Arena[*Scope]
}

// NewStore creates an empty scope store.
func NewStore(capHint int) *Store {
	s := &Store{arena: ids.NewArena[*Scope](capHint + 1)}
	s.arena.Alloc(nil) // index 0 unused, scope ids start at 1
	return s
}

// Alloc reserves a fresh ScopeId for sc, sets sc.ID, and inserts it.
func (s *Store) Alloc(sc *Scope) ids.ScopeId {
	idx := s.arena.Alloc(sc)
	id := ids.ScopeId(idx)
	sc.ID = id
	return id
}

// Scope resolves id to its Scope, or nil if unknown. Implements Provider.
func (s *Store) Scope(id ids.ScopeId) *Scope {
	if id == 0 || int(id) >= s.arena.Len() {
		return nil
	}
	return s.arena.Get(int(id))
}

// Len reports how many real scopes (excluding the reserved zero slot) exist.
func (s *Store) Len() int { return s.arena.Len() - 1 }

// Each visits every real scope in allocation order.
func (s *Store) Each(fn func(id ids.ScopeId, sc *Scope)) {
	s.arena.Each(func(idx int, sc *Scope) {
		if idx == 0 {
			return
		}
		fn(ids.ScopeId(idx), sc)
	})
}
