// Package scope implements the scope tree and ScopeStack of spec.md §3.4,
// §4.5: lexical scopes with parent chains, name-bucketed symbol tables, and
// stack-based lookup policies used by the collector and binder.
package scope

import (
	"sync"

	"github.com/viant/llmcc/ids"
)

// Scope owns a symbol table keyed by interned short name (a vector per name
// to support overloading/shadowing, spec.md §3.4) plus parent and child
// links for module/inheritance chaining.
type Scope struct {
	ID      ids.ScopeId
	Owner   ids.HirId // the HIR node that introduced this scope

	mu          sync.RWMutex
	ownerSymbol ids.SymId
	hasOwner    bool
	byName      map[ids.InternedStr][]ids.SymId
	byFQN       map[ids.InternedStr][]ids.SymId
	parents     []ids.ScopeId
	children    []ids.ScopeId
}

// New allocates an empty scope owned by the given HIR node. It has no ID
// until Store.Alloc places it.
func New(owner ids.HirId) *Scope {
	return &Scope{
		Owner:  owner,
		byName: make(map[ids.InternedStr][]ids.SymId),
		byFQN:  make(map[ids.InternedStr][]ids.SymId),
	}
}

// SetOwnerSymbol records the Symbol that this scope belongs to, if any
// (e.g. a Func or Class scope's own symbol). A scope's owning symbol, once
// set, points back to the symbol which in turn points its own `scope`
// field back here (spec.md §3.4 invariant).
func (s *Scope) SetOwnerSymbol(sym ids.SymId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerSymbol = sym
	s.hasOwner = true
}

// OwnerSymbol returns the scope's owning symbol, if any.
func (s *Scope) OwnerSymbol() (ids.SymId, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerSymbol, s.hasOwner
}

// AddParent appends a parent scope (module/inheritance chaining, spec.md
// §3.4). Multiple parents support e.g. a TypeScript interface extending
// several others.
func (s *Scope) AddParent(p ids.ScopeId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.parents {
		if existing == p {
			return
		}
	}
	s.parents = append(s.parents, p)
}

// Parents returns a snapshot of this scope's parent chain.
func (s *Scope) Parents() []ids.ScopeId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ids.ScopeId, len(s.parents))
	copy(out, s.parents)
	return out
}

// AddChild records a nested scope.
func (s *Scope) AddChild(c ids.ScopeId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = append(s.children, c)
}

// Children returns a snapshot of this scope's children.
func (s *Scope) Children() []ids.ScopeId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ids.ScopeId, len(s.children))
	copy(out, s.children)
	return out
}

// Insert appends sym to the bucket keyed by its short name (spec.md §4.5:
// "insert appends to the bucket keyed by the symbol's short name").
func (s *Scope) Insert(name ids.InternedStr, sym ids.SymId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName[name] = append(s.byName[name], sym)
}

// InsertWithFQN appends sym to the bucket keyed by its fully qualified
// name. Mandatory for the project-global scope, per spec.md §4.5, so that
// e.g. two types' same-named `new` method do not collide.
func (s *Scope) InsertWithFQN(fqnKey ids.InternedStr, sym ids.SymId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byFQN[fqnKey] = append(s.byFQN[fqnKey], sym)
}

// ByName returns a snapshot of the symbols bucketed under name in this
// scope only (no parent walk).
func (s *Scope) ByName(name ids.InternedStr) []ids.SymId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.byName[name]
	out := make([]ids.SymId, len(bucket))
	copy(out, bucket)
	return out
}

// ByFQN returns a snapshot of the symbols bucketed under an FQN key.
func (s *Scope) ByFQN(fqnKey ids.InternedStr) []ids.SymId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.byFQN[fqnKey]
	out := make([]ids.SymId, len(bucket))
	copy(out, bucket)
	return out
}

// All returns every symbol id declared directly in this scope (both the
// short-name and FQN tables), used by renderers and tests that need a
// deterministic dump of a scope's contents. Order is unspecified; callers
// that need determinism must sort (spec.md §5 ordering guarantees).
func (s *Scope) All() []ids.SymId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ids.SymId
	for _, bucket := range s.byName {
		out = append(out, bucket...)
	}
	for _, bucket := range s.byFQN {
		out = append(out, bucket...)
	}
	return out
}
