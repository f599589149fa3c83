package scope

import (
	"sync"

	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/symbol"
)

// Provider resolves a ScopeId to its Scope. CompileCtxt implements this.
type Provider interface {
	Scope(ids.ScopeId) *Scope
}

// SymbolResolver resolves a SymId to its Symbol, used to apply KindFilters
// during lookup. CompileCtxt implements this (it is symbol.Resolver with a
// named type so scope doesn't need to import ctxt's concrete type).
type SymbolResolver = symbol.Resolver

// InsertTarget selects which scope lookup_or_insert inserts into when no
// existing symbol is found (spec.md §4.5).
type InsertTarget uint8

const (
	InsertTop InsertTarget = iota
	InsertParent
	InsertGlobal
)

// LookupOptions configures a stack lookup (spec.md §4.5).
type LookupOptions struct {
	Global      bool // not read: LookupSymbols always consults globals (index 0)
	Parent      bool // not read: LookupSymbols always walks the whole stack
	Chain       bool // chained/shadowing insert: always insert a new binding
	Force       bool // insert even if an ambiguous/ambivalent match exists
	KindFilters []symbol.Kind
	UnitFilters []int
	Target      InsertTarget
}

// Stack is a read-write guarded vector of scope ids; index 0 is always the
// project-global scope (spec.md §4.5).
type Stack struct {
	provider Provider
	resolve  SymbolResolver

	mu      sync.RWMutex
	entries []ids.ScopeId
}

// NewStack creates a stack rooted at the project-global scope.
func NewStack(provider Provider, resolve SymbolResolver, globals ids.ScopeId) *Stack {
	return &Stack{provider: provider, resolve: resolve, entries: []ids.ScopeId{globals}}
}

// Depth returns the number of scopes currently pushed.
func (s *Stack) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Push pushes a single scope onto the stack.
func (s *Stack) Push(id ids.ScopeId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, id)
}

// Pop removes and returns the top scope. Popping the global scope at index
// 0 is a programmer error and panics.
func (s *Stack) Pop() ids.ScopeId {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) <= 1 {
		panic("scope: cannot pop the global scope")
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top
}

// PopUntil pops scopes until the stack depth equals depth.
func (s *Stack) PopUntil(depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if depth < 1 {
		depth = 1
	}
	for len(s.entries) > depth {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

// Top returns the innermost scope.
func (s *Stack) Top() ids.ScopeId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[len(s.entries)-1]
}

// First returns the global scope (index 0).
func (s *Stack) First() ids.ScopeId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[0]
}

// PushRecursive traverses scope's parent chain (guarding against cycles
// with a visited set keyed by ScopeId) and pushes the whole chain, deepest
// ancestor first, so that scope ends up on top. This is how cross-file
// file/module scopes get layered onto the stack (spec.md §4.5).
func (s *Stack) PushRecursive(scope ids.ScopeId) {
	var chain []ids.ScopeId
	visited := map[ids.ScopeId]bool{}
	var collect func(ids.ScopeId)
	collect = func(id ids.ScopeId) {
		if visited[id] {
			return
		}
		visited[id] = true
		sc := s.provider.Scope(id)
		if sc == nil {
			chain = append(chain, id)
			return
		}
		for _, p := range sc.Parents() {
			collect(p)
		}
		chain = append(chain, id)
	}
	collect(scope)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, chain...)
}

// LookupSymbols walks the stack top-to-bottom (excluding the global scope
// at index 0) looking up name by short-name key, falling back to the
// global scope by FQN key when nothing is found locally. Ambiguous lookups
// (more than one candidate survives filtering) return nil and ambiguous=true
// so the caller can emit a warning (spec.md §4.5, §7.2).
func (s *Stack) LookupSymbols(name ids.InternedStr, fqnKey ids.InternedStr, opts LookupOptions) (result ids.SymId, found bool, ambiguous bool) {
	s.mu.RLock()
	entries := make([]ids.ScopeId, len(s.entries))
	copy(entries, s.entries)
	s.mu.RUnlock()

	for i := len(entries) - 1; i >= 1; i-- {
		sc := s.provider.Scope(entries[i])
		if sc == nil {
			continue
		}
		bucket := s.filter(sc.ByName(name), opts)
		if len(bucket) == 1 {
			return bucket[0], true, false
		}
		if len(bucket) > 1 {
			return 0, false, true
		}
	}

	if opts.Global || true {
		global := s.provider.Scope(entries[0])
		if global != nil {
			bucket := s.filter(global.ByFQN(fqnKey), opts)
			if len(bucket) == 1 {
				return bucket[0], true, false
			}
			if len(bucket) > 1 {
				return 0, false, true
			}
			// globals also accept short-name lookups for package-level
			// symbols inserted under both keys by the collector.
			bucket = s.filter(global.ByName(name), opts)
			if len(bucket) == 1 {
				return bucket[0], true, false
			}
			if len(bucket) > 1 {
				return 0, false, true
			}
		}
	}
	return 0, false, false
}

func (s *Stack) filter(candidates []ids.SymId, opts LookupOptions) []ids.SymId {
	if len(opts.KindFilters) == 0 && len(opts.UnitFilters) == 0 {
		return candidates
	}
	out := candidates[:0:0]
	for _, c := range candidates {
		sym, ok := s.resolve(c)
		if !ok {
			continue
		}
		if len(opts.KindFilters) > 0 && !kindIn(sym.Kind, opts.KindFilters) {
			continue
		}
		if len(opts.UnitFilters) > 0 {
			unit, hasUnit := sym.UnitIndex, sym.HasUnit
			if !hasUnit || !intIn(unit, opts.UnitFilters) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func kindIn(k symbol.Kind, ks []symbol.Kind) bool {
	for _, want := range ks {
		if want == k {
			return true
		}
	}
	return false
}

func intIn(v int, vs []int) bool {
	for _, want := range vs {
		if want == v {
			return true
		}
	}
	return false
}

// LookupOrInsert looks name up via LookupSymbols (the whole stack, then
// globals) unless Chain is set, and, if not found (or Chain forces a fresh
// binding), inserts a new symbol id built
// by makeSym into the scope selected by opts.Target (spec.md §4.5).
// makeSym is only called when an insert is actually needed.
func (s *Stack) LookupOrInsert(name ids.InternedStr, opts LookupOptions, makeSym func() ids.SymId) (id ids.SymId, inserted bool) {
	if !opts.Chain {
		if existing, found, ambiguous := s.LookupSymbols(name, name, opts); found && !ambiguous {
			return existing, false
		} else if ambiguous && !opts.Force {
			return 0, false
		}
	}

	s.mu.RLock()
	var target ids.ScopeId
	switch opts.Target {
	case InsertGlobal:
		target = s.entries[0]
	case InsertParent:
		if len(s.entries) >= 2 {
			target = s.entries[len(s.entries)-2]
		} else {
			target = s.entries[len(s.entries)-1]
		}
	default:
		target = s.entries[len(s.entries)-1]
	}
	s.mu.RUnlock()

	sc := s.provider.Scope(target)
	newID := makeSym()
	if sc != nil {
		sc.Insert(name, newID)
	}
	return newID, true
}
