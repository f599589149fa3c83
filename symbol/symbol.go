// Package symbol implements the Symbol model of spec.md §3.4: declarations
// bound in a scope, their FQNs, and the reciprocal typed dependency edges
// between them that the binder (package bind) populates.
package symbol

import (
	"sync"

	"github.com/viant/llmcc/ids"
)

// Kind enumerates what a Symbol denotes.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindModule
	KindCrate
	KindFile
	KindStruct
	KindEnum
	KindInterface // trait / interface
	KindFunction
	KindMethod
	KindField
	KindEnumVariant
	KindVariable
	KindPrimitive
	KindTypeAlias
	KindTypeParameter
	KindCompositeType
	KindUnresolvedType
)

// IsResolved reports whether a symbol kind denotes a successfully resolved
// reference, i.e. anything other than the UnresolvedType placeholder
// (spec.md §8: "ident.symbol.kind.is_resolved()").
func (k Kind) IsResolved() bool { return k != KindUnresolvedType }

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "Module"
	case KindCrate:
		return "Crate"
	case KindFile:
		return "File"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindInterface:
		return "Interface"
	case KindFunction:
		return "Function"
	case KindMethod:
		return "Method"
	case KindField:
		return "Field"
	case KindEnumVariant:
		return "EnumVariant"
	case KindVariable:
		return "Variable"
	case KindPrimitive:
		return "Primitive"
	case KindTypeAlias:
		return "TypeAlias"
	case KindTypeParameter:
		return "TypeParameter"
	case KindCompositeType:
		return "CompositeType"
	case KindUnresolvedType:
		return "UnresolvedType"
	default:
		return "Unknown"
	}
}

// DepKind enumerates the typed dependency edges between symbols (spec.md
// §3.4).
type DepKind uint8

const (
	DepUses DepKind = iota
	DepCalls
	DepFieldType
	DepParamType
	DepReturnType
	DepImplements
	DepTypeBound
	DepInstantiates
)

func (k DepKind) String() string {
	switch k {
	case DepUses:
		return "Uses"
	case DepCalls:
		return "Calls"
	case DepFieldType:
		return "FieldType"
	case DepParamType:
		return "ParamType"
	case DepReturnType:
		return "ReturnType"
	case DepImplements:
		return "Implements"
	case DepTypeBound:
		return "TypeBound"
	case DepInstantiates:
		return "Instantiates"
	default:
		return "Uses"
	}
}

// Edge is one typed dependency edge, as stored on both ends (§3.4
// invariant: depends/depended are reciprocal).
type Edge struct {
	Other ids.SymId
	Kind  DepKind
}

// Symbol carries everything spec.md §3.4 lists. Dependency lists mutate
// after allocation, so they are behind a mutex (spec.md §9: "Encapsulate
// interior mutability behind read-write guards on each entity") — mirroring
// the teacher's RWMutex-guarded graph.Type/graph.File field/method maps.
type Symbol struct {
	ID       ids.SymId
	Name     string
	NameKey  ids.InternedStr
	fqn      string
	fqnKey   ids.InternedStr
	hasFQN   bool

	Owner ids.HirId
	Kind  Kind

	UnitIndex  int
	HasUnit    bool
	BlockID    ids.BlockId
	HasBlock   bool
	ScopeID    ids.ScopeId
	HasScope   bool

	TypeOf   ids.SymId
	HasType  bool
	FieldOf  ids.SymId
	HasField bool

	NestedTypes []ids.SymId
	Decorators  []ids.SymId

	IsGlobal bool

	mu       sync.RWMutex
	depends  []Edge
	depended []Edge
}

// New allocates a Symbol value. It has no ID until Store.Alloc places it.
func New(name string, nameKey ids.InternedStr, owner ids.HirId, kind Kind) *Symbol {
	return &Symbol{Name: name, NameKey: nameKey, Owner: owner, Kind: kind}
}

// SetFQN records the symbol's fully qualified name and its interned key.
func (s *Symbol) SetFQN(fqn string, key ids.InternedStr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fqn = fqn
	s.fqnKey = key
	s.hasFQN = true
}

// FQN returns the symbol's fully qualified name, or ("", false) if unset.
func (s *Symbol) FQN() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fqn, s.hasFQN
}

// FQNKey returns the interned key of the FQN, or (0, false) if unset.
func (s *Symbol) FQNKey() (ids.InternedStr, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fqnKey, s.hasFQN
}

// AddDependency records a depends edge from s to target. It returns
// nothing: symbol.Link adds the reciprocal half via AddDependent on target,
// so no two symbol locks are held at once.
func (s *Symbol) AddDependency(target ids.SymId, kind DepKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.depends {
		if e.Other == target && e.Kind == kind {
			return // idempotent
		}
	}
	s.depends = append(s.depends, Edge{Other: target, Kind: kind})
}

// AddDependent records that `from` depends on s via kind (the reciprocal
// half of AddDependency).
func (s *Symbol) AddDependent(from ids.SymId, kind DepKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.depended {
		if e.Other == from && e.Kind == kind {
			return
		}
	}
	s.depended = append(s.depended, Edge{Other: from, Kind: kind})
}

// Depends returns a snapshot of the symbol's outgoing dependency edges.
func (s *Symbol) Depends() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Edge, len(s.depends))
	copy(out, s.depends)
	return out
}

// Depended returns a snapshot of the symbol's incoming dependency edges.
func (s *Symbol) Depended() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Edge, len(s.depended))
	copy(out, s.depended)
	return out
}
