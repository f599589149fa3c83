// Package block implements the basic-block layer of spec.md §3.5: coarser
// units folded out of HIR subtrees (classes, functions, statements, calls,
// impls) plus the typed inter-block relation map of §3.6.
package block

import "github.com/viant/llmcc/ids"

// Kind classifies a BasicBlock.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindRoot
	KindClass // also Struct/Enum/Trait/Interface
	KindFunc
	KindField
	KindImpl
	KindStmt
	KindCall
	KindScope
	KindParam
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindClass:
		return "Class"
	case KindFunc:
		return "Func"
	case KindField:
		return "Field"
	case KindImpl:
		return "Impl"
	case KindStmt:
		return "Stmt"
	case KindCall:
		return "Call"
	case KindScope:
		return "Scope"
	case KindParam:
		return "Param"
	default:
		return "Undefined"
	}
}

// Relation enumerates the typed directed edges stored in a RelationMap
// (spec.md §3.6).
type Relation uint8

const (
	RelCalls Relation = iota
	RelHasField
	RelHasParameters
	RelHasReturn
	RelTypeOf
	RelImplements
	RelHasImpl
	RelExtends
	RelUses
	RelUsedBy
	RelDependsOn
	RelDependedBy
	RelContains
)

func (r Relation) String() string {
	switch r {
	case RelCalls:
		return "Calls"
	case RelHasField:
		return "HasField"
	case RelHasParameters:
		return "HasParameters"
	case RelHasReturn:
		return "HasReturn"
	case RelTypeOf:
		return "TypeOf"
	case RelImplements:
		return "Implements"
	case RelHasImpl:
		return "HasImpl"
	case RelExtends:
		return "Extends"
	case RelUses:
		return "Uses"
	case RelUsedBy:
		return "UsedBy"
	case RelDependsOn:
		return "DependsOn"
	case RelDependedBy:
		return "DependedBy"
	case RelContains:
		return "Contains"
	default:
		return "Uses"
	}
}

// reverse returns the relation that, inserted in the opposite direction,
// keeps a symmetric pair in sync (e.g. Calls has no natural inverse so it
// reuses itself for a reverse index entry; Uses/UsedBy and DependsOn/
// DependedBy are true inverses of each other).
func (r Relation) reverse() Relation {
	switch r {
	case RelUses:
		return RelUsedBy
	case RelUsedBy:
		return RelUses
	case RelDependsOn:
		return RelDependedBy
	case RelDependedBy:
		return RelDependsOn
	case RelImplements:
		return RelHasImpl
	case RelHasImpl:
		return RelImplements
	default:
		return r
	}
}

// Base carries the fields shared by every BasicBlock variant (spec.md §3.5).
type Base struct {
	ID       ids.BlockId
	Parent   ids.BlockId
	HasParent bool
	Kind     Kind
	HirNode  ids.HirId
	Children []ids.BlockId

	Symbol    ids.SymId
	HasSymbol bool

	TypeDeps []ids.SymId
}

// Block is the BasicBlock sum type. Func-kind blocks additionally populate
// Parameters/Returns/IsMethod; Class-kind blocks populate Fields/Methods
// (spec.md §3.5).
type Block struct {
	Base

	Parameters []ids.SymId
	Returns    []ids.SymId
	IsMethod   bool

	Fields  []ids.BlockId
	Methods []ids.BlockId
}

// New allocates a block value. It has no ID until Store.Alloc places it.
func New(kind Kind, hirNode ids.HirId) *Block {
	return &Block{Base: Base{Kind: kind, HirNode: hirNode}}
}

// SetParent records the parent block and appends this block to the
// parent's Children list (the caller owns synchronization: block building
// runs single-threaded per unit, spec.md §4.8).
func (b *Block) SetParent(parent *Block) {
	b.Parent = parent.ID
	b.HasParent = true
	parent.Children = append(parent.Children, b.ID)
}

// AttachSymbol caches the HIR scope's owning symbol on the block and is
// paired with the caller setting symbol.block_id (spec.md §4.8).
func (b *Block) AttachSymbol(sym ids.SymId) {
	b.Symbol = sym
	b.HasSymbol = true
}
