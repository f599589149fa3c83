package block

import (
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/symbol"
)

// Classifier resolves a HIR node's grammar kind id to the block kind it
// introduces. lang.Language satisfies this structurally (spec.md §9's
// accept-interfaces note, applied so block never imports lang).
type Classifier interface {
	BlockKind(kindID uint16) Kind
}

// isContainer reports whether k is a block kind the Builder recurses into to find
// nested blocks (spec.md §4.8: "recurse so the resulting block captures
// children"). Stmt and Call are leaves: the builder does not descend
// beneath them looking for further blocks.
func isContainer(k Kind) bool {
	switch k {
	case KindRoot, KindClass, KindFunc, KindImpl, KindScope:
		return true
	default:
		return false
	}
}

// Builder walks one unit's HIR tree assigning a Block to every node whose
// block kind is not Undefined (spec.md §4.8).
type Builder struct {
	hir        *hir.Store
	syms       *symbol.Store
	blocks     *Store
	classifier Classifier
}

// NewBuilder creates a Builder writing into blocks.
func NewBuilder(hirStore *hir.Store, syms *symbol.Store, blocks *Store, classifier Classifier) *Builder {
	return &Builder{hir: hirStore, syms: syms, blocks: blocks, classifier: classifier}
}

// Build walks root, returning the root's BlockId.
func (b *Builder) Build(root ids.HirId) ids.BlockId {
	return b.walk(root, nil)
}

func (b *Builder) walk(hirID ids.HirId, parent *Block) ids.BlockId {
	n := b.hir.Get(hirID)
	if n == nil {
		return 0
	}

	kind := b.classifier.BlockKind(n.KindID)
	if kind == KindUndefined {
		var last ids.BlockId
		for _, child := range n.Children {
			if id := b.walk(child, parent); id != 0 {
				last = id
			}
		}
		return last
	}

	blk := New(kind, hirID)
	id := b.blocks.Alloc(blk)
	if parent != nil {
		blk.SetParent(parent)
	}

	if identNode, ok := b.attachedIdent(n); ok {
		blk.AttachSymbol(identNode.Symbol)
		if sym, ok := b.syms.Get(identNode.Symbol); ok {
			sym.BlockID = id
			sym.HasBlock = true
			if sym.Kind == symbol.KindMethod {
				blk.IsMethod = true
			}
			if kind == KindFunc {
				// bind already linked the owner's ReturnType edges by the
				// time block-build runs (spec.md §4.8 runs bind before
				// block-build), so Returns is read straight off them
				// instead of re-deriving grammar shape here.
				for _, edge := range sym.Depends() {
					if edge.Kind == symbol.DepReturnType {
						blk.Returns = append(blk.Returns, edge.Other)
					}
				}
			}
		}
	}

	if parent != nil {
		switch kind {
		case KindField:
			parent.Fields = append(parent.Fields, id)
		case KindFunc:
			parent.Methods = append(parent.Methods, id)
		case KindParam:
			if blk.HasSymbol {
				parent.Parameters = append(parent.Parameters, blk.Symbol)
			}
		}
	}

	if isContainer(kind) {
		for _, child := range n.Children {
			b.walk(child, blk)
		}
	}
	return id
}

// attachedIdent returns the Ident node a block should inherit its symbol
// from: the HIR scope-owner ident collect.go recorded in ScopeIdent for
// Scope-kind nodes, or (for the Stmt/Param/Field nodes that declare a
// binding without a scope of their own) the first direct Ident child with a
// symbol already attached, same convention as collect.Collector.findNameIdent.
func (b *Builder) attachedIdent(n *hir.Node) (*hir.Node, bool) {
	if n.HasIdent {
		identNode := b.hir.Get(n.ScopeIdent)
		if identNode != nil && identNode.HasSymbol {
			return identNode, true
		}
		return nil, false
	}
	for _, childID := range n.Children {
		child := b.hir.Get(childID)
		if child != nil && child.Kind == hir.KindIdent && child.HasSymbol {
			return child, true
		}
	}
	return nil, false
}

// depToRelation maps a symbol-level DepKind onto the block RelationMap
// relation it materializes as (spec.md §4.8: "translating symbol-level
// dependencies into block-level edges"). TypeBound and Instantiates have no
// dedicated block relation (spec.md §3.6's relation set is narrower than
// §3.4's DepKind set) so they fold into Uses, the closest generic edge.
func depToRelation(k symbol.DepKind) Relation {
	switch k {
	case symbol.DepCalls:
		return RelCalls
	case symbol.DepFieldType, symbol.DepParamType, symbol.DepReturnType:
		return RelTypeOf
	case symbol.DepImplements:
		return RelImplements
	default:
		return RelUses
	}
}

// LinkRelations populates relations by translating every bound symbol's
// outgoing dependency edges into block-level edges, for symbols that have
// both ends assigned a block (spec.md §4.8's second pass). Symmetric
// relations (Uses/UsedBy, Implements/HasImpl) get their reverse edge
// inserted too so RelationMap.Related and the renderer see both sides
// without the caller re-deriving it.
func LinkRelations(syms *symbol.Store, relations *RelationMap) {
	syms.Each(func(_ ids.SymId, sym *symbol.Symbol) {
		if !sym.HasBlock {
			return
		}
		for _, edge := range sym.Depends() {
			target, ok := syms.Get(edge.Other)
			if !ok || !target.HasBlock {
				continue
			}
			rel := depToRelation(edge.Kind)
			relations.Insert(sym.BlockID, target.BlockID, rel)
			if reverse := Reverse(rel); reverse != rel {
				relations.Insert(target.BlockID, sym.BlockID, reverse)
			}
		}
	})
}
