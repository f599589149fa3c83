// Package collect implements phase 1 of name resolution (spec.md §4.6): a
// per-unit visitor that allocates scopes and declares symbols without
// resolving any reference or touching a dependency edge.
package collect

import (
	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ctxt"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/scope"
	"github.com/viant/llmcc/symbol"
)

// Collector walks one unit's HIR tree, allocating scopes and inserting
// declarations (spec.md §4.6). It never mutates dependency edges.
type Collector struct {
	c    *ctxt.CompileCtxt
	unit *ctxt.CompileUnit

	stack *scope.Stack
	// scopeOf records the ScopeId each Scope-kind HIR node introduced.
	// Parent links are set in pushScope from the scope stack's top, not
	// from this map.
	scopeOf map[ids.HirId]ids.ScopeId
}

// New creates a Collector for unit, sharing c's arenas and global scope.
func New(c *ctxt.CompileCtxt, unit *ctxt.CompileUnit) *Collector {
	return &Collector{
		c:       c,
		unit:    unit,
		stack:   scope.NewStack(c, c.Symbol, c.Globals),
		scopeOf: make(map[ids.HirId]ids.ScopeId),
	}
}

// symKindFor maps a HIR scope node's introducing grammar shape to the
// SymKind its declared symbol should take. Concrete languages vary in how
// many grammar productions map to "this introduces a type" vs "this
// introduces a function"; Collector asks the unit's block classification
// (already resolved by lang.Language via the HIR builder's KindID) since
// block.Kind already distinguishes Class/Func/Field at the granularity
// symbol declarations need.
func symKindFor(bk block.Kind, isMethod bool) symbol.Kind {
	switch bk {
	case block.KindClass:
		return symbol.KindStruct
	case block.KindFunc:
		if isMethod {
			return symbol.KindMethod
		}
		return symbol.KindFunction
	case block.KindField:
		return symbol.KindField
	default:
		return symbol.KindVariable
	}
}

// Run walks unit.Root, collecting declarations. It returns the file-level
// scope it created so the caller (the per-unit pipeline driver) can record
// it on the CompileUnit.
func (col *Collector) Run() ids.ScopeId {
	fileScope := col.pushScope(col.unit.Root, true)
	col.walk(col.unit.Root, block.KindUndefined, false)
	col.stack.PopUntil(1)
	return fileScope
}

// pushScope allocates a new Scope owned by hirNode, pushes it, links it as
// child of the current top, and records it for the node if attachable.
func (col *Collector) pushScope(hirNode ids.HirId, isFile bool) ids.ScopeId {
	sc := scope.New(hirNode)
	id := col.c.Scopes.Alloc(sc)
	col.scopeOf[hirNode] = id

	parent := col.stack.Top()
	if parentScope := col.c.Scope(parent); parentScope != nil {
		parentScope.AddChild(id)
		sc.AddParent(parent)
	}

	col.stack.Push(id)

	if n := col.c.Hir.Get(hirNode); n != nil && n.Kind == hir.KindScope {
		n.AttachScope(id)
	}
	return id
}

// walk recurses the HIR tree, collecting declarations per spec.md §4.6.
// parentBlockKind/underClass tell whether a Func-kind node being visited is
// a method (its innermost enclosing scope block kind is Class).
func (col *Collector) walk(id ids.HirId, parentBlockKind block.Kind, underClass bool) {
	n := col.c.Hir.Get(id)
	if n == nil {
		return
	}

	bk := col.unit.Language.BlockKind(n.KindID)

	switch n.Kind {
	case hir.KindScope:
		depth := col.stack.Depth()
		col.pushScope(id, false)

		if bk == block.KindClass || bk == block.KindFunc {
			col.declare(n, bk, underClass)
		}

		nextUnderClass := underClass
		if bk == block.KindClass {
			nextUnderClass = true
		} else if bk == block.KindFunc {
			nextUnderClass = false
		}

		for _, child := range n.Children {
			col.walk(child, bk, nextUnderClass)
		}
		col.stack.PopUntil(depth)
		return

	case hir.KindIdent:
		// Declaration idents for Field-kind constructs (struct fields,
		// enum variants) declare directly without their own scope.
		if parentBlockKind == block.KindField {
			col.declare(n, block.KindField, underClass)
		}
	}

	// Local variable/let/const/assignment statements and function
	// parameters introduce a binding without their own scope, same as
	// Field above — every lang/* table maps them to Stmt/Param rather than
	// Scope (spec.md §4.6's variable/parameter declarations).
	if bk == block.KindStmt || bk == block.KindParam {
		col.declare(n, bk, false)
	}

	// bk, not the incoming parentBlockKind, is what children see as their
	// parent's kind: a node's own classification always wins over whatever
	// its ancestors were, the same rule the Scope case above already
	// applies to its own children. Structural wrapper nodes (e.g. a
	// field_declaration_list between a struct and its field_declarations)
	// classify Undefined and so reset the chain exactly like "no
	// classified parent", which is correct — they carry no semantics of
	// their own.
	for _, child := range n.Children {
		col.walk(child, bk, underClass)
	}
}

// declare inserts a symbol for n itself when n is an Ident (a Field-kind
// declaration ident), otherwise for the Ident child naming n (the Scope or
// Stmt/Param node being visited), per spec.md §4.6's lookup_or_insert contract.
func (col *Collector) declare(n *hir.Node, bk block.Kind, isMethod bool) {
	identNode := n
	if n.Kind != hir.KindIdent {
		identNode = col.findNameIdent(n)
	}
	if identNode == nil {
		return
	}

	name := identNode.Text(col.unit.Source)
	nameKey := col.c.Interner.Intern(name)
	kind := symKindFor(bk, isMethod)

	symID, _ := col.stack.LookupOrInsert(nameKey, scope.LookupOptions{Chain: true}, func() ids.SymId {
		sym := symbol.New(name, nameKey, identNode.ID, kind)
		sym.UnitIndex, sym.HasUnit = col.unit.Index, true
		return col.c.Syms.Alloc(sym)
	})

	identNode.AttachSymbol(symID)
	if n.Kind == hir.KindScope {
		n.HasIdent = true
		n.ScopeIdent = identNode.ID
		if n.HasScope {
			if sc := col.c.Scope(n.ScopeID); sc != nil {
				sc.SetOwnerSymbol(symID)
			}
		}
	}

	if sym, ok := col.c.Symbol(symID); ok {
		if bk == block.KindField {
			// The container is still the scope stack's top: field idents
			// declare without pushing a scope of their own (spec.md §3.4's
			// field_of back-pointer), so whatever scope is on top right now
			// belongs to the struct/class that owns this field.
			if containerScope := col.c.Scope(col.stack.Top()); containerScope != nil {
				if containerSym, ok := containerScope.OwnerSymbol(); ok {
					sym.FieldOf = containerSym
					sym.HasField = true
				}
			}
		}
		if bk == block.KindClass || bk == block.KindFunc {
			sym.IsGlobal = true
			fqnKey := col.c.Interner.Intern(name)
			if global := col.c.Scope(col.c.Globals); global != nil {
				global.InsertWithFQN(fqnKey, symID)
			}
		}
	}
}

// findNameIdent returns the first direct Ident child of n — by convention
// across every lang/* table, the node naming a Scope or Field is its first
// Ident-kind child (identifier/field_identifier/type_identifier).
func (col *Collector) findNameIdent(n *hir.Node) *hir.Node {
	for _, childID := range n.Children {
		child := col.c.Hir.Get(childID)
		if child != nil && child.Kind == hir.KindIdent {
			return child
		}
	}
	return nil
}
