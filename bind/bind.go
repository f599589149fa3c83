// Package bind implements phase 2 of name resolution (spec.md §4.7):
// reference resolution, bounded type inference, and typed dependency edge
// emission over a unit already visited by package collect.
package bind

import (
	"strings"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ctxt"
	"github.com/viant/llmcc/expr"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/internal/logx"
	"github.com/viant/llmcc/scope"
	"github.com/viant/llmcc/symbol"
)

// maxInferDepth bounds the recursive-descent type inference pass (spec.md
// §4.7: "hard depth cap, e.g. 16"). Go has no implicit thread-local guard,
// so the cap is threaded explicitly through each inferType call instead.
const maxInferDepth = 16

// primitives is the pre-pass table of spec.md §4.7: every name here gets a
// Primitive symbol inserted into globals before any unit is bound, so type
// inference always has somewhere to resolve literal types to.
var primitives = []string{
	"i8", "i16", "i32", "i64", "isize",
	"u8", "u16", "u32", "u64", "usize",
	"f32", "f64", "bool", "str", "string", "char",
	"number", "boolean", "void", "any", "unknown",
	"int", "float", "double", "long", "short", "byte",
}

// EnsurePrimitives inserts the primitive-type pre-pass symbols into c's
// globals, idempotently. Callers run this once per CompileCtxt before
// binding any unit.
func EnsurePrimitives(c *ctxt.CompileCtxt) {
	global := c.Scope(c.Globals)
	for _, name := range primitives {
		key := c.Interner.Intern(name)
		if len(global.ByName(key)) > 0 {
			continue
		}
		sym := symbol.New(name, key, ids.InvalidHirId, symbol.KindPrimitive)
		sym.IsGlobal = true
		id := c.Syms.Alloc(sym)
		global.Insert(key, id)
		global.InsertWithFQN(key, id)
	}
}

// Binder resolves references for one unit and emits dependency edges.
type Binder struct {
	c    *ctxt.CompileCtxt
	unit *ctxt.CompileUnit

	stack *scope.Stack
	// owner is the symbol stack for "whose depends list does a reference
	// inside this subtree belong to" — the innermost enclosing Func/Class
	// symbol, pushed/popped as the binder descends scope nodes.
	owner []ids.SymId
}

// New creates a Binder for unit. The unit must already have FileScope set
// by a prior Collector.Run call recorded on the CompileUnit.
func New(c *ctxt.CompileCtxt, unit *ctxt.CompileUnit) *Binder {
	b := &Binder{c: c, unit: unit}
	b.stack = scope.NewStack(c, c.Symbol, c.Globals)
	if unit.FileScope != 0 {
		b.stack.PushRecursive(unit.FileScope)
	}
	return b
}

func (b *Binder) currentOwner() (ids.SymId, bool) {
	if len(b.owner) == 0 {
		return 0, false
	}
	return b.owner[len(b.owner)-1], true
}

// Run walks the unit's HIR tree resolving references and emitting edges.
func (b *Binder) Run() {
	b.walk(b.unit.Root, symbol.DepUses, false)
}

// walk descends the HIR tree carrying the dependency edge kind a reference
// found in the current subtree should be linked with. role/hasRole come
// from depKindForField classifying the grammar field the subtree occupies
// in its parent (spec.md §4.7's call-target/field-type/param-type/
// return-type/impl rules); hasRole false means "no typed role applies here,
// default to Uses".
func (b *Binder) walk(id ids.HirId, role symbol.DepKind, hasRole bool) {
	n := b.c.Hir.Get(id)
	if n == nil {
		return
	}

	switch n.Kind {
	case hir.KindScope:
		depth := b.stack.Depth()
		if n.HasScope {
			b.stack.Push(n.ScopeID)
		}
		pushedOwner := false
		if n.HasScope {
			if sc := b.c.Scope(n.ScopeID); sc != nil {
				if ownerSym, ok := sc.OwnerSymbol(); ok {
					b.owner = append(b.owner, ownerSym)
					pushedOwner = true
				}
			}
		}
		for _, child := range n.Children {
			childRole, childHasRole := b.childRole(n, child, role, hasRole)
			b.walk(child, childRole, childHasRole)
		}
		if pushedOwner {
			b.owner = b.owner[:len(b.owner)-1]
		}
		b.stack.PopUntil(depth)
		return

	case hir.KindIdent:
		if !n.HasSymbol {
			kind := symbol.DepUses
			if hasRole {
				kind = role
			}
			b.resolveIdent(n, kind)
		}
	}

	for _, child := range n.Children {
		childRole, childHasRole := b.childRole(n, child, role, hasRole)
		b.walk(child, childRole, childHasRole)
	}
}

// childRole decides the dependency role a child subtree carries: a
// registered field role always wins; a child occupying some other named
// field resets to "no role" (it starts a semantically distinct position,
// e.g. a call's "arguments" next to its "function"); an unnamed (positional)
// child inherits whatever role its parent carried.
func (b *Binder) childRole(parent, child *hir.Node, inherited symbol.DepKind, inheritedOK bool) (symbol.DepKind, bool) {
	if kind, ok := b.depKindForField(parent, child); ok {
		return kind, true
	}
	if child.FieldID != 0 {
		return 0, false
	}
	return inherited, inheritedOK
}

// depKindForField classifies a reference position per spec.md §4.7's
// dependency edge table: the field name a child occupies combined with the
// parent's own block classification, since the same field name (e.g.
// "type") denotes different edges depending on whether its parent is a
// field declaration, a parameter, or something else entirely.
func (b *Binder) depKindForField(parent, child *hir.Node) (symbol.DepKind, bool) {
	if child.FieldID == 0 {
		return 0, false
	}
	language := b.unit.Language
	switch language.BlockKind(parent.KindID) {
	case block.KindCall:
		if child.FieldID == language.FieldID("function") {
			return symbol.DepCalls, true
		}
	case block.KindField:
		if child.FieldID == language.FieldID("type") {
			return symbol.DepFieldType, true
		}
	case block.KindParam:
		if child.FieldID == language.FieldID("type") {
			return symbol.DepParamType, true
		}
	case block.KindFunc:
		if fid := language.FieldID("result"); fid != 0 && child.FieldID == fid {
			return symbol.DepReturnType, true
		}
		if fid := language.FieldID("return_type"); fid != 0 && child.FieldID == fid {
			return symbol.DepReturnType, true
		}
	case block.KindImpl:
		if child.FieldID == language.FieldID("trait") {
			return symbol.DepImplements, true
		}
	}
	return 0, false
}

// resolveIdent resolves one reference-position Ident per spec.md §4.7,
// linking the owner's dependency edge with kind (Uses unless walk found a
// more specific role for this position).
func (b *Binder) resolveIdent(n *hir.Node, kind symbol.DepKind) {
	text := n.Text(b.unit.Source)
	if text == "" {
		return
	}

	var symID ids.SymId
	var found bool

	if segs := splitScoped(text); len(segs) > 1 {
		symID, found = b.resolveScoped(segs)
	} else {
		name := b.c.Interner.Intern(text)
		var ambiguous bool
		symID, found, ambiguous = b.stack.LookupSymbols(name, name, scope.LookupOptions{})
		if ambiguous {
			logx.Warn("ambiguous reference", "name", text, "unit", b.unit.Path)
			found = false
		}
	}

	if !found {
		placeholder := symbol.New(text, b.c.Interner.Intern(text), n.ID, symbol.KindUnresolvedType)
		placeholder.IsGlobal = true
		symID = b.c.Syms.Alloc(placeholder)
		if global := b.c.Scope(b.c.Globals); global != nil {
			global.InsertWithFQN(placeholder.NameKey, symID)
		}
		if owner, ok := b.currentOwner(); ok {
			b.c.AddUnresolved(ctxt.UnresolvedRef{
				UnitIndex:   b.unit.Index,
				FromIdent:   n.ID,
				Name:        text,
				NameKey:     placeholder.NameKey,
				ScopeID:     b.stack.Top(),
				Placeholder: symID,
			})
			b.LinkOwnerDependency(owner, symID, kind)
		}
		logx.Debug("unresolved reference", "name", text, "unit", b.unit.Path)
	}

	n.AttachSymbol(symID)

	if owner, ok := b.currentOwner(); ok && found {
		b.LinkOwnerDependency(owner, symID, kind)
	}
}

// splitScoped splits a `A::B::c` or `A.B.C` reference into its segments.
// A single unscoped identifier returns a one-element slice.
func splitScoped(text string) []string {
	if strings.Contains(text, "::") {
		return strings.Split(text, "::")
	}
	if strings.Contains(text, ".") {
		return strings.Split(text, ".")
	}
	return []string{text}
}

// resolveScoped resolves a scoped reference left-to-right (spec.md §4.7):
// the first segment via normal scope lookup (with crate/self/super special
// tokens), each later segment as a member of the previous segment's owning
// scope.
func (b *Binder) resolveScoped(segs []string) (ids.SymId, bool) {
	var current ids.SymId
	var currentScope ids.ScopeId
	var ok bool

	switch segs[0] {
	case "crate", "self":
		currentScope = b.c.Globals
		ok = true
	case "super":
		currentScope = b.parentModuleScope()
		ok = currentScope != 0
	default:
		name := b.c.Interner.Intern(segs[0])
		current, ok, _ = b.stack.LookupSymbols(name, name, scope.LookupOptions{})
		if ok {
			if sym, found := b.c.Symbol(current); found && sym.HasScope {
				currentScope = sym.ScopeID
			}
		}
	}
	if !ok {
		return 0, false
	}

	rest := segs[1:]
	if len(rest) == 0 {
		return current, current != 0
	}

	for i, seg := range rest {
		sc := b.c.Scope(currentScope)
		if sc == nil {
			return 0, false
		}
		key := b.c.Interner.Intern(seg)
		bucket := sc.ByName(key)
		if len(bucket) == 0 {
			bucket = sc.ByFQN(key)
		}
		if len(bucket) != 1 {
			return 0, false
		}
		current = bucket[0]
		if i == len(rest)-1 {
			break
		}
		sym, found := b.c.Symbol(current)
		if !found || !sym.HasScope {
			return 0, false
		}
		currentScope = sym.ScopeID
	}
	return current, true
}

// parentModuleScope resolves `super`: the nearest parent scope, relative to
// the binder's current anchor, that belongs to a Module/File/Crate symbol.
func (b *Binder) parentModuleScope() ids.ScopeId {
	cur := b.c.Scope(b.stack.Top())
	if cur == nil {
		return 0
	}
	seen := map[ids.ScopeId]bool{}
	queue := append([]ids.ScopeId(nil), cur.Parents()...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if seen[p] {
			continue
		}
		seen[p] = true
		sc := b.c.Scope(p)
		if sc == nil {
			continue
		}
		if ownerSym, ok := sc.OwnerSymbol(); ok {
			if sym, found := b.c.Symbol(ownerSym); found {
				switch sym.Kind {
				case symbol.KindModule, symbol.KindFile, symbol.KindCrate:
					return p
				}
			}
		}
		queue = append(queue, sc.Parents()...)
	}
	return 0
}

// InferredType returns the best-known symbol for a HIR expression node, per
// the type-inference table of spec.md §4.7. It takes no depth: it starts
// inferType's recursion-depth count at 0.
func (b *Binder) InferredType(n ids.HirId) (ids.SymId, bool) {
	return b.inferType(n, 0)
}

func (b *Binder) inferType(id ids.HirId, depth int) (ids.SymId, bool) {
	if depth >= maxInferDepth {
		logx.Debug("type inference depth cap reached", "unit", b.unit.Path)
		return 0, false
	}
	n := b.c.Hir.Get(id)
	if n == nil {
		return 0, false
	}

	switch n.Kind {
	case hir.KindText:
		return b.primitiveFor(n)
	case hir.KindIdent:
		if !n.HasSymbol {
			return 0, false
		}
		sym, ok := b.c.Symbol(n.Symbol)
		if !ok {
			return 0, false
		}
		if sym.HasType {
			return sym.TypeOf, true
		}
		return n.Symbol, true
	}

	if b.unit.Language != nil {
		if b.unit.Language.BlockKind(n.KindID) == block.KindCall {
			if sym, ok := b.callReturnType(n, depth); ok {
				return sym, true
			}
		}

		if classifier, ok := b.unit.Language.(expr.Classifier); ok {
			if sym, ok := b.inferExprType(n, classifier.ExprKind(n.KindID), depth); ok {
				return sym, true
			}
		}
	}

	// Fallback for structural (Internal/Scope/block-tail) nodes never
	// classified above: infer from the last child, approximating "block
	// type = type of tail expression".
	if len(n.Children) > 0 {
		return b.inferType(n.Children[len(n.Children)-1], depth+1)
	}
	return 0, false
}

// callReturnType infers `f(args)`'s type as f's declared return type
// (spec.md §4.7), reading the callee's DepReturnType edge rather than
// re-walking f's own declaration here.
func (b *Binder) callReturnType(n *hir.Node, depth int) (ids.SymId, bool) {
	calleeID := b.fieldChild(n, "function")
	if calleeID == 0 {
		return 0, false
	}
	callee := b.c.Hir.Get(calleeID)
	if callee == nil || !callee.HasSymbol {
		return 0, false
	}
	sym, ok := b.c.Symbol(callee.Symbol)
	if !ok {
		return 0, false
	}
	for _, edge := range sym.Depends() {
		if edge.Kind == symbol.DepReturnType {
			return edge.Other, true
		}
	}
	return 0, false
}

// inferExprType handles the expr.Kind rows of spec.md §4.7's table that
// need more than the literal/ident/call cases above: operators, member
// access, references, casts, await, if/else, and struct-literal/new.
func (b *Binder) inferExprType(n *hir.Node, kind expr.Kind, depth int) (ids.SymId, bool) {
	switch kind {
	case expr.KindCompare:
		return b.primitiveNamed("bool")

	case expr.KindArith:
		return b.leftOperandType(n, depth)

	case expr.KindBinary:
		if b.hasComparisonOperator(n) {
			return b.primitiveNamed("bool")
		}
		return b.leftOperandType(n, depth)

	case expr.KindUnaryRef:
		operand := b.fieldChild(n, "operand", "value", "argument")
		if operand == 0 && len(n.Children) > 0 {
			operand = n.Children[len(n.Children)-1]
		}
		if operand == 0 {
			return 0, false
		}
		return b.inferType(operand, depth+1)

	case expr.KindAwait:
		inner := b.fieldChild(n, "value", "operand")
		if inner == 0 && len(n.Children) > 0 {
			inner = n.Children[len(n.Children)-1]
		}
		if inner == 0 {
			return 0, false
		}
		return b.inferType(inner, depth+1)

	case expr.KindCast:
		typeID := b.fieldChild(n, "type")
		if typeID == 0 && len(n.Children) > 0 {
			typeID = n.Children[len(n.Children)-1]
		}
		if typeID == 0 {
			return 0, false
		}
		return b.inferType(typeID, depth+1)

	case expr.KindIf:
		consequent := b.fieldChild(n, "consequence", "body")
		if consequent == 0 {
			return 0, false
		}
		return b.inferType(consequent, depth+1)

	case expr.KindFieldAccess:
		return b.fieldAccessType(n, depth)

	case expr.KindNew:
		typeID := b.fieldChild(n, "type", "name", "constructor")
		if typeID == 0 {
			return 0, false
		}
		typeNode := b.c.Hir.Get(typeID)
		if typeNode != nil && typeNode.Kind == hir.KindIdent && typeNode.HasSymbol {
			return typeNode.Symbol, true
		}
		return b.inferType(typeID, depth+1)
	}
	return 0, false
}

// fieldAccessType resolves `x.field`'s type: the receiver's own inferred
// type symbol must own a scope (a struct/class), in which field's name is
// looked up, per spec.md §4.7's "field's declared type" row.
func (b *Binder) fieldAccessType(n *hir.Node, depth int) (ids.SymId, bool) {
	receiver := b.fieldChild(n, "operand", "value", "object", "argument")
	member := b.fieldChild(n, "field", "attribute", "property")
	if receiver == 0 || member == 0 {
		return 0, false
	}
	recvType, ok := b.inferType(receiver, depth+1)
	if !ok {
		return 0, false
	}
	recvSym, ok := b.c.Symbol(recvType)
	if !ok || !recvSym.HasScope {
		return 0, false
	}
	memberNode := b.c.Hir.Get(member)
	if memberNode == nil {
		return 0, false
	}
	name := memberNode.Text(b.unit.Source)
	if name == "" {
		return 0, false
	}
	key := b.c.Interner.Intern(name)
	sc := b.c.Scope(recvSym.ScopeID)
	if sc == nil {
		return 0, false
	}
	bucket := sc.ByName(key)
	if len(bucket) == 0 {
		return 0, false
	}
	fieldSym, ok := b.c.Symbol(bucket[0])
	if ok && fieldSym.HasType {
		return fieldSym.TypeOf, true
	}
	return bucket[0], true
}

// leftOperandType infers an arithmetic binary expression's type as its left
// operand's type (spec.md §4.7).
func (b *Binder) leftOperandType(n *hir.Node, depth int) (ids.SymId, bool) {
	left := b.fieldChild(n, "left")
	if left == 0 && len(n.Children) > 0 {
		left = n.Children[0]
	}
	if left == 0 {
		return 0, false
	}
	return b.inferType(left, depth+1)
}

// comparisonOperators are the operator token spellings spec.md §4.7 groups
// as "-> bool": grammars that fold comparison and arithmetic into one node
// type (binary_expression) are told apart by sniffing which of these
// appears as a direct child's own text.
var comparisonOperators = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true, "and": true, "or": true,
}

func (b *Binder) hasComparisonOperator(n *hir.Node) bool {
	for _, childID := range n.Children {
		child := b.c.Hir.Get(childID)
		if child == nil {
			continue
		}
		if comparisonOperators[child.Text(b.unit.Source)] {
			return true
		}
	}
	return false
}

// fieldChild returns the first direct child of n occupying one of names'
// grammar field slots, trying each name in order — the same language-
// specific-field-name-via-generic-lookup convention depKindForField uses.
func (b *Binder) fieldChild(n *hir.Node, names ...string) ids.HirId {
	language := b.unit.Language
	for _, name := range names {
		fid := language.FieldID(name)
		if fid == 0 {
			continue
		}
		for _, childID := range n.Children {
			child := b.c.Hir.Get(childID)
			if child != nil && child.FieldID == fid {
				return childID
			}
		}
	}
	return 0
}

// primitiveFor resolves a Text-kind literal node to its primitive type
// symbol by a light textual sniff of the literal's own text (sniffPrimitive).
// The literal's tree-sitter grammar kind id is not consulted.
func (b *Binder) primitiveFor(n *hir.Node) (ids.SymId, bool) {
	text := n.Text(b.unit.Source)
	return b.primitiveNamed(sniffPrimitive(text))
}

// primitiveNamed resolves a primitive type name (inserted by EnsurePrimitives)
// to its global symbol id.
func (b *Binder) primitiveNamed(name string) (ids.SymId, bool) {
	key := b.c.Interner.Intern(name)
	global := b.c.Scope(b.c.Globals)
	if global == nil {
		return 0, false
	}
	bucket := global.ByFQN(key)
	if len(bucket) == 0 {
		bucket = global.ByName(key)
	}
	if len(bucket) == 0 {
		return 0, false
	}
	return bucket[0], true
}

func sniffPrimitive(text string) string {
	if text == "" {
		return "string"
	}
	switch text[0] {
	case '"', '\'', '`':
		return "string"
	}
	if text == "true" || text == "false" {
		return "bool"
	}
	if strings.ContainsAny(text, ".eE") && strings.ContainsAny(text, "0123456789") {
		return "f64"
	}
	if isDigits(text) {
		return "i32"
	}
	return "string"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// LinkOwnerDependency records an edge from the current owner symbol to
// target with the given DepKind (spec.md §4.7's typed dependency edges).
// resolveIdent is the only caller in the pipeline; it exists as its own
// method so a future per-language refinement of depKindForField has a
// single choke point to link through.
func (b *Binder) LinkOwnerDependency(from, to ids.SymId, kind symbol.DepKind) {
	symbol.Link(b.c.Symbol, from, to, kind)
}

// BlockKindOf is a convenience passthrough so callers building block-level
// wiring alongside binding don't need a second import of lang.
func BlockKindOf(unit *ctxt.CompileUnit, kindID uint16) block.Kind {
	return unit.Language.BlockKind(kindID)
}
