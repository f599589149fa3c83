// Package expr classifies HIR nodes that shape how bind.Binder infers an
// expression's type (spec.md §4.7's inference table) but are too
// fine-grained to warrant their own block.Kind: operators, member access,
// casts, await, and if/else. A block.Kind classifies what becomes a node in
// the project graph; expr.Kind only ever feeds inferType's recursion.
package expr

// Kind classifies an expression-shaped HIR node.
type Kind uint8

const (
	KindUndefined Kind = iota
	// KindBinary is a binary operator node whose grammar folds comparison
	// and arithmetic into one node type (Go/Rust/C++/TypeScript's
	// binary_expression); the two are told apart by sniffing the operator
	// token's own text.
	KindBinary
	// KindCompare is a binary operator node a grammar already separates out
	// as comparison/boolean (Python's comparison_operator/boolean_operator):
	// inferred type is always bool, no text sniff needed.
	KindCompare
	// KindArith is a binary operator node a grammar already separates out
	// as arithmetic only (Python's binary_operator): inferred type is the
	// left operand's type.
	KindArith
	// KindFieldAccess is `x.field` / `x->field`: inferred type is the
	// field's declared type.
	KindFieldAccess
	// KindUnaryRef is `*x` / `&x`: inferred type strips the reference,
	// i.e. is the operand's own type.
	KindUnaryRef
	// KindAwait is `await e`: inferred type is e's inner/unwrapped type.
	KindAwait
	// KindCast is `e as T`, `<T>e`, C-style `(T)e`: inferred type is T.
	KindCast
	// KindIf is an if/else *expression* (ternary, Rust if-expression,
	// Python conditional_expression): inferred type is the consequent
	// branch's type.
	KindIf
	// KindNew is a struct literal / `new Type(...)`: inferred type is the
	// type symbol itself.
	KindNew
)

// Classifier resolves a HIR node's grammar kind id to the expr.Kind it
// should be treated as for type inference. lang.Language implements this
// structurally for languages whose Config sets ExprKinds; bind.Binder type
// -asserts for it rather than requiring every Language implementation (real
// or test fake) to provide one.
type Classifier interface {
	ExprKind(kindID uint16) Kind
}
