// Package hir implements the uniform high-level IR (component C of
// spec.md §2) built over tree-sitter parse trees: a HirNode sum type with a
// shared HirBase, stored in a ids.Arena and addressed by ids.HirId.
package hir

import "github.com/viant/llmcc/ids"

// Kind classifies a HIR node (spec.md §3.3).
type Kind uint8

const (
	KindUndefined Kind = iota
	KindRoot
	KindFile
	KindScope
	KindInternal
	KindText
	KindIdent
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindFile:
		return "File"
	case KindScope:
		return "Scope"
	case KindInternal:
		return "Internal"
	case KindText:
		return "Text"
	case KindIdent:
		return "Ident"
	case KindComment:
		return "Comment"
	default:
		return "Undefined"
	}
}

// Base carries the fields shared by every HIR node variant (spec.md §3.3).
type Base struct {
	ID         ids.HirId
	Parent     ids.HirId // InvalidHirId for the Root
	HasParent  bool
	KindID     uint16 // tree-sitter grammar kind id, from Language.HirKind's input
	FieldID    uint16 // syntactic slot this node occupies in its parent, 0 if none
	Kind       Kind
	StartByte  uint32
	EndByte    uint32
	Children   []ids.HirId
}

// Node is the HirNode sum type. Only the fields relevant to Kind are
// meaningful; this mirrors the teacher's single-struct-per-domain-object
// style (graph.Type, graph.Function) rather than a Go interface hierarchy,
// since every HIR node needs the same Base and differs only by a handful of
// optional payload fields.
type Node struct {
	Base

	// Scope-kind payload: the Ident naming this scope (if any) and the
	// Scope object attached once the collector builds it (§3.3, §3.4).
	ScopeIdent ids.HirId
	HasIdent   bool
	ScopeID    ids.ScopeId
	HasScope   bool

	// Ident-kind payload.
	Name       ids.InternedStr
	Symbol     ids.SymId
	HasSymbol  bool

	// Text/File-kind payload: literal text or file path, interned.
	Literal ids.InternedStr
}

// Text slices n's source range out of src, the unit's full source bytes.
func (n *Node) Text(src []byte) string {
	if n.StartByte >= n.EndByte || int(n.EndByte) > len(src) {
		return ""
	}
	return string(src[n.StartByte:n.EndByte])
}

// AttachScope sets the Scope back-reference on a Scope-kind node. Per
// spec.md §3.3, once set it is stable — callers must not call this twice
// with different values for the same node.
func (n *Node) AttachScope(id ids.ScopeId) {
	n.ScopeID = id
	n.HasScope = true
}

// AttachSymbol records the resolved/declared symbol for an Ident-kind node.
func (n *Node) AttachSymbol(id ids.SymId) {
	n.Symbol = id
	n.HasSymbol = true
}
