// Package lang implements the Language trait of spec.md §4.3: one
// implementation per supported source language (Rust, TypeScript, C++,
// Python, Go), each wrapping a tree-sitter grammar and a table mapping
// grammar symbol/field names onto the uniform hir.Kind / block.Kind space.
package lang

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/expr"
	"github.com/viant/llmcc/hir"
)

// Language is the per-language contract of spec.md §4.3.
type Language interface {
	// Name is the short language tag used in Options.Languages
	// (e.g. "go", "rust", "typescript", "cpp", "python").
	Name() string
	Extensions() []string
	// Parse parses source bytes into the root hir.ParseNode this language's
	// Builder-facing adapter exposes.
	Parse(ctx context.Context, src []byte) (hir.ParseNode, error)
	HirKind(kindID uint16) hir.Kind
	BlockKind(kindID uint16) block.Kind
	FieldID(name string) uint16
}

// Config is the declarative table a concrete language package fills in;
// TreeSitterLanguage resolves the name-keyed tables into id-keyed ones once
// against the grammar's live symbol/field tables, mirroring how
// Language::field_id is a named accessor over numeric grammar slots
// (spec.md §4.3).
type Config struct {
	Name       string
	Extensions []string
	Grammar    *sitter.Language

	// HirKinds maps a grammar node type name (sitter.Node.Type()) to the
	// HIR kind it should classify as. Any symbol absent from this table
	// classifies as hir.KindInternal (a structural node with no payload).
	HirKinds map[string]hir.Kind

	// BlockKinds maps a grammar node type name to the block kind it
	// introduces. Absent entries classify as block.KindUndefined (no block
	// is built for that node, per spec.md §4.8).
	BlockKinds map[string]block.Kind

	// ExprKinds maps a grammar node type name to the expr.Kind bind.Binder's
	// type inference treats it as (spec.md §4.7's operator/member/cast/
	// await/if rows). Absent entries classify as expr.KindUndefined (the
	// inferType fallback applies).
	ExprKinds map[string]expr.Kind
}

// TreeSitterLanguage is the shared Language implementation every lang/*
// subpackage builds via New, grounded on the teacher's
// inspector/golang.TreeSitterInspector (parser.ParseCtx over one grammar).
type TreeSitterLanguage struct {
	cfg Config

	hirByID   map[uint16]hir.Kind
	blockByID map[uint16]block.Kind
	exprByID  map[uint16]expr.Kind
}

// New resolves cfg's name-keyed tables against the grammar's live symbol
// table and returns a ready-to-use Language.
func New(cfg Config) *TreeSitterLanguage {
	l := &TreeSitterLanguage{
		cfg:       cfg,
		hirByID:   make(map[uint16]hir.Kind, len(cfg.HirKinds)),
		blockByID: make(map[uint16]block.Kind, len(cfg.BlockKinds)),
		exprByID:  make(map[uint16]expr.Kind, len(cfg.ExprKinds)),
	}
	count := cfg.Grammar.SymbolCount()
	for id := uint16(0); id < uint16(count); id++ {
		name := cfg.Grammar.SymbolName(sitter.Symbol(id))
		if k, ok := cfg.HirKinds[name]; ok {
			l.hirByID[id] = k
		}
		if k, ok := cfg.BlockKinds[name]; ok {
			l.blockByID[id] = k
		}
		if k, ok := cfg.ExprKinds[name]; ok {
			l.exprByID[id] = k
		}
	}
	return l
}

func (l *TreeSitterLanguage) Name() string         { return l.cfg.Name }
func (l *TreeSitterLanguage) Extensions() []string { return l.cfg.Extensions }

// HirKind classifies a grammar symbol id, defaulting to KindInternal for
// any node the language's table doesn't name explicitly — most grammar
// productions are structural scaffolding with no HIR payload of their own
// (spec.md §4.3).
func (l *TreeSitterLanguage) HirKind(kindID uint16) hir.Kind {
	if k, ok := l.hirByID[kindID]; ok {
		return k
	}
	return hir.KindInternal
}

// BlockKind classifies a grammar symbol id, defaulting to Undefined (no
// block built) per spec.md §4.8.
func (l *TreeSitterLanguage) BlockKind(kindID uint16) block.Kind {
	if k, ok := l.blockByID[kindID]; ok {
		return k
	}
	return block.KindUndefined
}

// ExprKind classifies a grammar symbol id for type inference, defaulting to
// Undefined (inferType's structural fallback applies) per spec.md §4.7.
// TreeSitterLanguage satisfies expr.Classifier structurally; bind.Binder
// type-asserts for it so languages/test fakes that never set ExprKinds
// don't need to implement anything extra.
func (l *TreeSitterLanguage) ExprKind(kindID uint16) expr.Kind {
	if k, ok := l.exprByID[kindID]; ok {
		return k
	}
	return expr.KindUndefined
}

// FieldID resolves a named syntactic slot to the grammar's numeric field
// id, 0 if the grammar has no field by that name (spec.md §4.3).
func (l *TreeSitterLanguage) FieldID(name string) uint16 {
	count := l.cfg.Grammar.FieldCount()
	for id := uint16(1); id <= uint16(count); id++ {
		if l.cfg.Grammar.FieldName(id) == name {
			return id
		}
	}
	return 0
}

// Parse parses src with a fresh sitter.Parser bound to this language's
// grammar and wraps the root node for hir.Builder.
func (l *TreeSitterLanguage) Parse(ctx context.Context, src []byte) (hir.ParseNode, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(l.cfg.Grammar)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("lang: %s: parse failed: %w", l.cfg.Name, err)
	}
	return &node{n: tree.RootNode(), src: src, lang: l}, nil
}

// node adapts *sitter.Node to hir.ParseNode, resolving each child's field
// id through the owning language so hir.Builder never imports tree-sitter.
type node struct {
	n    *sitter.Node
	src  []byte
	lang *TreeSitterLanguage
	// fieldID is this node's own slot within its parent; 0 (no field) for
	// the root and for positional children.
	fieldID uint16
}

func (n *node) KindID() uint16    { return uint16(n.n.Symbol()) }
func (n *node) FieldID() uint16   { return n.fieldID }
func (n *node) StartByte() uint32 { return n.n.StartByte() }
func (n *node) EndByte() uint32   { return n.n.EndByte() }
func (n *node) ChildCount() int   { return int(n.n.ChildCount()) }

func (n *node) Child(i int) hir.ParseNode {
	child := n.n.Child(i)
	if child == nil {
		return nil
	}
	fieldID := uint16(0)
	if name := n.n.FieldNameForChild(i); name != "" {
		fieldID = n.lang.FieldID(name)
	}
	return &node{n: child, src: n.src, lang: n.lang, fieldID: fieldID}
}

func (n *node) Text() string {
	if n.n.StartByte() >= n.n.EndByte() || int(n.n.EndByte()) > len(n.src) {
		return ""
	}
	return string(n.src[n.n.StartByte():n.n.EndByte()])
}
