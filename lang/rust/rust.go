// Package rust adapts the tree-sitter Rust grammar to the lang.Language
// contract (spec.md §4.3). Rust is the language spec.md's examples and
// §8 scenarios are written against (trait/impl/struct/crate/super).
package rust

import (
	tsrust "github.com/smacker/go-tree-sitter/rust"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/expr"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/lang"
)

// New returns the Rust Language implementation.
func New() lang.Language {
	return lang.New(lang.Config{
		Name:       "rust",
		Extensions: []string{".rs"},
		Grammar:    tsrust.GetLanguage(),
		HirKinds: map[string]hir.Kind{
			"source_file":        hir.KindFile,
			"use_declaration":    hir.KindInternal,
			"mod_item":           hir.KindScope,
			"function_item":      hir.KindScope,
			"struct_item":        hir.KindScope,
			"enum_item":          hir.KindScope,
			"trait_item":         hir.KindScope,
			"impl_item":          hir.KindScope,
			"block":              hir.KindScope,
			"closure_expression": hir.KindScope,
			"identifier":         hir.KindIdent,
			"field_identifier":   hir.KindIdent,
			"type_identifier":    hir.KindIdent,
			"crate":              hir.KindIdent,
			"super":              hir.KindIdent,
			"self":               hir.KindIdent,
			"string_literal":     hir.KindText,
			"integer_literal":    hir.KindText,
			"float_literal":      hir.KindText,
			"boolean_literal":    hir.KindText,
			"line_comment":       hir.KindComment,
			"block_comment":      hir.KindComment,
		},
		BlockKinds: map[string]block.Kind{
			"source_file":       block.KindRoot,
			"function_item":     block.KindFunc,
			"struct_item":       block.KindClass,
			"enum_item":         block.KindClass,
			"trait_item":        block.KindClass,
			"impl_item":         block.KindImpl,
			"call_expression":   block.KindCall,
			"let_declaration":   block.KindStmt,
			"field_declaration": block.KindField,
			"parameter":         block.KindParam,
		},
		ExprKinds: map[string]expr.Kind{
			"binary_expression":    expr.KindBinary,
			"field_expression":     expr.KindFieldAccess,
			"reference_expression": expr.KindUnaryRef,
			"unary_expression":     expr.KindUnaryRef,
			"await_expression":     expr.KindAwait,
			"type_cast_expression": expr.KindCast,
			"if_expression":        expr.KindIf,
			"struct_expression":    expr.KindNew,
		},
	})
}
