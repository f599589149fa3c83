// Package golang adapts the tree-sitter Go grammar to the lang.Language
// contract (spec.md §4.3).
package golang

import (
	tsgo "github.com/smacker/go-tree-sitter/golang"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/expr"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/lang"
)

// New returns the Go Language implementation.
func New() lang.Language {
	return lang.New(lang.Config{
		Name:       "go",
		Extensions: []string{".go"},
		Grammar:    tsgo.GetLanguage(),
		HirKinds: map[string]hir.Kind{
			"source_file":                hir.KindFile,
			"package_clause":             hir.KindInternal,
			"import_declaration":         hir.KindInternal,
			"function_declaration":       hir.KindScope,
			"method_declaration":         hir.KindScope,
			"type_declaration":           hir.KindScope,
			"type_spec":                  hir.KindScope,
			"struct_type":                hir.KindScope,
			"interface_type":             hir.KindScope,
			"block":                      hir.KindScope,
			"identifier":                 hir.KindIdent,
			"field_identifier":           hir.KindIdent,
			"type_identifier":            hir.KindIdent,
			"package_identifier":         hir.KindIdent,
			"interpreted_string_literal": hir.KindText,
			"raw_string_literal":         hir.KindText,
			"int_literal":                hir.KindText,
			"float_literal":              hir.KindText,
			"comment":                    hir.KindComment,
		},
		BlockKinds: map[string]block.Kind{
			"source_file":           block.KindRoot,
			"function_declaration":  block.KindFunc,
			"method_declaration":    block.KindFunc,
			"type_spec":             block.KindClass,
			"struct_type":           block.KindClass,
			"interface_type":        block.KindClass,
			"call_expression":       block.KindCall,
			"short_var_declaration": block.KindStmt,
			"var_declaration":       block.KindStmt,
			"const_declaration":     block.KindStmt,
			"field_declaration":     block.KindField,
			"parameter_declaration": block.KindParam,
		},
		ExprKinds: map[string]expr.Kind{
			"binary_expression":         expr.KindBinary,
			"selector_expression":       expr.KindFieldAccess,
			"unary_expression":          expr.KindUnaryRef,
			"type_assertion_expression": expr.KindCast,
			"composite_literal":         expr.KindNew,
		},
	})
}
