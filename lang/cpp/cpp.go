// Package cpp adapts the tree-sitter C++ grammar to the lang.Language
// contract (spec.md §4.3).
package cpp

import (
	tscpp "github.com/smacker/go-tree-sitter/cpp"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/expr"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/lang"
)

// New returns the C++ Language implementation.
func New() lang.Language {
	return lang.New(lang.Config{
		Name:       "cpp",
		Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".h", ".hh"},
		Grammar:    tscpp.GetLanguage(),
		HirKinds: map[string]hir.Kind{
			"translation_unit":     hir.KindFile,
			"preproc_include":      hir.KindInternal,
			"function_definition":  hir.KindScope,
			"class_specifier":      hir.KindScope,
			"struct_specifier":     hir.KindScope,
			"enum_specifier":       hir.KindScope,
			"namespace_definition": hir.KindScope,
			"compound_statement":   hir.KindScope,
			"identifier":           hir.KindIdent,
			"field_identifier":     hir.KindIdent,
			"type_identifier":      hir.KindIdent,
			"namespace_identifier": hir.KindIdent,
			"string_literal":       hir.KindText,
			"number_literal":       hir.KindText,
			"comment":              hir.KindComment,
		},
		BlockKinds: map[string]block.Kind{
			"translation_unit":      block.KindRoot,
			"function_definition":   block.KindFunc,
			"class_specifier":       block.KindClass,
			"struct_specifier":      block.KindClass,
			"enum_specifier":        block.KindClass,
			"call_expression":       block.KindCall,
			"declaration":           block.KindStmt,
			"field_declaration":     block.KindField,
			"parameter_declaration": block.KindParam,
		},
		ExprKinds: map[string]expr.Kind{
			"binary_expression":      expr.KindBinary,
			"field_expression":       expr.KindFieldAccess,
			"pointer_expression":     expr.KindUnaryRef,
			"cast_expression":        expr.KindCast,
			"conditional_expression": expr.KindIf,
			"new_expression":         expr.KindNew,
		},
	})
}
