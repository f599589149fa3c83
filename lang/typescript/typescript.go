// Package typescript adapts the tree-sitter TypeScript grammar to the
// lang.Language contract (spec.md §4.3).
package typescript

import (
	tsts "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/expr"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/lang"
)

// New returns the TypeScript Language implementation.
func New() lang.Language {
	return lang.New(lang.Config{
		Name:       "typescript",
		Extensions: []string{".ts", ".tsx"},
		Grammar:    tsts.GetLanguage(),
		HirKinds: map[string]hir.Kind{
			"program":                hir.KindFile,
			"import_statement":       hir.KindInternal,
			"function_declaration":   hir.KindScope,
			"method_definition":      hir.KindScope,
			"class_declaration":      hir.KindScope,
			"interface_declaration":  hir.KindScope,
			"type_alias_declaration": hir.KindScope,
			"enum_declaration":       hir.KindScope,
			"statement_block":        hir.KindScope,
			"arrow_function":         hir.KindScope,
			"identifier":             hir.KindIdent,
			"property_identifier":    hir.KindIdent,
			"type_identifier":        hir.KindIdent,
			"string":                 hir.KindText,
			"number":                 hir.KindText,
			"template_string":        hir.KindText,
			"comment":                hir.KindComment,
		},
		BlockKinds: map[string]block.Kind{
			"program":                 block.KindRoot,
			"function_declaration":    block.KindFunc,
			"method_definition":       block.KindFunc,
			"arrow_function":          block.KindFunc,
			"class_declaration":       block.KindClass,
			"interface_declaration":   block.KindClass,
			"enum_declaration":        block.KindClass,
			"call_expression":         block.KindCall,
			"lexical_declaration":     block.KindStmt,
			"variable_declaration":    block.KindStmt,
			"public_field_definition": block.KindField,
			"required_parameter":      block.KindParam,
			"optional_parameter":      block.KindParam,
		},
		ExprKinds: map[string]expr.Kind{
			"binary_expression":  expr.KindBinary,
			"member_expression":  expr.KindFieldAccess,
			"await_expression":   expr.KindAwait,
			"as_expression":      expr.KindCast,
			"ternary_expression": expr.KindIf,
			"new_expression":     expr.KindNew,
		},
	})
}
