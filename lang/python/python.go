// Package python adapts the tree-sitter Python grammar to the
// lang.Language contract (spec.md §4.3).
package python

import (
	tspy "github.com/smacker/go-tree-sitter/python"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/expr"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/lang"
)

// New returns the Python Language implementation.
func New() lang.Language {
	return lang.New(lang.Config{
		Name:       "python",
		Extensions: []string{".py"},
		Grammar:    tspy.GetLanguage(),
		HirKinds: map[string]hir.Kind{
			"module":                hir.KindFile,
			"import_statement":      hir.KindInternal,
			"import_from_statement": hir.KindInternal,
			"function_definition":   hir.KindScope,
			"class_definition":      hir.KindScope,
			"block":                 hir.KindScope,
			"lambda":                hir.KindScope,
			"identifier":            hir.KindIdent,
			"string":                hir.KindText,
			"integer":               hir.KindText,
			"float":                 hir.KindText,
			"comment":               hir.KindComment,
		},
		BlockKinds: map[string]block.Kind{
			"module":              block.KindRoot,
			"function_definition": block.KindFunc,
			"class_definition":    block.KindClass,
			"call":                block.KindCall,
			"assignment":          block.KindStmt,
			"typed_parameter":     block.KindParam,
		},
		ExprKinds: map[string]expr.Kind{
			"comparison_operator":    expr.KindCompare,
			"boolean_operator":       expr.KindCompare,
			"binary_operator":        expr.KindArith,
			"attribute":              expr.KindFieldAccess,
			"await":                  expr.KindAwait,
			"conditional_expression": expr.KindIf,
		},
	})
}
