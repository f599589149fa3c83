package golang

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tsgo "github.com/smacker/go-tree-sitter/golang"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/hir"
)

func symbolIDForName(grammar *sitter.Language, name string) uint16 {
	count := grammar.SymbolCount()
	for id := uint16(0); id < uint16(count); id++ {
		if grammar.SymbolName(sitter.Symbol(id)) == name {
			return id
		}
	}
	return 0
}

func TestNew_NameAndExtensions(t *testing.T) {
	l := New()
	assert.Equal(t, "go", l.Name())
	assert.Equal(t, []string{".go"}, l.Extensions())
}

func TestNew_ResolvesFunctionAndStructKinds(t *testing.T) {
	l := New()
	grammar := tsgo.GetLanguage()

	funcID := symbolIDForName(grammar, "function_declaration")
	require.NotZero(t, funcID)
	assert.Equal(t, hir.KindScope, l.HirKind(funcID))
	assert.Equal(t, block.KindFunc, l.BlockKind(funcID))

	structID := symbolIDForName(grammar, "struct_type")
	require.NotZero(t, structID)
	assert.Equal(t, hir.KindScope, l.HirKind(structID))
	assert.Equal(t, block.KindClass, l.BlockKind(structID))
}
