package cpp

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tscpp "github.com/smacker/go-tree-sitter/cpp"

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
	assert.Equal(t, "cpp", l.Name())
	assert.Contains(t, l.Extensions(), ".cpp")
	assert.Contains(t, l.Extensions(), ".hpp")
}

func TestNew_ResolvesClassAndFunctionKinds(t *testing.T) {
	l := New()
	grammar := tscpp.GetLanguage()

	classID := symbolIDForName(grammar, "class_specifier")
	require.NotZero(t, classID)
	assert.Equal(t, hir.KindScope, l.HirKind(classID))
	assert.Equal(t, block.KindClass, l.BlockKind(classID))

	funcID := symbolIDForName(grammar, "function_definition")
	require.NotZero(t, funcID)
	assert.Equal(t, hir.KindScope, l.HirKind(funcID))
	assert.Equal(t, block.KindFunc, l.BlockKind(funcID))
}
