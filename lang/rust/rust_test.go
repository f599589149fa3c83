package rust

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tsrust "github.com/smacker/go-tree-sitter/rust"

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
	assert.Equal(t, "rust", l.Name())
	assert.Equal(t, []string{".rs"}, l.Extensions())
}

func TestNew_ResolvesStructAndImplKinds(t *testing.T) {
	l := New()
	grammar := tsrust.GetLanguage()

	structID := symbolIDForName(grammar, "struct_item")
	require.NotZero(t, structID)
	assert.Equal(t, hir.KindScope, l.HirKind(structID))
	assert.Equal(t, block.KindClass, l.BlockKind(structID))

	implID := symbolIDForName(grammar, "impl_item")
	require.NotZero(t, implID)
	assert.Equal(t, hir.KindScope, l.HirKind(implID))
	assert.Equal(t, block.KindImpl, l.BlockKind(implID))
}
