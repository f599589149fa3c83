package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/symbol"
)

// fakeClassifier maps a handful of made-up grammar kind ids onto block
// kinds, standing in for a lang.Language in this package-local test (block
// never imports lang; Classifier is satisfied structurally).
type fakeClassifier map[uint16]Kind

func (f fakeClassifier) BlockKind(kindID uint16) Kind {
	if k, ok := f[kindID]; ok {
		return k
	}
	return KindUndefined
}

const (
	kindRootGrammar  uint16 = 1
	kindClassGrammar uint16 = 2
	kindFuncGrammar  uint16 = 3
	kindOtherGrammar uint16 = 4
)

// buildTree constructs: root -> class -> [func, other(transparent) -> func]
func buildTree(t *testing.T, hirStore *hir.Store) ids.HirId {
	t.Helper()

	innerFunc := &hir.Node{Base: hir.Base{KindID: kindFuncGrammar}}
	innerFuncID := hirStore.Alloc(innerFunc)

	transparent := &hir.Node{Base: hir.Base{KindID: kindOtherGrammar, Children: []ids.HirId{innerFuncID}}}
	transparentID := hirStore.Alloc(transparent)

	outerFunc := &hir.Node{Base: hir.Base{KindID: kindFuncGrammar}}
	outerFuncID := hirStore.Alloc(outerFunc)

	class := &hir.Node{Base: hir.Base{KindID: kindClassGrammar, Children: []ids.HirId{outerFuncID, transparentID}}}
	classID := hirStore.Alloc(class)

	root := &hir.Node{Base: hir.Base{KindID: kindRootGrammar, Children: []ids.HirId{classID}}}
	rootID := hirStore.Alloc(root)
	return rootID
}

func TestBuilder_Build_SkipsUndefinedButRecursesThrough(t *testing.T) {
	hirStore := hir.NewStore(16)
	syms := symbol.NewStore(16)
	blocks := NewStore(16)
	classifier := fakeClassifier{
		kindRootGrammar:  KindRoot,
		kindClassGrammar: KindClass,
		kindFuncGrammar:  KindFunc,
		// kindOtherGrammar intentionally absent -> Undefined, transparent
	}

	rootHir := buildTree(t, hirStore)
	builder := NewBuilder(hirStore, syms, blocks, classifier)
	rootBlockID := builder.Build(rootHir)

	rootBlock := blocks.Get(rootBlockID)
	require.NotNil(t, rootBlock)
	assert.Equal(t, KindRoot, rootBlock.Kind)
	require.Len(t, rootBlock.Children, 1)

	classBlock := blocks.Get(rootBlock.Children[0])
	require.NotNil(t, classBlock)
	assert.Equal(t, KindClass, classBlock.Kind)

	// both funcs attach directly under class: the transparent undefined
	// node in between allocates no block of its own.
	assert.Len(t, classBlock.Children, 2)
	assert.Len(t, classBlock.Methods, 2)
	for _, childID := range classBlock.Children {
		child := blocks.Get(childID)
		require.NotNil(t, child)
		assert.Equal(t, KindFunc, child.Kind)
		assert.Equal(t, classBlock.ID, child.Parent)
	}
}

func TestBuilder_Build_AttachesSymbolFromScopeIdent(t *testing.T) {
	hirStore := hir.NewStore(16)
	syms := symbol.NewStore(16)
	blocks := NewStore(16)
	classifier := fakeClassifier{kindClassGrammar: KindClass}

	identNode := &hir.Node{Base: hir.Base{KindID: 0}}
	identID := hirStore.Alloc(identNode)
	sym := symbol.New("Widget", 1, identID, symbol.KindStruct)
	symID := syms.Alloc(sym)
	identNode.AttachSymbol(symID)

	class := &hir.Node{Base: hir.Base{KindID: kindClassGrammar}, ScopeIdent: identID, HasIdent: true}
	classID := hirStore.Alloc(class)

	builder := NewBuilder(hirStore, syms, blocks, classifier)
	blockID := builder.Build(classID)

	blk := blocks.Get(blockID)
	require.NotNil(t, blk)
	assert.True(t, blk.HasSymbol)
	assert.Equal(t, symID, blk.Symbol)

	boundSym, ok := syms.Get(symID)
	require.True(t, ok)
	assert.True(t, boundSym.HasBlock)
	assert.Equal(t, blockID, boundSym.BlockID)
}

func TestLinkRelations_InsertsBothDirectionsForSymmetricRelation(t *testing.T) {
	syms := symbol.NewStore(8)
	relations := NewRelationMap()

	a := symbol.New("A", 1, 0, symbol.KindStruct)
	aID := syms.Alloc(a)
	b := symbol.New("B", 2, 0, symbol.KindStruct)
	bID := syms.Alloc(b)

	a.BlockID, a.HasBlock = 10, true
	b.BlockID, b.HasBlock = 20, true

	symbol.Link(syms.Get, aID, bID, symbol.DepUses)

	LinkRelations(syms, relations)

	assert.Equal(t, []ids.BlockId{20}, relations.Out(10, RelUses))
	assert.Equal(t, []ids.BlockId{10}, relations.Out(20, RelUsedBy))
}

func TestLinkRelations_SkipsSymbolsWithoutBlocks(t *testing.T) {
	syms := symbol.NewStore(8)
	relations := NewRelationMap()

	a := symbol.New("A", 1, 0, symbol.KindStruct)
	aID := syms.Alloc(a)
	b := symbol.New("B", 2, 0, symbol.KindStruct)
	bID := syms.Alloc(b)
	// neither symbol has a block attached

	symbol.Link(syms.Get, aID, bID, symbol.DepUses)
	LinkRelations(syms, relations)

	assert.Empty(t, relations.Out(0, RelUses))
}
