package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/llmcc/ids"
)

func TestLink_ReciprocalEdges(t *testing.T) {
	store := NewStore(4)
	a := store.Alloc(New("A", 1, 0, KindStruct))
	b := store.Alloc(New("B", 2, 0, KindStruct))

	Link(store.Get, a, b, DepUses)

	aSym, _ := store.Get(a)
	bSym, _ := store.Get(b)

	assert.Equal(t, []Edge{{Other: b, Kind: DepUses}}, aSym.Depends())
	assert.Equal(t, []Edge{{Other: a, Kind: DepUses}}, bSym.Depended())
	assert.Empty(t, aSym.Depended())
	assert.Empty(t, bSym.Depends())
}

func TestLink_IdempotentOnRepeat(t *testing.T) {
	store := NewStore(4)
	a := store.Alloc(New("A", 1, 0, KindStruct))
	b := store.Alloc(New("B", 2, 0, KindStruct))

	Link(store.Get, a, b, DepCalls)
	Link(store.Get, a, b, DepCalls)
	Link(store.Get, a, b, DepCalls)

	aSym, _ := store.Get(a)
	bSym, _ := store.Get(b)
	assert.Len(t, aSym.Depends(), 1)
	assert.Len(t, bSym.Depended(), 1)
}

func TestLink_DistinctKindsBothRecorded(t *testing.T) {
	store := NewStore(4)
	a := store.Alloc(New("A", 1, 0, KindStruct))
	b := store.Alloc(New("B", 2, 0, KindStruct))

	Link(store.Get, a, b, DepUses)
	Link(store.Get, a, b, DepCalls)

	aSym, _ := store.Get(a)
	assert.Len(t, aSym.Depends(), 2)
}

func TestLink_UnknownSymbolIsNoop(t *testing.T) {
	store := NewStore(4)
	a := store.Alloc(New("A", 1, 0, KindStruct))
	assert.NotPanics(t, func() {
		Link(store.Get, a, ids.SymId(999), DepUses)
	})
}

func TestKind_IsResolved(t *testing.T) {
	assert.True(t, KindStruct.IsResolved())
	assert.True(t, KindFunction.IsResolved())
	assert.False(t, KindUnresolvedType.IsResolved())
}

func TestStore_ZeroSlotReserved(t *testing.T) {
	store := NewStore(4)
	_, ok := store.Get(0)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())

	id := store.Alloc(New("X", 1, 0, KindVariable))
	assert.Equal(t, ids.SymId(1), id)
	assert.Equal(t, 1, store.Len())
}
