package block

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/llmcc/ids"
)

func TestRelationMap_OutIn(t *testing.T) {
	m := NewRelationMap()
	m.Insert(1, 2, RelCalls)

	assert.Equal(t, []ids.BlockId{2}, m.Out(1, RelCalls))
	assert.Equal(t, []ids.BlockId{1}, m.In(2, RelCalls))
	assert.Empty(t, m.Out(2, RelCalls))
}

func TestRelationMap_InsertIdempotent(t *testing.T) {
	m := NewRelationMap()
	m.Insert(1, 2, RelUses)
	m.Insert(1, 2, RelUses)
	m.Insert(1, 2, RelUses)

	assert.Equal(t, []ids.BlockId{2}, m.Out(1, RelUses))
}

func TestRelationMap_ReverseDoesNotAutoInsert(t *testing.T) {
	m := NewRelationMap()
	m.Insert(1, 2, RelUses)

	// Insert never auto-inserts the logical inverse relation; callers that
	// want the symmetric pair must do it themselves via Reverse.
	assert.Empty(t, m.Out(2, RelUsedBy))

	m.Insert(2, 1, Reverse(RelUses))
	assert.Equal(t, []ids.BlockId{1}, m.Out(2, RelUsedBy))
}

func TestReverse_SymmetricPairs(t *testing.T) {
	assert.Equal(t, RelUsedBy, Reverse(RelUses))
	assert.Equal(t, RelUses, Reverse(RelUsedBy))
	assert.Equal(t, RelDependedBy, Reverse(RelDependsOn))
	assert.Equal(t, RelDependsOn, Reverse(RelDependedBy))
	assert.Equal(t, RelHasImpl, Reverse(RelImplements))
	assert.Equal(t, RelImplements, Reverse(RelHasImpl))
}

func TestReverse_NoNaturalInverseReflects(t *testing.T) {
	assert.Equal(t, RelCalls, Reverse(RelCalls))
	assert.Equal(t, RelContains, Reverse(RelContains))
}

func TestRelationMap_Related(t *testing.T) {
	m := NewRelationMap()
	m.Insert(1, 2, RelCalls)
	m.Insert(3, 1, RelCalls)
	m.Insert(1, 4, RelUses)

	got := m.Related(1, []Relation{RelCalls, RelUses})
	assert.Equal(t, []ids.BlockId{2, 3, 4}, got)
}

func TestRelationMap_Merge(t *testing.T) {
	a := NewRelationMap()
	a.Insert(1, 2, RelCalls)

	b := NewRelationMap()
	b.Insert(3, 4, RelUses)
	b.Insert(1, 2, RelCalls) // duplicate across maps, must dedupe

	a.Merge(b)

	assert.Equal(t, []ids.BlockId{2}, a.Out(1, RelCalls))
	assert.Equal(t, []ids.BlockId{4}, a.Out(3, RelUses))
}

func TestBlock_SetParentAppendsChild(t *testing.T) {
	parent := New(KindClass, 10)
	parent.ID = 1
	child := New(KindFunc, 11)
	child.ID = 2

	child.SetParent(parent)

	assert.True(t, child.HasParent)
	assert.Equal(t, ids.BlockId(1), child.Parent)
	assert.Equal(t, []ids.BlockId{2}, parent.Children)
}
