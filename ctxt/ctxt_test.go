package ctxt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/lang"
)

type fakeLanguage struct {
	name string
	ext  string
}

func (f *fakeLanguage) Name() string        { return f.name }
func (f *fakeLanguage) Extensions() []string { return []string{f.ext} }
func (f *fakeLanguage) Parse(context.Context, []byte) (hir.ParseNode, error) {
	return nil, nil
}
func (f *fakeLanguage) HirKind(uint16) hir.Kind     { return hir.KindUndefined }
func (f *fakeLanguage) BlockKind(uint16) block.Kind { return block.KindUndefined }
func (f *fakeLanguage) FieldID(string) uint16       { return 0 }

func newTestRegistry(t *testing.T) *lang.Registry {
	t.Helper()
	r := lang.NewRegistry(&fakeLanguage{name: "go", ext: ".go"}, &fakeLanguage{name: "rust", ext: ".rs"})
	return r
}

func TestNew_AllocatesGlobalScopeAtReservedID(t *testing.T) {
	c := New(newTestRegistry(t))
	require.NotZero(t, c.Globals)
	global := c.Scope(c.Globals)
	require.NotNil(t, global)
}

func TestFromSources_RegistersUnitsInSortedPathOrder(t *testing.T) {
	c := New(newTestRegistry(t))
	err := c.FromSources(map[string][]byte{
		"z.go": []byte("package z"),
		"a.go": []byte("package a"),
		"m.rs": []byte("fn m() {}"),
	})
	require.NoError(t, err)

	units := c.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "a.go", units[0].Path)
	assert.Equal(t, "m.rs", units[1].Path)
	assert.Equal(t, "z.go", units[2].Path)
	for i, u := range units {
		assert.Equal(t, i, u.Index)
	}
}

func TestFromSources_FiltersByLanguagesOption(t *testing.T) {
	c := New(newTestRegistry(t), WithLanguages("go"))
	err := c.FromSources(map[string][]byte{
		"a.go": []byte("package a"),
		"m.rs": []byte("fn m() {}"),
	})
	require.NoError(t, err)

	units := c.Units()
	require.Len(t, units, 1)
	assert.Equal(t, "a.go", units[0].Path)
}

func TestFromSources_UnknownExtensionErrors(t *testing.T) {
	c := New(newTestRegistry(t))
	err := c.FromSources(map[string][]byte{"x.unknown": []byte("?")})
	assert.Error(t, err)
}

func TestUnit_OutOfRangeReturnsNil(t *testing.T) {
	c := New(newTestRegistry(t))
	assert.Nil(t, c.Unit(0))
	assert.Nil(t, c.Unit(-1))
}

func TestAddUnresolved_AccumulatesSnapshot(t *testing.T) {
	c := New(newTestRegistry(t))
	c.AddUnresolved(UnresolvedRef{Name: "Foo"})
	c.AddUnresolved(UnresolvedRef{Name: "Bar"})

	got := c.Unresolved()
	require.Len(t, got, 2)
	assert.Equal(t, "Foo", got[0].Name)
	assert.Equal(t, "Bar", got[1].Name)

	// mutating the snapshot must not affect the context's own state.
	got[0].Name = "Mutated"
	assert.Equal(t, "Foo", c.Unresolved()[0].Name)
}

func TestNewOptions_AppliesOverridesOntoDefaults(t *testing.T) {
	o := NewOptions(WithSequential(true), WithTopK(5), WithComponentDepth(3))
	assert.True(t, o.Sequential)
	require.NotNil(t, o.TopK)
	assert.Equal(t, 5, *o.TopK)
	assert.Equal(t, 3, o.ComponentDepth)
}

func TestDefaultOptions_HasNilTopKAndDepthTwo(t *testing.T) {
	o := DefaultOptions()
	assert.Nil(t, o.TopK)
	assert.Equal(t, 2, o.ComponentDepth)
	assert.False(t, o.Sequential)
}

func TestInternPool_InternIsIdempotentAndResolveRoundTrips(t *testing.T) {
	p := NewInternPool()
	id1 := p.Intern("foo")
	id2 := p.Intern("foo")
	id3 := p.Intern("bar")

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.Equal(t, "foo", p.Resolve(id1))
	assert.Equal(t, "bar", p.Resolve(id3))
	assert.Equal(t, 2, p.Len())
}

func TestInternPool_ResolveUnknownIDReturnsEmpty(t *testing.T) {
	p := NewInternPool()
	assert.Equal(t, "", p.Resolve(999))
}
