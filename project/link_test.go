package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ctxt"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/symbol"
)

func TestLinkUnits_ResolvesPlaceholderAndRelinksDependents(t *testing.T) {
	c := ctxt.New(nil)
	global := c.Scope(c.Globals)

	const nameKey = 42

	placeholder := symbol.New("Widget", nameKey, 0, symbol.KindUnresolvedType)
	placeholderID := c.Syms.Alloc(placeholder)
	global.InsertWithFQN(nameKey, placeholderID)

	owner := symbol.New("useWidget", 1, 0, symbol.KindFunction)
	ownerID := c.Syms.Alloc(owner)
	owner.BlockID, owner.HasBlock = 10, true
	symbol.Link(c.Symbol, ownerID, placeholderID, symbol.DepUses)

	c.AddUnresolved(ctxt.UnresolvedRef{Name: "Widget", NameKey: nameKey, Placeholder: placeholderID})

	// the real definition only shows up once every unit has been collected.
	real := symbol.New("Widget", nameKey, 0, symbol.KindStruct)
	realID := c.Syms.Alloc(real)
	real.BlockID, real.HasBlock = 20, true
	global.InsertWithFQN(nameKey, realID)

	relations := block.NewRelationMap()
	LinkUnits(c, relations)

	ownerSym, _ := c.Symbol(ownerID)
	var linkedToReal bool
	for _, e := range ownerSym.Depends() {
		if e.Other == realID && e.Kind == symbol.DepUses {
			linkedToReal = true
		}
	}
	assert.True(t, linkedToReal)
	require.Equal(t, []ids.BlockId{20}, relations.Out(10, block.RelDependsOn))
	assert.Equal(t, []ids.BlockId{10}, relations.Out(20, block.RelDependedBy))
}

func TestLinkUnits_IdempotentOnRepeatedRuns(t *testing.T) {
	c := ctxt.New(nil)
	global := c.Scope(c.Globals)
	const nameKey = 7

	placeholder := symbol.New("Thing", nameKey, 0, symbol.KindUnresolvedType)
	placeholderID := c.Syms.Alloc(placeholder)
	global.InsertWithFQN(nameKey, placeholderID)

	owner := symbol.New("caller", 1, 0, symbol.KindFunction)
	ownerID := c.Syms.Alloc(owner)
	symbol.Link(c.Symbol, ownerID, placeholderID, symbol.DepCalls)
	c.AddUnresolved(ctxt.UnresolvedRef{Name: "Thing", NameKey: nameKey, Placeholder: placeholderID})

	real := symbol.New("Thing", nameKey, 0, symbol.KindStruct)
	realID := c.Syms.Alloc(real)
	global.InsertWithFQN(nameKey, realID)

	relations := block.NewRelationMap()
	LinkUnits(c, relations)
	ownerSym, _ := c.Symbol(ownerID)
	firstDepends := ownerSym.Depends()

	LinkUnits(c, relations)
	secondDepends := ownerSym.Depends()

	assert.Equal(t, firstDepends, secondDepends)
	_ = realID
}

func TestLinkUnits_LeavesStillUnresolvedRefsAlone(t *testing.T) {
	c := ctxt.New(nil)
	const nameKey = 55

	placeholder := symbol.New("Ghost", nameKey, 0, symbol.KindUnresolvedType)
	placeholderID := c.Syms.Alloc(placeholder)
	c.AddUnresolved(ctxt.UnresolvedRef{Name: "Ghost", NameKey: nameKey, Placeholder: placeholderID})

	relations := block.NewRelationMap()
	assert.NotPanics(t, func() { LinkUnits(c, relations) })

	sym, ok := c.Symbol(placeholderID)
	require.True(t, ok)
	assert.Equal(t, symbol.KindUnresolvedType, sym.Kind)
}
