package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdomgen/internal/card"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/selection"
)

func smallCatalog() (*catalog.Catalog, *pile.Pile, *pile.Pile) {
	witch := &card.Card{Name: "Witch", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action", "Attack"}, Cost: cost.NewCoin(5), Keywords: []string{"curser"}}
	moat := &card.Card{Name: "Moat", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action", "Reaction"}, Cost: cost.NewCoin(2)}
	pWitch := pile.New("Witch")
	pWitch.AddCard(witch)
	pMoat := pile.New("Moat")
	pMoat.AddCard(moat)
	c := catalog.New([]*pile.Pile{pWitch, pMoat}, []*card.Card{witch, moat})
	return c, pWitch, pMoat
}

func TestAddPileRespectsMarketCap(t *testing.T) {
	c, pWitch, pMoat := smallCatalog()
	it, _ := c.Iterators(c.GeneralProperty())
	sel := selection.NewWithCap(c, it, 1)

	require.True(t, sel.AddPile(pWitch))
	assert.False(t, sel.AddPile(pMoat))
	assert.Equal(t, 1, sel.NormalPileCount())
}

func TestAddPileRejectsDuplicate(t *testing.T) {
	c, pWitch, _ := smallCatalog()
	it, _ := c.Iterators(c.GeneralProperty())
	sel := selection.New(c, it)

	require.True(t, sel.AddPile(pWitch))
	assert.False(t, sel.AddPile(pWitch))
}

func TestDuplicateIsIndependent(t *testing.T) {
	c, pWitch, pMoat := smallCatalog()
	it, _ := c.Iterators(c.GeneralProperty())
	sel := selection.New(c, it)
	sel.AddPile(pWitch)

	dup := sel.Duplicate()
	dup.AddPile(pMoat)

	assert.False(t, sel.Contains(pMoat))
	assert.True(t, dup.Contains(pMoat))
	assert.True(t, dup.Contains(pWitch))
}

func TestSetNeedToCheckAccumulatesBlame(t *testing.T) {
	c, _, _ := smallCatalog()
	it, _ := c.Iterators(c.GeneralProperty())
	sel := selection.New(c, it)

	sel.SetNeedToCheck(true, "Witch")
	sel.SetNeedToCheck(true, "Moat")
	assert.Equal(t, "Witch,Moat", sel.TargetBlame())

	sel.SetNeedToCheck(false, "")
	assert.False(t, sel.NeedToCheckCostTargets())
}

func TestGeneralPileIteratesIndependentlyAfterDuplicate(t *testing.T) {
	c, _, _ := smallCatalog()
	it, ok := c.Iterators(c.GeneralProperty())
	require.True(t, ok)
	sel := selection.New(c, it)

	first, ok := sel.GeneralPile()
	require.True(t, ok)

	dup := sel.Duplicate()
	second, ok := dup.GeneralPile()
	require.True(t, ok)
	assert.NotEqual(t, first.Name(), second.Name())

	// the original's cursor is unaffected by the duplicate's draw
	third, ok := sel.GeneralPile()
	require.True(t, ok)
	assert.Equal(t, second.Name(), third.Name())
}
