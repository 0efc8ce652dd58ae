package present_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdomgen/internal/card"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/present"
	"kingdomgen/internal/selection"
)

func buildCatalog(cards ...*card.Card) *catalog.Catalog {
	var piles []*pile.Pile
	byName := map[string]*pile.Pile{}
	for _, c := range cards {
		pn := c.PileName
		if pn == "" {
			pn = c.Name
		}
		pp, ok := byName[pn]
		if !ok {
			pp = pile.New(pn)
			byName[pn] = pp
			piles = append(piles, pp)
		}
		pp.AddCard(c)
	}
	return catalog.New(piles, cards)
}

func newSelection(c *catalog.Catalog) *selection.Selection {
	gen, _ := c.Iterators(c.GeneralProperty())
	return selection.New(c, gen)
}

func TestDumpGroupsPilesByExpansion(t *testing.T) {
	village := &card.Card{Name: "Village", Group: "Dominion1", InSupply: true, IsKingdom: true,
		Types: []string{"Action"}, Cost: cost.NewCoin(3)}
	duke := &card.Card{Name: "Duke", Group: "Intrigue", InSupply: true, IsKingdom: true,
		Types: []string{"Victory"}, Cost: cost.NewCoin(5)}
	c := buildCatalog(village, duke)
	sel := newSelection(c)

	villagePile, ok := c.PileForCard("Village")
	require.True(t, ok)
	dukePile, ok := c.PileForCard("Duke")
	require.True(t, ok)
	require.True(t, sel.AddPile(villagePile))
	require.True(t, sel.AddPile(dukePile))

	var out strings.Builder
	present.Dump(&out, sel, true, false)
	text := out.String()

	assert.Contains(t, text, "From Dominion1")
	assert.Contains(t, text, "From Intrigue")
	assert.Contains(t, text, "Village")
	assert.Contains(t, text, "Duke")
}

func TestDumpHidesInternalTagsUnlessShowAll(t *testing.T) {
	village := &card.Card{Name: "Village", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action"}, Cost: cost.NewCoin(3)}
	c := buildCatalog(village)
	sel := newSelection(c)
	villagePile, _ := c.PileForCard("Village")
	require.True(t, sel.AddPile(villagePile))
	sel.TagPile(villagePile, "<internal marker>")
	sel.TagPile(villagePile, "bane")

	var hidden strings.Builder
	present.Dump(&hidden, sel, false, false)
	assert.NotContains(t, hidden.String(), "internal marker")
	assert.Contains(t, hidden.String(), "bane")

	var shown strings.Builder
	present.Dump(&shown, sel, true, false)
	assert.Contains(t, shown.String(), "internal marker")
}

func TestDumpShowsTypesAndCostsWhenRequested(t *testing.T) {
	village := &card.Card{Name: "Village", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action"}, Cost: cost.NewCoin(3)}
	c := buildCatalog(village)
	sel := newSelection(c)
	villagePile, _ := c.PileForCard("Village")
	require.True(t, sel.AddPile(villagePile))

	var out strings.Builder
	present.Dump(&out, sel, true, true)
	assert.Contains(t, out.String(), "types=Action")
	assert.Contains(t, out.String(), "costs={(3,,)}")
}

func TestDumpCollectsItemInteractionsAndNeedItems(t *testing.T) {
	bandOfMisfits := &card.Card{Name: "Tournament", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action"}, Cost: cost.NewCoin(4), OtherInteractions: []string{"item(Prizes)"}}
	c := buildCatalog(bandOfMisfits)
	sel := newSelection(c)
	p, _ := c.PileForCard("Tournament")
	require.True(t, sel.AddPile(p))
	sel.AddItem("Trash mat")

	var out strings.Builder
	present.Dump(&out, sel, true, false)
	text := out.String()
	assert.Contains(t, text, "Need the following items:")
	assert.Contains(t, text, "Prizes")
	assert.Contains(t, text, "Trash mat")
}

func TestDumpOmitsItemsSectionWhenEmpty(t *testing.T) {
	village := &card.Card{Name: "Village", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action"}, Cost: cost.NewCoin(3)}
	c := buildCatalog(village)
	sel := newSelection(c)
	villagePile, _ := c.PileForCard("Village")
	require.True(t, sel.AddPile(villagePile))

	var out strings.Builder
	present.Dump(&out, sel, true, false)
	assert.NotContains(t, out.String(), "Need the following items")
}
