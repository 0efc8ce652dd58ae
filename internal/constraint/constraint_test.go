package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdomgen/internal/card"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/constraint"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/property"
	"kingdomgen/internal/selection"
)

func buildCatalog(cards ...*card.Card) *catalog.Catalog {
	var piles []*pile.Pile
	for _, c := range cards {
		pn := c.PileName
		if pn == "" {
			pn = c.Name
		}
		pp := pile.New(pn)
		pp.AddCard(c)
		piles = append(piles, pp)
	}
	return catalog.New(piles, cards)
}

func TestBaneConstraintStatusTransitions(t *testing.T) {
	bane := &card.Card{Name: "Bane", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action"}, Cost: cost.NewCoin(2)}
	yw := &card.Card{Name: "Young Witch", Group: "base", InSupply: true, IsKingdom: true, Cost: cost.NewCoin(4)}
	c := buildCatalog(bane, yw)
	build := func(s *selection.Selection) (*selection.Selection, error) { return s, nil }

	con := constraint.Bane(c, build)
	gen, _ := c.Iterators(c.GeneralProperty())
	sel := selection.New(c, gen)

	assert.Equal(t, selection.StatusOK, con.GetStatus(sel))

	ywPile, _ := c.PileForCard("Young Witch")
	sel.AddPile(ywPile)
	assert.Equal(t, selection.StatusActionRequired, con.GetStatus(sel))

	res, err := con.Act(sel)
	require.NoError(t, err)
	assert.Equal(t, selection.StatusOK, con.GetStatus(res))
}

func TestMaxCostRepeatFailsOverThreshold(t *testing.T) {
	con := constraint.MaxCostRepeat(1)
	c1 := &card.Card{Name: "A", Group: "base", InSupply: true, Cost: cost.NewCoin(3)}
	c2 := &card.Card{Name: "B", Group: "base", InSupply: true, Cost: cost.NewCoin(3)}
	c := buildCatalog(c1, c2)
	gen, _ := c.Iterators(c.GeneralProperty())
	sel := selection.New(c, gen)

	p1, _ := c.PileForCard("A")
	p2, _ := c.PileForCard("B")
	sel.AddPile(p1)
	assert.Equal(t, selection.StatusOK, con.GetStatus(sel))
	sel.AddPile(p2)
	assert.Equal(t, selection.StatusFail, con.GetStatus(sel))
}

func TestMaxTypeFailsOverThreshold(t *testing.T) {
	a1 := &card.Card{Name: "A1", Group: "base", InSupply: true, IsKingdom: true, Types: []string{"Attack"}, Cost: cost.NewCoin(3)}
	a2 := &card.Card{Name: "A2", Group: "base", InSupply: true, IsKingdom: true, Types: []string{"Attack"}, Cost: cost.NewCoin(4)}
	c := buildCatalog(a1, a2)
	con := constraint.MaxType(c, "Attack", 1)
	require.NotNil(t, con)
	gen, _ := c.Iterators(c.GeneralProperty())
	sel := selection.New(c, gen)
	p1, _ := c.PileForCard("A1")
	p2, _ := c.PileForCard("A2")

	sel.AddPile(p1)
	assert.Equal(t, selection.StatusOK, con.GetStatus(sel))
	sel.AddPile(p2)
	assert.Equal(t, selection.StatusFail, con.GetStatus(sel))
}

func TestUnsatisfiableAlwaysFails(t *testing.T) {
	con := constraint.Unsatisfiable("no candidates")
	c := buildCatalog()
	gen, _ := c.Iterators(property.NewKingdomAndSupply())
	sel := selection.New(c, gen)
	assert.Equal(t, selection.StatusFail, con.GetStatus(sel))
}
