package pile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdomgen/internal/card"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
)

func TestAddCardAggregatesProperties(t *testing.T) {
	p := pile.New("witch")
	c1 := &card.Card{
		Name: "Witch", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action", "Attack"}, Cost: cost.NewCoin(5),
		Keywords: []string{"curser"}, KwInteractions: []string{"reacts_to_attack"},
	}
	p.AddCard(c1)

	assert.True(t, p.HasType("Attack"))
	assert.True(t, p.HasKeyword("curser"))
	assert.True(t, p.HasKwInteraction("reacts_to_attack"))
	assert.True(t, p.Supply())
	assert.True(t, p.Kingdom())
	assert.Equal(t, "base", p.CardGroup())
	assert.True(t, p.Costs().Contains(cost.NewCoin(5)))
	require.Len(t, p.Cards(), 1)
}

func TestAddCardDeduplicatesByName(t *testing.T) {
	p := pile.New("witch")
	c := &card.Card{Name: "Witch", Cost: cost.NewCoin(5)}
	p.AddCard(c)
	p.AddCard(c)
	assert.Len(t, p.Cards(), 1)
}

func TestAddCardDeduplicatesCostTargetsByStrRep(t *testing.T) {
	p := pile.New("bureaucrat")
	target, ok := cost.Decode("cost<=4")
	require.True(t, ok)
	target2, ok := cost.Decode("cost<=4")
	require.True(t, ok)

	c1 := &card.Card{Name: "Bureaucrat", Cost: cost.NewCoin(4), CostTargets: []cost.Target{target}}
	c2 := &card.Card{Name: "Bureaucrat2", Cost: cost.NewCoin(4), CostTargets: []cost.Target{target2}}
	p.AddCard(c1)
	p.AddCard(c2)

	assert.Len(t, p.Targets(), 1)
}

func TestSetSortedByName(t *testing.T) {
	s := pile.NewSet()
	s.Add(pile.New("zebra"))
	s.Add(pile.New("alpha"))

	names := []string{}
	for _, p := range s.Sorted() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"alpha", "zebra"}, names)
}

func TestBySortedGroupThenName(t *testing.T) {
	a := pile.New("zebra")
	a.AddCard(&card.Card{Name: "Zebra", Group: "base", Cost: cost.NewCoin(3)})
	b := pile.New("alpha")
	b.AddCard(&card.Card{Name: "Alpha", Group: "intrigue", Cost: cost.NewCoin(3)})
	c := pile.New("beta")
	c.AddCard(&card.Card{Name: "Beta", Group: "base", Cost: cost.NewCoin(3)})

	ordered := pile.BySortedGroupThenName([]*pile.Pile{a, b, c})
	names := []string{ordered[0].Name(), ordered[1].Name(), ordered[2].Name()}
	assert.Equal(t, []string{"beta", "zebra", "alpha"}, names)
}
