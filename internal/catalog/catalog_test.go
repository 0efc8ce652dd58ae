package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdomgen/internal/card"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/cost"
	"kingdomgen/internal/pile"
	"kingdomgen/internal/property"
	"kingdomgen/internal/randstream"
)

func buildSmallCatalog() *catalog.Catalog {
	witch := &card.Card{Name: "Witch", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action", "Attack"}, Cost: cost.NewCoin(5), Keywords: []string{"curser"}}
	moat := &card.Card{Name: "Moat", Group: "base", InSupply: true, IsKingdom: true,
		Types: []string{"Action", "Reaction"}, Cost: cost.NewCoin(2)}
	copper := &card.Card{Name: "Copper", Group: "base", InSupply: true, IsKingdom: false,
		Types: []string{"Treasure"}, Cost: cost.NewCoin(0)}

	pWitch := pile.New("Witch")
	pWitch.AddCard(witch)
	pMoat := pile.New("Moat")
	pMoat.AddCard(moat)
	pCopper := pile.New("Copper")
	pCopper.AddCard(copper)

	return catalog.New([]*pile.Pile{pWitch, pMoat, pCopper}, []*card.Card{witch, moat, copper})
}

func TestIteratorsFiltersAndCaches(t *testing.T) {
	c := buildSmallCatalog()
	gen := c.GeneralProperty()

	it, ok := c.Iterators(gen)
	require.True(t, ok)
	var names []string
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		names = append(names, p.Name())
	}
	assert.ElementsMatch(t, []string{"Witch", "Moat"}, names)

	it2, ok := c.Iterators(gen)
	require.True(t, ok)
	p, ok := it2.Next()
	require.True(t, ok)
	assert.NotEmpty(t, p.Name())
}

func TestIteratorsEmptyPropertyMisses(t *testing.T) {
	c := buildSmallCatalog()
	_, ok := c.Iterators(property.NewName("Nonexistent"))
	assert.False(t, ok)
}

func TestIteratorsRejectsSelectionProperty(t *testing.T) {
	c := buildSmallCatalog()
	_, ok := c.Iterators(property.NewNote("some-note"))
	assert.False(t, ok)
}

func TestPileForCard(t *testing.T) {
	c := buildSmallCatalog()
	p, ok := c.PileForCard("Witch")
	require.True(t, ok)
	assert.Equal(t, "Witch", p.Name())

	_, ok = c.PileForCard("Nope")
	assert.False(t, ok)
}

func TestValidateFlagsDanglingInteractions(t *testing.T) {
	witch := &card.Card{Name: "Witch", Group: "base", InSupply: true, IsKingdom: true,
		Cost: cost.NewCoin(5), OtherInteractions: []string{"card(Bane)", "group(Ghost)"}}
	p := pile.New("Witch")
	p.AddCard(witch)
	c := catalog.New([]*pile.Pile{p}, []*card.Card{witch})

	warnings := c.Validate()
	require.Len(t, warnings, 2)
}

func TestShuffleIsDeterministicForSameSeed(t *testing.T) {
	c1 := buildSmallCatalog()
	c2 := buildSmallCatalog()
	c1.Shuffle(randstream.NewBadRand(5, 3))
	c2.Shuffle(randstream.NewBadRand(5, 3))

	var n1, n2 []string
	for _, p := range c1.Piles() {
		n1 = append(n1, p.Name())
	}
	for _, p := range c2.Piles() {
		n2 = append(n2, p.Name())
	}
	assert.Equal(t, n1, n2)
}
