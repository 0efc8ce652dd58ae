package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kingdomgen/internal/card"
	"kingdomgen/internal/cost"
)

func TestCardEqualByName(t *testing.T) {
	a := &card.Card{Name: "Witch"}
	b := &card.Card{Name: "Witch", PileName: "witch-pile"}
	c := &card.Card{Name: "Moat"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestCardHasTypeAndKeyword(t *testing.T) {
	c := &card.Card{
		Name:     "Witch",
		Types:    []string{"Action", "Attack"},
		Keywords: []string{"curser"},
		Cost:     cost.NewCoin(5),
	}

	assert.True(t, c.HasType("Attack"))
	assert.False(t, c.HasType("Reaction"))
	assert.True(t, c.HasKeyword("curser"))
	assert.False(t, c.HasKeyword("reacts_to_attack"))
}
