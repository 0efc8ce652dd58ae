package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kingdomgen/internal/cost"
)

func TestCostString(t *testing.T) {
	c := cost.NewCoin(3)
	assert.Equal(t, "(3,,)", c.String())

	potion := int8(1)
	coin := int8(4)
	c2 := cost.New(&coin, &potion, nil)
	assert.Equal(t, "(4,1D,)", c2.String())
	assert.True(t, c2.HasPotionComponent())
	assert.False(t, c2.HasDebtComponent())
}

func TestCostValid(t *testing.T) {
	assert.False(t, cost.Cost{}.Valid())
	assert.True(t, cost.NewCoin(0).Valid())
}

func TestSetIntersects(t *testing.T) {
	a := cost.NewSet(cost.NewCoin(2), cost.NewCoin(3))
	b := cost.NewSet(cost.NewCoin(3), cost.NewCoin(4))
	assert.True(t, cost.Intersects(a, b))

	c := cost.NewSet(cost.NewCoin(5))
	assert.False(t, cost.Intersects(a, c))
}

func TestSetContainsAndClone(t *testing.T) {
	s := cost.NewSet(cost.NewCoin(2))
	clone := s.Clone()
	clone.Add(cost.NewCoin(3))

	assert.True(t, s.Contains(cost.NewCoin(2)))
	assert.False(t, s.Contains(cost.NewCoin(3)))
	assert.True(t, clone.Contains(cost.NewCoin(3)))
}
