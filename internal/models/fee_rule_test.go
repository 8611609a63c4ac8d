package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecificityRankBounds(t *testing.T) {
	allWild := FeeRule{Currency: Wildcard, Locale: Wildcard, Entity: Wildcard, EntityProperty: Wildcard}
	assert.Equal(t, 0, allWild.SpecificityRank())

	concrete := FeeRule{Currency: "NGN", Locale: LocaleLocal, Entity: EntityCreditCard, EntityProperty: "VISA"}
	assert.Equal(t, 4, concrete.SpecificityRank())
}

// Filling in any wildcard field strictly increases the rank.
func TestSpecificityRankMonotonicity(t *testing.T) {
	base := FeeRule{Currency: Wildcard, Locale: Wildcard, Entity: Wildcard, EntityProperty: Wildcard}

	fill := []func(*FeeRule){
		func(r *FeeRule) { r.Currency = "NGN" },
		func(r *FeeRule) { r.Locale = LocaleInternational },
		func(r *FeeRule) { r.Entity = EntityUSSD },
		func(r *FeeRule) { r.EntityProperty = "MTN" },
	}

	rule := base
	prev := rule.SpecificityRank()
	for _, f := range fill {
		f(&rule)
		next := rule.SpecificityRank()
		assert.Equal(t, prev+1, next)
		prev = next
	}
	assert.Equal(t, 4, prev)
}

func TestIsEntity(t *testing.T) {
	assert.True(t, IsEntity(Wildcard))
	assert.True(t, IsEntity(EntityBankAccount))
	assert.False(t, IsEntity("GIFT-CARD"))
	assert.False(t, IsEntity(""))
}
