package property_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/proflevels/internal/game/property"
)

func TestAll_SixDistinctValidCodes(t *testing.T) {
	codes := property.All()
	require.Len(t, codes, 6)
	seen := make(map[property.Code]bool)
	for _, c := range codes {
		assert.True(t, c.Valid(), "code %q must be valid", c)
		assert.False(t, seen[c], "code %q listed twice", c)
		seen[c] = true
	}
}

func TestParseCode(t *testing.T) {
	c, err := property.ParseCode("  Strength ")
	require.NoError(t, err)
	assert.Equal(t, property.Strength, c)

	_, err = property.ParseCode("luck")
	assert.Error(t, err)
}

func TestCode_Abbrev(t *testing.T) {
	assert.Equal(t, "KNA", property.Knack.Abbrev())
	assert.Equal(t, "<luck>", property.Code("luck").Abbrev())
}

func TestIncrements_GetAndOf(t *testing.T) {
	in := property.Increments{Strength: 1, Agility: 2, Knack: 3, Will: 4, Intelligence: 5, Charisma: 6}
	for i, c := range property.All() {
		assert.Equal(t, i+1, in.Get(c))
		inc := in.Of(c)
		assert.Equal(t, c, inc.Code())
		assert.Equal(t, i+1, inc.Value())
	}
	assert.Equal(t, 0, in.Get(property.Code("luck")))
	assert.Equal(t, 21, in.Sum())
}

func TestFromCodes(t *testing.T) {
	in := property.FromCodes(property.Will, property.Charisma)
	assert.Equal(t, property.Increments{Will: 1, Charisma: 1}, in)
	assert.Equal(t, 2, in.Sum())
}

// Property: With replaces exactly one delta and Sum tracks it.
func TestProperty_Increments_With(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		code := rapid.SampledFrom(property.All()).Draw(rt, "code")
		value := rapid.IntRange(-5, 5).Draw(rt, "value")
		in := property.Increments{}.With(code, value)
		if in.Get(code) != value {
			rt.Fatalf("Get(%s) = %d, want %d", code, in.Get(code), value)
		}
		if in.Sum() != value {
			rt.Fatalf("Sum() = %d, want %d", in.Sum(), value)
		}
	})
}
