package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterPoints(t *testing.T) {
	assert.Equal(t, 1, LetterPoints("א"))
	assert.Equal(t, 10, LetterPoints("ז"))
	assert.Equal(t, 3, LetterPoints("ם"), "final forms keep their own point value")
	assert.Equal(t, 0, LetterPoints(Joker))
	assert.Equal(t, 0, LetterPoints("x"))
}

func TestFinalForms(t *testing.T) {
	assert.True(t, IsFinalForm("ך"))
	assert.False(t, IsFinalForm("כ"))
	assert.False(t, IsFinalForm("א"))

	final, ok := ToFinalForm("מ")
	require.True(t, ok)
	assert.Equal(t, "ם", final)

	_, ok = ToFinalForm("א")
	assert.False(t, ok)

	assert.Equal(t, "שלומ", Regularize("שלום"))
	assert.Equal(t, "ככ", Regularize("כך"))
}

func TestWordVariants(t *testing.T) {
	// A word ending in a final form is also looked up with the medial
	// trailing letter and fully regularized.
	variants := WordVariants("שלום")
	assert.Contains(t, variants, "שלום")
	assert.Contains(t, variants, "שלומ")

	// A word ending in a medial letter that has a final form gains the
	// final-form spelling.
	variants = WordVariants("שלומ")
	assert.Contains(t, variants, "שלומ")
	assert.Contains(t, variants, "שלום")

	// No duplicates.
	seen := map[string]int{}
	for _, v := range WordVariants("שלום") {
		seen[v]++
	}
	for v, n := range seen {
		assert.Equal(t, 1, n, "variant %q appears more than once", v)
	}

	assert.Nil(t, WordVariants(""))
}

func TestNewBagComposition(t *testing.T) {
	assert.Equal(t, 110, NewBag(DefaultBagOptions(), 1).Len())

	noJokers := DefaultBagOptions()
	noJokers.IncludeJokers = false
	assert.Equal(t, 108, NewBag(noJokers, 1).Len())

	noFinals := DefaultBagOptions()
	noFinals.IncludeFinalForms = false
	assert.Equal(t, 103, NewBag(noFinals, 1).Len())
}

func TestBagDraw(t *testing.T) {
	bag := NewBag(DefaultBagOptions(), 7)
	drawn := bag.Draw(7)
	require.Len(t, drawn, 7)
	assert.Equal(t, 103, bag.Len())

	// Drawing past the end returns what is left.
	rest := bag.Draw(200)
	assert.Len(t, rest, 103)
	assert.Equal(t, 0, bag.Len())
	assert.Empty(t, bag.Draw(1))
}

func TestBagExchangeKeepsSize(t *testing.T) {
	bag := NewBag(DefaultBagOptions(), 11)
	hand := bag.Draw(7)
	before := bag.Len()

	drawn, err := bag.Exchange(hand[:3])
	require.NoError(t, err)
	assert.Len(t, drawn, 3)
	assert.Equal(t, before, bag.Len(), "exchange must not change the bag size")
}

func TestBagExchangeTooLarge(t *testing.T) {
	bag := RestoreBag([]string{"א"}, 1)
	_, err := bag.Exchange([]string{"ב", "ג"})
	assert.ErrorIs(t, err, ErrBagTooSmall)
	assert.Equal(t, 1, bag.Len(), "failed exchange must leave the bag untouched")
}

func TestBagSeedReproducible(t *testing.T) {
	a := NewBag(DefaultBagOptions(), 99)
	b := NewBag(DefaultBagOptions(), 99)
	assert.Equal(t, a.Tiles(), b.Tiles())
}
