package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeWord(b *Board, row, col int, horizontal bool, letters ...string) {
	for i, l := range letters {
		r, c := row, col
		if horizontal {
			c += i
		} else {
			r += i
		}
		b[r][c] = &Cell{Letter: l, Owner: 0}
	}
}

func TestFindAllWordsBothDirections(t *testing.T) {
	b := NewBoard()
	placeWord(b, 7, 5, true, "ש", "ל", "ו", "ם")
	placeWord(b, 8, 5, false, "ל", "ם") // continues the ש at (7,5) downward

	words := b.FindAllWords()
	require.Len(t, words, 2)

	found := map[string]bool{}
	for _, w := range words {
		found[w.Word] = true
	}
	assert.True(t, found["שלום"])
	assert.True(t, found["שלם"])
}

func TestFindAllWordsIgnoresSingles(t *testing.T) {
	b := NewBoard()
	b[3][3] = &Cell{Letter: "א"}
	b[10][12] = &Cell{Letter: "ב"}
	assert.Empty(t, b.FindAllWords())
}

func TestFindAllWordsNewFlag(t *testing.T) {
	b := NewBoard()
	placeWord(b, 7, 5, true, "ש", "ל")
	b[7][7] = &Cell{Letter: "ם", IsNew: true, Owner: -1}

	words := b.FindAllWords()
	require.Len(t, words, 1)
	assert.True(t, words[0].IsNew, "one uncommitted cell makes the whole word new")
}

func TestOverlayDoesNotMutate(t *testing.T) {
	b := NewBoard()
	overlay := b.Overlay([]Placement{{Pos: Position{7, 7}, Letter: "א"}})

	assert.True(t, overlay.HasTile(7, 7))
	assert.False(t, b.HasTile(7, 7))
}

func TestCommitConvertsTrailingFinalForm(t *testing.T) {
	b := NewBoard()
	for i, l := range []string{"ש", "ל", "ו", "מ"} {
		b[7][4+i] = &Cell{Letter: l, IsNew: true, Owner: -1}
	}

	b.Commit(1)

	assert.Equal(t, "ם", b.TileAt(7, 7).Letter, "trailing medial letter becomes its final form")
	for c := 4; c <= 7; c++ {
		cell := b.TileAt(7, c)
		require.NotNil(t, cell)
		assert.False(t, cell.IsNew)
		assert.Equal(t, 1, cell.Owner)
	}
}

func TestCommitLeavesCommittedCellsAlone(t *testing.T) {
	b := NewBoard()
	// An already committed word ending in a medial letter stays as it
	// is; only words containing a new tile are converted.
	placeWord(b, 3, 3, true, "ש", "ל", "ו", "מ")
	b[10][10] = &Cell{Letter: "א", IsNew: true, Owner: -1}
	b[10][11] = &Cell{Letter: "ב", IsNew: true, Owner: -1}

	b.Commit(0)

	assert.Equal(t, "מ", b.TileAt(3, 6).Letter)
}

func TestCloneIsDeep(t *testing.T) {
	b := NewBoard()
	b[0][0] = &Cell{Letter: "א"}

	clone := b.Clone()
	clone[0][0].Letter = "ב"
	clone[1][1] = &Cell{Letter: "ג"}

	assert.Equal(t, "א", b.TileAt(0, 0).Letter)
	assert.False(t, b.HasTile(1, 1))
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(14, 14))
	assert.False(t, InBounds(-1, 0))
	assert.False(t, InBounds(0, 15))
}
