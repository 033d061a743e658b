package game

import "fmt"

// BoardSize is the side length of the square board.
const BoardSize = 15

// Center is the anchor cell the first word must cross.
var Center = Position{Row: 7, Col: 7}

// Position addresses one board cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is an occupied board square. Owner is -1 until the tile is
// committed to the move history.
type Cell struct {
	Letter string `json:"letter"`
	IsNew  bool   `json:"isNew"`
	Owner  int    `json:"owner"`
}

// Placement is a tile a player has provisionally put on the board this
// turn. RackIndex points at the rack slot the tile came from.
type Placement struct {
	Pos       Position `json:"pos"`
	Letter    string   `json:"letter"`
	RackIndex int      `json:"rackIndex"`
}

// Board is the 15x15 grid. A nil entry is an empty square.
type Board [BoardSize][BoardSize]*Cell

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// InBounds reports whether the coordinates are on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// HasTile reports whether the square is occupied.
func (b *Board) HasTile(row, col int) bool {
	return InBounds(row, col) && b[row][col] != nil
}

// TileAt returns the cell at the position, or nil.
func (b *Board) TileAt(row, col int) *Cell {
	if !InBounds(row, col) {
		return nil
	}
	return b[row][col]
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	out := &Board{}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] != nil {
				cell := *b[r][c]
				out[r][c] = &cell
			}
		}
	}
	return out
}

// Overlay returns a copy of the board with the placements applied as
// uncommitted tiles.
func (b *Board) Overlay(placements []Placement) *Board {
	out := b.Clone()
	for _, p := range placements {
		out[p.Pos.Row][p.Pos.Col] = &Cell{Letter: p.Letter, IsNew: true, Owner: -1}
	}
	return out
}

// Commit marks every uncommitted tile as owned by the player and
// converts the trailing letter of each newly formed word to its
// word-final glyph where one exists. Committed cells never change
// again.
func (b *Board) Commit(owner int) {
	for _, w := range b.FindAllWords() {
		if !w.IsNew {
			continue
		}
		last := w.Positions[len(w.Positions)-1]
		cell := b[last.Row][last.Col]
		if cell != nil && cell.IsNew {
			if final, ok := ToFinalForm(cell.Letter); ok {
				cell.Letter = final
			}
		}
	}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if cell := b[r][c]; cell != nil && cell.IsNew {
				cell.IsNew = false
				cell.Owner = owner
			}
		}
	}
}

// FoundWord is a maximal run of two or more occupied squares. It is
// derived by scanning, never stored.
type FoundWord struct {
	Word      string     `json:"word"`
	Positions []Position `json:"positions"`
	IsNew     bool       `json:"isNew"`
}

// FindAllWords scans the whole board in both directions. A word is new
// if any of its cells is uncommitted. The scan must cover the full
// board: a single placed tile can complete a word running through
// tiles laid many turns ago.
func (b *Board) FindAllWords() []FoundWord {
	var words []FoundWord

	flush := func(word string, positions []Position, hasNew bool) {
		if len(positions) >= 2 {
			words = append(words, FoundWord{
				Word:      word,
				Positions: append([]Position(nil), positions...),
				IsNew:     hasNew,
			})
		}
	}

	for row := 0; row < BoardSize; row++ {
		word, positions, hasNew := "", []Position{}, false
		for col := 0; col < BoardSize; col++ {
			if cell := b[row][col]; cell != nil {
				word += cell.Letter
				positions = append(positions, Position{Row: row, Col: col})
				hasNew = hasNew || cell.IsNew
			} else {
				flush(word, positions, hasNew)
				word, positions, hasNew = "", positions[:0], false
			}
		}
		flush(word, positions, hasNew)
	}

	for col := 0; col < BoardSize; col++ {
		word, positions, hasNew := "", []Position{}, false
		for row := 0; row < BoardSize; row++ {
			if cell := b[row][col]; cell != nil {
				word += cell.Letter
				positions = append(positions, Position{Row: row, Col: col})
				hasNew = hasNew || cell.IsNew
			} else {
				flush(word, positions, hasNew)
				word, positions, hasNew = "", positions[:0], false
			}
		}
		flush(word, positions, hasNew)
	}

	return words
}
