package game

// BingoBonus is the flat bonus for consuming a full rack in one move.
const BingoBonus = 50

// WordScore is the score of a single formed word.
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// MoveScore is the scoring of one committed placement.
type MoveScore struct {
	Total      int         `json:"total"`
	WordScores []WordScore `json:"wordScores"`
	BingoBonus int         `json:"bingoBonus"`
}

// ScoreWord totals one word. Letter and word multipliers apply only on
// squares receiving a tile this move; tiles placed in earlier turns
// never re-trigger their premium. The center square counts as a
// triple word.
func ScoreWord(word FoundWord, newPositions []Position, board *Board) int {
	isNew := make(map[Position]bool, len(newPositions))
	for _, p := range newPositions {
		isNew[p] = true
	}

	base := 0
	wordMultiplier := 1
	for _, pos := range word.Positions {
		cell := board.TileAt(pos.Row, pos.Col)
		if cell == nil {
			continue
		}

		letterScore := LetterPoints(cell.Letter)
		if isNew[pos] {
			switch SquareTypeAt(pos.Row, pos.Col) {
			case SquareTripleLetter:
				letterScore *= 3
			case SquareDoubleLetter:
				letterScore *= 2
			case SquareTripleWord, SquareCenter:
				wordMultiplier *= 3
			case SquareDoubleWord:
				wordMultiplier *= 2
			}
		}
		base += letterScore
	}

	return base * wordMultiplier
}

// ScoreMove totals all newly formed words plus the bingo bonus when
// the move consumed a full rack. Deterministic and order-independent:
// the total is the sum of per-word scores regardless of word order.
func ScoreMove(words []FoundWord, newPositions []Position, board *Board, tilesUsed, rackSize int) MoveScore {
	score := MoveScore{WordScores: make([]WordScore, 0, len(words))}
	for _, w := range words {
		s := ScoreWord(w, newPositions, board)
		score.Total += s
		score.WordScores = append(score.WordScores, WordScore{Word: w.Word, Score: s})
	}

	if tilesUsed == rackSize {
		score.BingoBonus = BingoBonus
		score.Total += BingoBonus
	}
	return score
}

// RackValue sums the letter values of the tiles still on a rack.
func RackValue(rack []string) int {
	total := 0
	for _, letter := range rack {
		total += LetterPoints(letter)
	}
	return total
}

// FinalScore applies the end-of-game penalty for a player's leftover
// tiles, floored at zero.
func FinalScore(score int, remaining []string) int {
	adjusted := score - RackValue(remaining)
	if adjusted < 0 {
		return 0
	}
	return adjusted
}

// FinishBonus is the end-of-game bonus for the player who emptied
// their rack: the combined value of every other player's leftovers.
func FinishBonus(othersRemaining [][]string) int {
	total := 0
	for _, rack := range othersRemaining {
		total += RackValue(rack)
	}
	return total
}
