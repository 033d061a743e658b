package game

// SquareType classifies a board square's score multiplier.
type SquareType int

const (
	SquareNormal SquareType = iota
	SquareDoubleLetter
	SquareTripleLetter
	SquareDoubleWord
	SquareTripleWord
	SquareCenter
)

func (t SquareType) String() string {
	switch t {
	case SquareDoubleLetter:
		return "double-letter"
	case SquareTripleLetter:
		return "triple-letter"
	case SquareDoubleWord:
		return "double-word"
	case SquareTripleWord:
		return "triple-word"
	case SquareCenter:
		return "center"
	default:
		return "normal"
	}
}

// premiumSquares is the static premium layout. The center is its own
// type but scores as a triple word.
var premiumSquares = map[Position]SquareType{
	{0, 0}: SquareTripleWord, {0, 7}: SquareTripleWord, {0, 14}: SquareTripleWord,
	{7, 0}: SquareTripleWord, {7, 14}: SquareTripleWord,
	{14, 0}: SquareTripleWord, {14, 7}: SquareTripleWord, {14, 14}: SquareTripleWord,

	{1, 1}: SquareDoubleWord, {2, 2}: SquareDoubleWord, {3, 3}: SquareDoubleWord, {4, 4}: SquareDoubleWord,
	{1, 13}: SquareDoubleWord, {2, 12}: SquareDoubleWord, {3, 11}: SquareDoubleWord, {4, 10}: SquareDoubleWord,
	{13, 1}: SquareDoubleWord, {12, 2}: SquareDoubleWord, {11, 3}: SquareDoubleWord, {10, 4}: SquareDoubleWord,
	{13, 13}: SquareDoubleWord, {12, 12}: SquareDoubleWord, {11, 11}: SquareDoubleWord, {10, 10}: SquareDoubleWord,

	{1, 5}: SquareTripleLetter, {1, 9}: SquareTripleLetter,
	{5, 1}: SquareTripleLetter, {5, 5}: SquareTripleLetter, {5, 9}: SquareTripleLetter, {5, 13}: SquareTripleLetter,
	{9, 1}: SquareTripleLetter, {9, 5}: SquareTripleLetter, {9, 9}: SquareTripleLetter, {9, 13}: SquareTripleLetter,
	{13, 5}: SquareTripleLetter, {13, 9}: SquareTripleLetter,

	{0, 3}: SquareDoubleLetter, {0, 11}: SquareDoubleLetter,
	{2, 6}: SquareDoubleLetter, {2, 8}: SquareDoubleLetter,
	{3, 0}: SquareDoubleLetter, {3, 7}: SquareDoubleLetter, {3, 14}: SquareDoubleLetter,
	{6, 2}: SquareDoubleLetter, {6, 6}: SquareDoubleLetter, {6, 8}: SquareDoubleLetter, {6, 12}: SquareDoubleLetter,
	{7, 3}: SquareDoubleLetter, {7, 11}: SquareDoubleLetter,
	{8, 2}: SquareDoubleLetter, {8, 6}: SquareDoubleLetter, {8, 8}: SquareDoubleLetter, {8, 12}: SquareDoubleLetter,
	{11, 0}: SquareDoubleLetter, {11, 7}: SquareDoubleLetter, {11, 14}: SquareDoubleLetter,
	{12, 6}: SquareDoubleLetter, {12, 8}: SquareDoubleLetter,
	{14, 3}: SquareDoubleLetter, {14, 11}: SquareDoubleLetter,

	{7, 7}: SquareCenter,
}

// SquareTypeAt returns the premium type of a square.
func SquareTypeAt(row, col int) SquareType {
	if t, ok := premiumSquares[Position{Row: row, Col: col}]; ok {
		return t
	}
	return SquareNormal
}
