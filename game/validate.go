package game

import (
	"fmt"
	"sort"
)

// Lexicon answers whether a word is valid. Implementations may consult
// a remote service; they must be usable synchronously from the
// validator.
type Lexicon interface {
	IsValid(word string) bool
}

// ErrorKind enumerates the validation failures. All of them are
// recoverable: the placement is rejected and the tiles go back to the
// rack.
type ErrorKind int

const (
	MisalignedPlacement ErrorKind = iota
	DiscontinuousPlacement
	MustUseCenter
	Disconnected
	NoWordFormed
	UnknownWord
	OutOfBounds
	OccupiedCell
)

func (k ErrorKind) String() string {
	switch k {
	case MisalignedPlacement:
		return "misaligned-placement"
	case DiscontinuousPlacement:
		return "discontinuous-placement"
	case MustUseCenter:
		return "must-use-center"
	case Disconnected:
		return "disconnected"
	case NoWordFormed:
		return "no-word-formed"
	case UnknownWord:
		return "unknown-word"
	case OutOfBounds:
		return "out-of-bounds"
	case OccupiedCell:
		return "occupied-cell"
	default:
		return "unknown"
	}
}

// ValidationError is one reason a placement is illegal. Word is set
// only for UnknownWord.
type ValidationError struct {
	Kind ErrorKind `json:"kind"`
	Word string    `json:"word,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Kind == UnknownWord {
		return fmt.Sprintf("%s: %q", e.Kind, e.Word)
	}
	return e.Kind.String()
}

// ValidationResult collects every violation found in a proposed
// placement, plus the words the placement would form.
type ValidationResult struct {
	Legal    bool              `json:"legal"`
	Errors   []ValidationError `json:"errors,omitempty"`
	NewWords []FoundWord       `json:"newWords,omitempty"`
}

// Validate checks a proposed set of placements against the board. It
// is pure: the board is never mutated, and identical inputs always
// produce identical results. Violations are collected rather than
// short-circuited so the caller can surface all of them at once.
func Validate(board *Board, placements []Placement, isFirstMove bool, lex Lexicon) ValidationResult {
	var errs []ValidationError

	// Every placement must land on an empty, on-board square, and no
	// two placements may share one. A committed cell never changes
	// letter or owner, so a placement onto it is rejected outright
	// before any word is derived.
	taken := make(map[Position]bool, len(placements))
	for _, p := range placements {
		if !InBounds(p.Pos.Row, p.Pos.Col) {
			errs = append(errs, ValidationError{Kind: OutOfBounds})
			continue
		}
		if board.HasTile(p.Pos.Row, p.Pos.Col) || taken[p.Pos] {
			errs = append(errs, ValidationError{Kind: OccupiedCell})
		}
		taken[p.Pos] = true
	}
	if len(errs) > 0 {
		return ValidationResult{Legal: false, Errors: errs}
	}

	if len(placements) > 1 {
		horizontal := true
		vertical := true
		for _, p := range placements[1:] {
			if p.Pos.Row != placements[0].Pos.Row {
				horizontal = false
			}
			if p.Pos.Col != placements[0].Pos.Col {
				vertical = false
			}
		}

		if !horizontal && !vertical {
			errs = append(errs, ValidationError{Kind: MisalignedPlacement})
		} else {
			// Every square between the outermost placements must be
			// covered, by a new tile or an existing one.
			overlay := board.Overlay(placements)
			sorted := append([]Placement(nil), placements...)
			if horizontal {
				sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pos.Col < sorted[j].Pos.Col })
				row := sorted[0].Pos.Row
				for col := sorted[0].Pos.Col; col <= sorted[len(sorted)-1].Pos.Col; col++ {
					if !overlay.HasTile(row, col) {
						errs = append(errs, ValidationError{Kind: DiscontinuousPlacement})
						break
					}
				}
			} else {
				sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pos.Row < sorted[j].Pos.Row })
				col := sorted[0].Pos.Col
				for row := sorted[0].Pos.Row; row <= sorted[len(sorted)-1].Pos.Row; row++ {
					if !overlay.HasTile(row, col) {
						errs = append(errs, ValidationError{Kind: DiscontinuousPlacement})
						break
					}
				}
			}
		}
	}

	if isFirstMove {
		usesCenter := false
		for _, p := range placements {
			if p.Pos == Center {
				usesCenter = true
				break
			}
		}
		if !usesCenter {
			errs = append(errs, ValidationError{Kind: MustUseCenter})
		}
	} else {
		connected := false
		for _, p := range placements {
			adjacent := []Position{
				{p.Pos.Row - 1, p.Pos.Col},
				{p.Pos.Row + 1, p.Pos.Col},
				{p.Pos.Row, p.Pos.Col - 1},
				{p.Pos.Row, p.Pos.Col + 1},
			}
			for _, a := range adjacent {
				if board.HasTile(a.Row, a.Col) {
					connected = true
					break
				}
			}
			if connected {
				break
			}
		}
		if !connected {
			errs = append(errs, ValidationError{Kind: Disconnected})
		}
	}

	overlay := board.Overlay(placements)
	var newWords []FoundWord
	for _, w := range overlay.FindAllWords() {
		if w.IsNew {
			newWords = append(newWords, w)
		}
	}

	if len(newWords) == 0 {
		errs = append(errs, ValidationError{Kind: NoWordFormed})
	}

	for _, w := range newWords {
		if !lexiconAccepts(lex, w.Word) {
			errs = append(errs, ValidationError{Kind: UnknownWord, Word: w.Word})
		}
	}

	return ValidationResult{
		Legal:    len(errs) == 0,
		Errors:   errs,
		NewWords: newWords,
	}
}

// lexiconAccepts tries the literal spelling and its letterform
// variants.
func lexiconAccepts(lex Lexicon, word string) bool {
	if lex == nil {
		return true
	}
	for _, v := range WordVariants(word) {
		if lex.IsValid(v) {
			return true
		}
	}
	return false
}
