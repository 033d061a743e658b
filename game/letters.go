package game

import (
	"errors"
	"math"
	"math/rand"
)

// Joker marks a blank tile. It scores zero and can stand for any letter.
const Joker = "*"

// LetterInfo describes one letter of the Hebrew tile set.
type LetterInfo struct {
	Letter string
	Points int
	Count  int
}

// HebrewLetters is the full tile distribution, including the five
// word-final forms and two jokers.
var HebrewLetters = []LetterInfo{
	{"א", 1, 12},
	{"ב", 3, 2},
	{"ג", 3, 3},
	{"ד", 2, 4},
	{"ה", 1, 9},
	{"ו", 1, 13},
	{"ז", 10, 1},
	{"ח", 4, 2},
	{"ט", 4, 2},
	{"י", 1, 12},
	{"כ", 5, 2},
	{"ל", 1, 4},
	{"מ", 3, 3},
	{"נ", 1, 6},
	{"ס", 1, 3},
	{"ע", 1, 6},
	{"פ", 8, 1},
	{"צ", 10, 1},
	{"ק", 5, 1},
	{"ר", 1, 6},
	{"ש", 4, 2},
	{"ת", 1, 6},
	{"ך", 5, 1},
	{"ם", 3, 2},
	{"ן", 1, 2},
	{"ף", 8, 1},
	{"ץ", 10, 1},
	{Joker, 0, 2},
}

var letterPoints = func() map[string]int {
	m := make(map[string]int, len(HebrewLetters))
	for _, l := range HebrewLetters {
		m[l.Letter] = l.Points
	}
	return m
}()

var finalToRegular = map[rune]rune{
	'ך': 'כ',
	'ם': 'מ',
	'ן': 'נ',
	'ף': 'פ',
	'ץ': 'צ',
}

var regularToFinal = map[rune]rune{
	'כ': 'ך',
	'מ': 'ם',
	'נ': 'ן',
	'פ': 'ף',
	'צ': 'ץ',
}

// LetterPoints returns the point value of a tile letter. Unknown
// letters (and the joker) are worth zero.
func LetterPoints(letter string) int {
	return letterPoints[letter]
}

// IsFinalForm reports whether the letter is one of the five word-final
// glyphs.
func IsFinalForm(letter string) bool {
	for _, r := range letter {
		_, ok := finalToRegular[r]
		return ok
	}
	return false
}

// ToFinalForm converts a medial letter to its word-final glyph, if one
// exists.
func ToFinalForm(letter string) (string, bool) {
	for _, r := range letter {
		if f, ok := regularToFinal[r]; ok {
			return string(f), true
		}
	}
	return letter, false
}

// Regularize replaces every word-final glyph in the word with its
// medial form.
func Regularize(word string) string {
	out := make([]rune, 0, len(word))
	for _, r := range word {
		if reg, ok := finalToRegular[r]; ok {
			r = reg
		}
		out = append(out, r)
	}
	return string(out)
}

// WordVariants returns the spellings under which a word should be
// looked up: the literal spelling, the fully regularized spelling, and
// the spelling with the trailing letter swapped between its medial and
// final forms.
func WordVariants(word string) []string {
	if word == "" {
		return nil
	}
	seen := map[string]struct{}{}
	variants := make([]string, 0, 4)
	add := func(w string) {
		if _, ok := seen[w]; !ok {
			seen[w] = struct{}{}
			variants = append(variants, w)
		}
	}

	add(word)
	add(Regularize(word))

	runes := []rune(word)
	last := runes[len(runes)-1]
	if f, ok := regularToFinal[last]; ok {
		add(string(runes[:len(runes)-1]) + string(f))
	}
	if reg, ok := finalToRegular[last]; ok {
		add(string(runes[:len(runes)-1]) + string(reg))
	}
	return variants
}

// BagOptions controls the composition of a new letter bag.
type BagOptions struct {
	IncludeJokers     bool
	IncludeFinalForms bool
	SizeMultiplier    float64
}

// DefaultBagOptions matches the standard tile distribution.
func DefaultBagOptions() BagOptions {
	return BagOptions{IncludeJokers: true, IncludeFinalForms: true, SizeMultiplier: 1}
}

// ErrBagTooSmall is returned when an exchange asks for more tiles than
// the bag holds.
var ErrBagTooSmall = errors.New("not enough tiles in the bag to exchange")

// Bag is the multiset of letters not yet drawn.
type Bag struct {
	tiles []string
	rng   *rand.Rand
}

// NewBag builds and shuffles a bag from the tile distribution. The
// seed makes initialization reproducible on the authoritative side.
func NewBag(opts BagOptions, seed int64) *Bag {
	mult := opts.SizeMultiplier
	if mult <= 0 {
		mult = 1
	}

	tiles := make([]string, 0, 128)
	for _, l := range HebrewLetters {
		if !opts.IncludeJokers && l.Letter == Joker {
			continue
		}
		if !opts.IncludeFinalForms && IsFinalForm(l.Letter) {
			continue
		}
		n := int(math.Round(float64(l.Count) * mult))
		for i := 0; i < n; i++ {
			tiles = append(tiles, l.Letter)
		}
	}

	b := &Bag{tiles: tiles, rng: rand.New(rand.NewSource(seed))}
	b.shuffle()
	return b
}

// RestoreBag rebuilds a bag from a snapshot's remaining tiles.
func RestoreBag(tiles []string, seed int64) *Bag {
	return &Bag{tiles: append([]string(nil), tiles...), rng: rand.New(rand.NewSource(seed))}
}

func (b *Bag) shuffle() {
	b.rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

// Len returns the number of tiles left.
func (b *Bag) Len() int {
	return len(b.tiles)
}

// Tiles returns a copy of the remaining tiles.
func (b *Bag) Tiles() []string {
	return append([]string(nil), b.tiles...)
}

// Draw removes up to n tiles from the bag.
func (b *Bag) Draw(n int) []string {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn := append([]string(nil), b.tiles[:n]...)
	b.tiles = b.tiles[n:]
	return drawn
}

// Exchange returns the given tiles to the bag, reshuffles, and draws
// the same number back. The returned tiles go in before the draw, so
// the bag size is unchanged by an exchange.
func (b *Bag) Exchange(returned []string) ([]string, error) {
	if len(returned) > len(b.tiles) {
		return nil, ErrBagTooSmall
	}
	b.tiles = append(b.tiles, returned...)
	b.shuffle()
	return b.Draw(len(returned)), nil
}
