// Package lexicon is the word oracle: a local in-memory Hebrew
// dictionary, an HTTP client for a remote dictionary service, and the
// chi handler that serves one.
package lexicon

import (
	"bufio"
	"os"
	"regexp"
	"sort"
	"sync"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
)

// hebrewWord matches words made only of Hebrew letters, including the
// final forms and ligatures.
var hebrewWord = regexp.MustCompile(`^[\x{05D0}-\x{05EA}\x{05F0}-\x{05F2}]+$`)

// Lexicon is the local dictionary. Lookup is final-form insensitive:
// the literal spelling, the regularized spelling and trailing-letter
// swaps are all tried.
type Lexicon struct {
	words map[string]struct{}
	mutex sync.RWMutex
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{words: make(map[string]struct{})}
}

// NewBasic loads the built-in word list. Used as the fallback when no
// dictionary file is configured or the remote oracle is unreachable.
func NewBasic() *Lexicon {
	l := New()
	for _, w := range basicWords {
		l.Add(w)
	}
	return l
}

// NewFromFile loads one word per line, skipping anything that is not
// purely Hebrew letters. A missing file falls back to the built-in
// list.
func NewFromFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Log.Warnf("Dictionary file %s not found, using built-in word list", path)
			return NewBasic(), nil
		}
		return nil, err
	}
	defer f.Close()

	l := New()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		l.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Log.Infof("Loaded %d words from %s", l.Count(), path)
	return l, nil
}

// Add inserts a word if it is well-formed Hebrew.
func (l *Lexicon) Add(word string) {
	if !hebrewWord.MatchString(word) {
		return
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.words[word] = struct{}{}
}

// IsValid implements game.Lexicon. Words shorter than two letters are
// never valid.
func (l *Lexicon) IsValid(word string) bool {
	if len([]rune(word)) < 2 || !hebrewWord.MatchString(word) {
		return false
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()
	for _, v := range game.WordVariants(word) {
		if _, ok := l.words[v]; ok {
			return true
		}
	}
	return false
}

// Count returns the dictionary size.
func (l *Lexicon) Count() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.words)
}

// Words returns the sorted word list.
func (l *Lexicon) Words() []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

var _ game.Lexicon = (*Lexicon)(nil)

// basicWords is the bundled starter dictionary.
var basicWords = []string{
	"אב", "אם", "בן", "בת", "איש", "אישה", "ילד", "ילדה",
	"בית", "דלת", "חלון", "שולחן", "כיסא", "מיטה", "ספר", "עט",
	"מים", "לחם", "חלב", "ביצה", "בשר", "דג", "פרי", "ירק",
	"שמש", "ירח", "כוכב", "עץ", "פרח", "עלה", "שורש", "ענף",
	"ראש", "עין", "אף", "פה", "אוזן", "יד", "רגל", "לב",
	"אדום", "כחול", "ירוק", "צהוב", "שחור", "לבן", "אפור", "חום",
	"גדול", "קטן", "ארוך", "קצר", "רחב", "צר", "גבוה", "נמוך",
	"טוב", "רע", "יפה", "חכם", "חזק", "חלש",
	"אהבה", "שמחה", "עצב", "פחד", "כעס", "תקוה", "חלום",
	"זמן", "יום", "לילה", "בוקר", "ערב", "שעה", "דקה",
	"שנה", "חודש", "שבוע", "אתמול", "היום", "מחר", "עבר", "עתיד",
	"מקום", "כאן", "שם", "צפון", "דרום", "מזרח", "מערב",
	"עיר", "כפר", "רחוב", "כביש", "גשר", "נהר", "ים", "הר",
	"בתים", "דבר", "דברים", "אנשים", "נשים",
	"ילדים", "ספרים", "שולחנות",
	"דופן", "שלום", "מושל", "משול",
	"אל", "לא", "מן", "על", "כל", "גם", "זה", "יש", "כן", "מה", "רק",
	"אבא", "אמא", "גן", "כלב", "סוס", "נר", "צבע", "קול", "תמיד",
}
