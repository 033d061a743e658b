package persistence

import (
	"fmt"

	"github.com/wfunc/scrabbleserver/models"
)

// Store is the append-mostly record store. The game core only calls
// the append methods; the Top query exists for the rpc surface.
type Store interface {
	AppendHighscore(entry models.HighscoreEntry) error
	TopHighscores(category models.HighscoreCategory, limit int) ([]models.HighscoreEntry, error)
	SaveGameRecord(record models.GameRecord) error
	Close() error
}

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
