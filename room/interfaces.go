package room

import (
	"time"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/network"
)

// Broadcaster sends a message to every member of a game. Defined here
// to break the import cycle between room and broadcast.
type Broadcaster interface {
	BroadcastToGame(gameID string, env *network.Envelope) error
}

// ResultSink receives a finished game for persistence: the game
// record plus highscore milestones. The core only ever appends.
type ResultSink interface {
	RecordFinishedGame(g *game.Game) error
}

// CommitObserver is told how long each handled commit spent between
// entering the command queue and the resulting state broadcast.
type CommitObserver interface {
	ObserveCommitLatency(d time.Duration)
}
