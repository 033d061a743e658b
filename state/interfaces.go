package state

import (
	"time"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/network"
)

// Participant is the minimal view of a session member a state needs.
type Participant interface {
	GetID() string
	GetName() string
	GetRole() network.Role
	Send(env *network.Envelope) error
}

// RoomContext is what a room must expose to be driven by the state
// machine. Defined here to break the import cycle between room and
// state.
type RoomContext interface {
	GetID() string
	Rules() game.Rules
	Lexicon() game.Lexicon
	Participants() map[network.Role]Participant
	SeatedCount() int
	ChangeState(newState State) error
	Broadcast(env *network.Envelope) error
	RelayToOthers(sender Participant, env *network.Envelope) error
	Game() *game.Game
	SetGame(g *game.Game)
	// ScheduleTurnTimeout arranges for HandleTimeout(turn) to be
	// delivered through the room's command queue after d.
	ScheduleTurnTimeout(turn int, d time.Duration)
	// SaveResults persists the finished game's record and highscore
	// milestones.
	SaveResults(g *game.Game)
}
