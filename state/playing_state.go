package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/network"
)

// seatOf maps the fixed join-time role to the player index the engine
// uses. The host always occupies seat 0.
func seatOf(role network.Role) int {
	if role == network.RoleHost {
		return 0
	}
	return 1
}

// PlayingState is the only state that accepts commits. Commits from
// the host's own connection and from the joiner arrive through the
// same room command queue, so they are applied strictly in arrival
// order.
type PlayingState struct {
	RoomStateBase
}

func NewPlayingState(room RoomContext) *PlayingState {
	return &PlayingState{
		RoomStateBase: RoomStateBase{
			ID:   "playing",
			Room: room,
		},
	}
}

func (s *PlayingState) OnEnter() {
	s.scheduleExpiry()
}

// HandleAction routes the closed action union: transient placements
// are relayed to the peer and forgotten, commit requests go through
// the authoritative engine.
func (s *PlayingState) HandleAction(p Participant, action network.Action) error {
	g := s.Room.Game()
	if g == nil {
		return sendError(p, s.Room.GetID(), "Game has not started", nil)
	}

	switch a := action.(type) {
	case network.TilePlaced, network.TileRemoved:
		// Advisory only. The next state broadcast supersedes whatever
		// the peer rendered from these.
		return s.Room.RelayToOthers(p, mustActionEnvelope(s.Room.GetID(), action))
	case network.CommitMove:
		_, err := g.ApplyPlacement(seatOf(p.GetRole()), a.Placements)
		return s.afterCommit(p, err)
	case network.CommitPass:
		_, err := g.ApplyPass(seatOf(p.GetRole()))
		return s.afterCommit(p, err)
	case network.CommitExchange:
		_, err := g.ApplyExchange(seatOf(p.GetRole()), a.RackIndexes)
		return s.afterCommit(p, err)
	default:
		return fmt.Errorf("unhandled action kind %q", action.Kind())
	}
}

// afterCommit reports a rejection back to the proposer or broadcasts
// the new authoritative snapshot. A rejected commit has changed
// nothing, so nothing is broadcast.
func (s *PlayingState) afterCommit(p Participant, err error) error {
	if err != nil {
		var rejected *game.MoveRejectedError
		if errors.As(err, &rejected) {
			return sendError(p, s.Room.GetID(), "Move rejected", rejected.Errors)
		}
		return sendError(p, s.Room.GetID(), err.Error(), nil)
	}

	s.broadcastSnapshot()
	if s.Room.Game().State.Phase == game.PhaseFinished {
		return s.Room.ChangeState(NewFinishedState(s.Room))
	}
	s.scheduleExpiry()
	return nil
}

// HandleTimeout fires when a turn clock runs out and records an
// automatic pass. The turn number is the idempotency guard: the timer
// environment may deliver the expiry more than once, but after the
// first auto-pass the game has moved on to a different turn and the
// stale deliveries fall through.
func (s *PlayingState) HandleTimeout(turn int) {
	g := s.Room.Game()
	if g == nil || g.State.Phase != game.PhasePlaying || g.State.TurnNumber != turn {
		return
	}

	logger.Log.Infow("turn expired, auto-passing",
		"game", s.Room.GetID(),
		"turn", turn,
		"player", g.CurrentPlayer,
	)

	if _, err := g.ApplyPass(g.CurrentPlayer); err != nil {
		logger.Log.Errorf("Auto-pass failed in game %s: %v", s.Room.GetID(), err)
		return
	}

	s.broadcastSnapshot()
	if g.State.Phase == game.PhaseFinished {
		s.Room.ChangeState(NewFinishedState(s.Room))
		return
	}
	s.scheduleExpiry()
}

func (s *PlayingState) scheduleExpiry() {
	g := s.Room.Game()
	if g == nil {
		return
	}
	s.Room.ScheduleTurnTimeout(g.State.TurnNumber, g.State.RemainingTurnTime(time.Now()))
}

func (s *PlayingState) broadcastSnapshot() {
	g := s.Room.Game()
	env, err := network.NewEnvelope(network.MsgState, s.Room.GetID(), g.Snapshot())
	if err != nil {
		logger.Log.Errorf("Failed to marshal snapshot for game %s: %v", s.Room.GetID(), err)
		return
	}
	if err := s.Room.Broadcast(env); err != nil {
		logger.Log.Errorf("Failed to broadcast snapshot for game %s: %v", s.Room.GetID(), err)
	}
}

func sendError(p Participant, gameID, message string, details []game.ValidationError) error {
	env, err := network.NewEnvelope(network.MsgError, gameID, network.ErrorPayload{
		Message: message,
		Details: details,
	})
	if err != nil {
		return err
	}
	return p.Send(env)
}

func mustActionEnvelope(gameID string, action network.Action) *network.Envelope {
	raw, err := network.EncodeAction(action)
	if err != nil {
		// Every member of the union marshals; this cannot fail for a
		// decoded action.
		logger.Log.Errorf("Failed to encode action %q: %v", action.Kind(), err)
		return &network.Envelope{Type: network.MsgAction, GameID: gameID}
	}
	return &network.Envelope{Type: network.MsgAction, GameID: gameID, Payload: raw}
}
