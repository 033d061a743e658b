package state

import (
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/network"
)

// FinishedState is terminal. The final snapshot has already been
// broadcast; all that remains is persisting the results and refusing
// further commits.
type FinishedState struct {
	RoomStateBase
}

func NewFinishedState(room RoomContext) *FinishedState {
	return &FinishedState{
		RoomStateBase: RoomStateBase{
			ID:   "finished",
			Room: room,
		},
	}
}

func (s *FinishedState) OnEnter() {
	g := s.Room.Game()
	if g == nil {
		return
	}

	logger.Log.Infow("game finished",
		"game", s.Room.GetID(),
		"turns", g.State.TurnNumber,
		"scores", []int{g.Players[0].Score, g.Players[1].Score},
	)
	s.Room.SaveResults(g)
}

func (s *FinishedState) HandleAction(p Participant, action network.Action) error {
	if network.IsCommit(action) {
		return sendError(p, s.Room.GetID(), "Game is finished", nil)
	}
	return nil
}
