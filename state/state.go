package state

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/network"
)

// StateMachine drives a room through waiting, playing and finished.
type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
	AddTransition(from State, to State, condition func() bool) error
}

// State is one room phase.
type State interface {
	OnEnter()
	OnExit()
	OnUpdate()
	GetID() string
	HandleAction(p Participant, action network.Action) error
	HandleTimeout(turn int)
}

// ErrTransitionNotAllowed is returned when a state transition is not allowed.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

// BaseStateMachine is the default implementation.
type BaseStateMachine struct {
	currentState State
	transitions  map[string]map[string]func() bool // fromState -> toState -> condition
	mutex        sync.RWMutex
}

func NewBaseStateMachine(initialState State) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string]func() bool),
	}
	initialState.OnEnter()
	return machine
}

func (sm *BaseStateMachine) ChangeState(newState State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	currentID := sm.currentState.GetID()
	newID := newState.GetID()

	if conditions, exists := sm.transitions[currentID]; exists {
		if condition, exists := conditions[newID]; exists {
			if condition != nil && !condition() {
				return ErrTransitionNotAllowed
			}
		}
	}

	sm.currentState.OnExit()
	sm.currentState = newState
	sm.currentState.OnEnter()

	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

func (sm *BaseStateMachine) AddTransition(from State, to State, condition func() bool) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	fromID := from.GetID()
	toID := to.GetID()

	if _, exists := sm.transitions[fromID]; !exists {
		sm.transitions[fromID] = make(map[string]func() bool)
	}

	sm.transitions[fromID][toID] = condition
	return nil
}

// RoomStateBase provides the no-op defaults.
type RoomStateBase struct {
	ID   string
	Room RoomContext
}

func (s *RoomStateBase) GetID() string {
	return s.ID
}

func (s *RoomStateBase) OnEnter() {}

func (s *RoomStateBase) OnExit() {}

func (s *RoomStateBase) OnUpdate() {}

func (s *RoomStateBase) HandleAction(p Participant, action network.Action) error {
	return nil
}

func (s *RoomStateBase) HandleTimeout(turn int) {}

// WaitingState holds the room until both seats are taken, then
// initializes the authoritative game and broadcasts the first
// snapshot.
type WaitingState struct {
	RoomStateBase
}

func NewWaitingState(room RoomContext) *WaitingState {
	return &WaitingState{
		RoomStateBase: RoomStateBase{
			ID:   "waiting",
			Room: room,
		},
	}
}

func (s *WaitingState) OnUpdate() {
	if s.Room.SeatedCount() < 2 || s.Room.Game() != nil {
		return
	}

	participants := s.Room.Participants()
	host, hasHost := participants[network.RoleHost]
	joiner, hasJoiner := participants[network.RoleJoiner]
	if !hasHost || !hasJoiner {
		return
	}

	// Seat 0 is the host: the first snapshot always opens with
	// currentPlayer = 0.
	g := game.NewGame(
		s.Room.GetID(),
		[2]string{host.GetName(), joiner.GetName()},
		s.Room.Rules(),
		s.Room.Lexicon(),
		time.Now().UnixNano(),
	)
	s.Room.SetGame(g)

	logger.Log.Infow("game started",
		"game", s.Room.GetID(),
		"host", host.GetName(),
		"joiner", joiner.GetName(),
	)

	env, err := network.NewEnvelope(network.MsgState, s.Room.GetID(), g.Snapshot())
	if err != nil {
		logger.Log.Errorf("Failed to marshal initial snapshot for game %s: %v", s.Room.GetID(), err)
		return
	}
	if err := s.Room.Broadcast(env); err != nil {
		logger.Log.Errorf("Failed to broadcast initial snapshot for game %s: %v", s.Room.GetID(), err)
	}

	s.Room.ChangeState(NewPlayingState(s.Room))
}

// HandleAction before the game starts: relay transient placements so a
// waiting peer still sees the host arranging tiles, refuse commits.
func (s *WaitingState) HandleAction(p Participant, action network.Action) error {
	if network.IsCommit(action) {
		return sendError(p, s.Room.GetID(), "Game has not started", nil)
	}
	return s.Room.RelayToOthers(p, mustActionEnvelope(s.Room.GetID(), action))
}
