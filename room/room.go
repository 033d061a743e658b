package room

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/network"
	"github.com/wfunc/scrabbleserver/session"
	"github.com/wfunc/scrabbleserver/state"
	"github.com/wfunc/scrabbleserver/timer"
)

// ErrRoomFull is returned to a third distinct participant. It maps to
// the fatal "Game is full" rejection on the wire.
var ErrRoomFull = errors.New("room already has two participants")

// command is one unit of work for the room's single ordered queue.
// Host-local commits, joiner commits and turn expirations all go
// through it, so there is exactly one writer of authoritative state
// and no interleaving.
type command struct {
	sess        *session.Session
	action      network.Action
	enqueuedAt  time.Time
	timeoutTurn int
	isTimeout   bool
}

// Room is one two-player game session. Seats are keyed by the fixed
// join-time role; a rejoin under the same role replaces the previous
// connection rather than being rejected.
type Room struct {
	ID        string
	CreatedAt time.Time

	StateMachine state.StateMachine

	seats       map[network.Role]*session.Session
	game        *game.Game
	rules       game.Rules
	lexicon     game.Lexicon
	broadcaster Broadcaster
	results     ResultSink
	timers      *timer.Manager
	observer    CommitObserver

	commands  chan command
	closeChan chan struct{}
	closeOnce sync.Once
	ticker    *time.Ticker

	seatMutex sync.RWMutex
	gameMutex sync.RWMutex
}

// NewRoom creates a room and starts its loop. The loop is the only
// goroutine that touches the game.
func NewRoom(id string, rules game.Rules, lex game.Lexicon, broadcaster Broadcaster, results ResultSink, timers *timer.Manager, observer CommitObserver) *Room {
	r := &Room{
		ID:          id,
		CreatedAt:   time.Now(),
		seats:       make(map[network.Role]*session.Session),
		rules:       rules,
		lexicon:     lex,
		broadcaster: broadcaster,
		results:     results,
		timers:      timers,
		observer:    observer,
		commands:    make(chan command, 64),
		closeChan:   make(chan struct{}),
	}

	r.StateMachine = state.NewBaseStateMachine(state.NewWaitingState(r))

	r.ticker = time.NewTicker(250 * time.Millisecond)
	go r.loop()

	return r
}

// --- state.RoomContext ---

func (r *Room) GetID() string {
	return r.ID
}

func (r *Room) Rules() game.Rules {
	return r.rules
}

func (r *Room) Lexicon() game.Lexicon {
	return r.lexicon
}

func (r *Room) Participants() map[network.Role]state.Participant {
	r.seatMutex.RLock()
	defer r.seatMutex.RUnlock()

	out := make(map[network.Role]state.Participant, len(r.seats))
	for role, s := range r.seats {
		out[role] = s
	}
	return out
}

func (r *Room) SeatedCount() int {
	r.seatMutex.RLock()
	defer r.seatMutex.RUnlock()
	return len(r.seats)
}

func (r *Room) ChangeState(newState state.State) error {
	return r.StateMachine.ChangeState(newState)
}

func (r *Room) Broadcast(env *network.Envelope) error {
	return r.broadcaster.BroadcastToGame(r.ID, env)
}

func (r *Room) RelayToOthers(sender state.Participant, env *network.Envelope) error {
	r.seatMutex.RLock()
	defer r.seatMutex.RUnlock()

	for _, s := range r.seats {
		if s.GetID() == sender.GetID() {
			continue
		}
		if err := s.Send(env); err != nil {
			logger.Log.Warnf("Relay to session %s failed: %v", s.GetID(), err)
		}
	}
	return nil
}

func (r *Room) Game() *game.Game {
	r.gameMutex.RLock()
	defer r.gameMutex.RUnlock()
	return r.game
}

func (r *Room) SetGame(g *game.Game) {
	r.gameMutex.Lock()
	defer r.gameMutex.Unlock()
	r.game = g
}

// ScheduleTurnTimeout posts the expiry back through the command queue
// so it is serialized with commits. The state's turn-number guard
// makes duplicate deliveries harmless.
func (r *Room) ScheduleTurnTimeout(turn int, d time.Duration) {
	r.timers.AddTimer(d, 0, func() {
		select {
		case r.commands <- command{isTimeout: true, timeoutTurn: turn}:
		case <-r.closeChan:
		}
	})
}

func (r *Room) SaveResults(g *game.Game) {
	if r.results == nil {
		return
	}
	if err := r.results.RecordFinishedGame(g); err != nil {
		logger.Log.Errorf("Failed to persist results for game %s: %v", r.ID, err)
	}
}

// --- membership ---

// Join seats a session. The same name rejoining under the same role is
// a reconnect: the old connection is closed and replaced. A different
// name on an occupied seat is a third participant and is rejected with
// ErrRoomFull. Every membership change triggers a presence broadcast.
func (r *Room) Join(s *session.Session) error {
	r.seatMutex.Lock()

	if prev, ok := r.seats[s.GetRole()]; ok {
		if prev.GetName() != s.GetName() {
			r.seatMutex.Unlock()
			return ErrRoomFull
		}
		if prev.GetID() != s.GetID() {
			logger.Log.Infow("replacing connection for role",
				"game", r.ID,
				"role", s.GetRole(),
				"old", prev.GetID(),
				"new", s.GetID(),
			)
			prev.Close()
		}
	}

	r.seats[s.GetRole()] = s
	r.seatMutex.Unlock()

	r.broadcastPresence()
	return nil
}

// Leave vacates the seat held by the session, if it still holds one.
// A reconnect may already have replaced it.
func (r *Room) Leave(sessionID string) {
	r.seatMutex.Lock()
	removed := false
	for role, s := range r.seats {
		if s.GetID() == sessionID {
			delete(r.seats, role)
			removed = true
			break
		}
	}
	r.seatMutex.Unlock()

	if removed {
		r.broadcastPresence()
	}
}

// Empty reports whether no one is seated.
func (r *Room) Empty() bool {
	return r.SeatedCount() == 0
}

func (r *Room) broadcastPresence() {
	r.seatMutex.RLock()
	payload := network.PresencePayload{Count: len(r.seats)}
	for _, s := range r.seats {
		payload.Participants = append(payload.Participants, network.Participant{
			Name: s.GetName(),
			Role: s.GetRole(),
		})
	}
	r.seatMutex.RUnlock()

	env, err := network.NewEnvelope(network.MsgPresence, r.ID, payload)
	if err != nil {
		logger.Log.Errorf("Failed to marshal presence for game %s: %v", r.ID, err)
		return
	}
	if err := r.Broadcast(env); err != nil {
		logger.Log.Warnf("Presence broadcast for game %s failed: %v", r.ID, err)
	}
}

// --- command queue ---

// Enqueue hands an action to the room loop. Returns false when the
// room is closed or the queue is saturated.
func (r *Room) Enqueue(s *session.Session, action network.Action) bool {
	select {
	case r.commands <- command{sess: s, action: action, enqueuedAt: time.Now()}:
		return true
	case <-r.closeChan:
		return false
	}
}

// loop consumes ticks and commands one at a time. This is the
// serialization point required by the protocol: the authority
// processes commits strictly in arrival order.
func (r *Room) loop() {
	for {
		select {
		case <-r.ticker.C:
			if current := r.StateMachine.GetCurrentState(); current != nil {
				current.OnUpdate()
			}
		case cmd := <-r.commands:
			r.handle(cmd)
		case <-r.closeChan:
			r.ticker.Stop()
			return
		}
	}
}

func (r *Room) handle(cmd command) {
	current := r.StateMachine.GetCurrentState()
	if current == nil {
		return
	}
	if cmd.isTimeout {
		current.HandleTimeout(cmd.timeoutTurn)
		return
	}
	if err := current.HandleAction(cmd.sess, cmd.action); err != nil {
		logger.Log.Errorf("Error handling %s in game %s: %v", cmd.action.Kind(), r.ID, err)
		return
	}
	// The state broadcast happens inside HandleAction, so the elapsed
	// time here covers queueing plus commit plus fan-out.
	if r.observer != nil && network.IsCommit(cmd.action) {
		r.observer.ObserveCommitLatency(time.Since(cmd.enqueuedAt))
	}
}

// Close stops the room loop.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.closeChan)
	})
}

// --- manager ---

// Manager tracks all live rooms.
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for a game id, creating it on first
// join.
func (m *Manager) GetOrCreate(id string, rules game.Rules, lex game.Lexicon, broadcaster Broadcaster, results ResultSink, timers *timer.Manager, observer CommitObserver) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if r, ok := m.rooms[id]; ok {
		return r
	}
	r := NewRoom(id, rules, lex, broadcaster, results, timers, observer)
	m.rooms[id] = r
	return r
}

func (m *Manager) Get(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Remove closes and forgets a room.
func (m *Manager) Remove(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if r, ok := m.rooms[id]; ok {
		r.Close()
		delete(m.rooms, id)
	}
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}
