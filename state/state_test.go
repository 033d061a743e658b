package state

import (
	"os"
	"testing"
	"time"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/network"
)

func TestMain(m *testing.M) {
	logger.InitDevelopment()
	os.Exit(m.Run())
}

// MockState is a test double for the State interface.
// It helps us track which methods have been called.
type MockState struct {
	ID             string
	OnEnterCalled  bool
	OnExitCalled   bool
	OnUpdateCalled bool
}

func (m *MockState) OnEnter() {
	m.OnEnterCalled = true
}

func (m *MockState) OnExit() {
	m.OnExitCalled = true
}

func (m *MockState) OnUpdate() {
	m.OnUpdateCalled = true
}

func (m *MockState) GetID() string {
	return m.ID
}

func (m *MockState) HandleAction(p Participant, action network.Action) error {
	return nil
}

func (m *MockState) HandleTimeout(turn int) {}

// reset clears the call tracking flags.
func (m *MockState) reset() {
	m.OnEnterCalled = false
	m.OnExitCalled = false
	m.OnUpdateCalled = false
}

func TestStateMachine_InitialState(t *testing.T) {
	initialState := &MockState{ID: "initial"}
	sm := NewBaseStateMachine(initialState)

	if !initialState.OnEnterCalled {
		t.Error("Expected OnEnter to be called on the initial state")
	}

	if sm.GetCurrentState() != initialState {
		t.Error("GetCurrentState should return the initial state")
	}
}

func TestStateMachine_ChangeState(t *testing.T) {
	initialState := &MockState{ID: "initial"}
	nextState := &MockState{ID: "next"}

	sm := NewBaseStateMachine(initialState)
	initialState.reset() // Reset after initialization

	err := sm.ChangeState(nextState)
	if err != nil {
		t.Fatalf("ChangeState should not return an error, but got: %v", err)
	}

	if !initialState.OnExitCalled {
		t.Error("Expected OnExit to be called on the old state")
	}

	if !nextState.OnEnterCalled {
		t.Error("Expected OnEnter to be called on the new state")
	}

	if sm.GetCurrentState() != nextState {
		t.Error("GetCurrentState should return the new state")
	}
}

func TestStateMachine_BlockedTransition(t *testing.T) {
	stateA := &MockState{ID: "A"}
	stateB := &MockState{ID: "B"}

	sm := NewBaseStateMachine(stateA)
	if err := sm.AddTransition(stateA, stateB, func() bool { return false }); err != nil {
		t.Fatalf("AddTransition failed: %v", err)
	}

	stateA.reset()
	if err := sm.ChangeState(stateB); err != ErrTransitionNotAllowed {
		t.Fatalf("Expected ErrTransitionNotAllowed, got %v", err)
	}
	if stateA.OnExitCalled || stateB.OnEnterCalled {
		t.Error("A blocked transition should not touch either state")
	}
}

// --- room state tests ---

// mockParticipant records envelopes sent directly to it.
type mockParticipant struct {
	id   string
	name string
	role network.Role
	sent []*network.Envelope
}

func (p *mockParticipant) GetID() string          { return p.id }
func (p *mockParticipant) GetName() string        { return p.name }
func (p *mockParticipant) GetRole() network.Role  { return p.role }
func (p *mockParticipant) Send(env *network.Envelope) error {
	p.sent = append(p.sent, env)
	return nil
}

// mockRoom is a synchronous RoomContext for driving states directly.
type mockRoom struct {
	id           string
	rules        game.Rules
	participants map[network.Role]Participant
	game         *game.Game
	broadcasts   []*network.Envelope
	relayed      []*network.Envelope
	nextState    State
	scheduled    []int
	saved        *game.Game
}

func newMockRoom() *mockRoom {
	return &mockRoom{
		id:           "game-1",
		rules:        game.DefaultRules(),
		participants: make(map[network.Role]Participant),
	}
}

func (r *mockRoom) GetID() string          { return r.id }
func (r *mockRoom) Rules() game.Rules      { return r.rules }
func (r *mockRoom) Lexicon() game.Lexicon  { return nil }
func (r *mockRoom) SeatedCount() int       { return len(r.participants) }
func (r *mockRoom) Game() *game.Game       { return r.game }
func (r *mockRoom) SetGame(g *game.Game)   { r.game = g }

func (r *mockRoom) Participants() map[network.Role]Participant {
	out := make(map[network.Role]Participant, len(r.participants))
	for role, p := range r.participants {
		out[role] = p
	}
	return out
}

func (r *mockRoom) ChangeState(s State) error {
	r.nextState = s
	s.OnEnter()
	return nil
}

func (r *mockRoom) Broadcast(env *network.Envelope) error {
	r.broadcasts = append(r.broadcasts, env)
	return nil
}

func (r *mockRoom) RelayToOthers(sender Participant, env *network.Envelope) error {
	r.relayed = append(r.relayed, env)
	return nil
}

func (r *mockRoom) ScheduleTurnTimeout(turn int, d time.Duration) {
	r.scheduled = append(r.scheduled, turn)
}

func (r *mockRoom) SaveResults(g *game.Game) {
	r.saved = g
}

func seatBoth(r *mockRoom) (*mockParticipant, *mockParticipant) {
	host := &mockParticipant{id: "s1", name: "alice", role: network.RoleHost}
	joiner := &mockParticipant{id: "s2", name: "bob", role: network.RoleJoiner}
	r.participants[network.RoleHost] = host
	r.participants[network.RoleJoiner] = joiner
	return host, joiner
}

func TestWaitingState_StartsGameWhenFull(t *testing.T) {
	room := newMockRoom()
	waiting := NewWaitingState(room)

	// One seat: nothing happens.
	room.participants[network.RoleHost] = &mockParticipant{id: "s1", name: "alice", role: network.RoleHost}
	waiting.OnUpdate()
	if room.game != nil {
		t.Fatal("Game should not start with one seat")
	}

	seatBoth(room)
	waiting.OnUpdate()

	if room.game == nil {
		t.Fatal("Game should start once both seats are filled")
	}
	if room.game.Players[0].Name != "alice" {
		t.Errorf("Expected the host in seat 0, got %q", room.game.Players[0].Name)
	}
	if len(room.broadcasts) != 1 || room.broadcasts[0].Type != network.MsgState {
		t.Fatalf("Expected one initial state broadcast, got %d", len(room.broadcasts))
	}
	if room.nextState == nil || room.nextState.GetID() != "playing" {
		t.Error("Expected a transition to the playing state")
	}

	// A later tick must not create a second game.
	existing := room.game
	waiting.OnUpdate()
	if room.game != existing {
		t.Error("OnUpdate should not replace an existing game")
	}
}

func TestWaitingState_RejectsCommits(t *testing.T) {
	room := newMockRoom()
	waiting := NewWaitingState(room)
	host := &mockParticipant{id: "s1", name: "alice", role: network.RoleHost}

	if err := waiting.HandleAction(host, network.CommitPass{}); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}
	if len(host.sent) != 1 || host.sent[0].Type != network.MsgError {
		t.Fatal("A commit before the game starts should get an error envelope")
	}
}

func TestWaitingState_RelaysTransientActions(t *testing.T) {
	room := newMockRoom()
	waiting := NewWaitingState(room)
	host := &mockParticipant{id: "s1", name: "alice", role: network.RoleHost}

	action := network.TilePlaced{Pos: game.Position{Row: 7, Col: 7}, Letter: "א"}
	if err := waiting.HandleAction(host, action); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}
	if len(room.relayed) != 1 {
		t.Fatalf("Expected the placement to be relayed, got %d relays", len(room.relayed))
	}
}

func startPlaying(t *testing.T, room *mockRoom) (*PlayingState, *mockParticipant, *mockParticipant) {
	t.Helper()
	host, joiner := seatBoth(room)
	NewWaitingState(room).OnUpdate()
	if room.game == nil {
		t.Fatal("Setup failed: game did not start")
	}

	playing, ok := room.nextState.(*PlayingState)
	if !ok {
		t.Fatalf("Setup failed: expected PlayingState, got %T", room.nextState)
	}
	room.broadcasts = nil
	room.scheduled = nil
	return playing, host, joiner
}

func TestPlayingState_CommitPassBroadcastsSnapshot(t *testing.T) {
	room := newMockRoom()
	playing, host, _ := startPlaying(t, room)

	if err := playing.HandleAction(host, network.CommitPass{}); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	if len(room.broadcasts) != 1 || room.broadcasts[0].Type != network.MsgState {
		t.Fatalf("Expected one snapshot broadcast, got %d", len(room.broadcasts))
	}
	if room.game.CurrentPlayer != 1 {
		t.Errorf("Expected the turn to advance to seat 1, got %d", room.game.CurrentPlayer)
	}
	if len(room.scheduled) != 1 || room.scheduled[0] != room.game.State.TurnNumber {
		t.Errorf("Expected an expiry scheduled for turn %d, got %v", room.game.State.TurnNumber, room.scheduled)
	}
}

func TestPlayingState_OutOfTurnCommitRejected(t *testing.T) {
	room := newMockRoom()
	playing, _, joiner := startPlaying(t, room)

	if err := playing.HandleAction(joiner, network.CommitPass{}); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	if len(joiner.sent) != 1 || joiner.sent[0].Type != network.MsgError {
		t.Fatal("An out-of-turn commit should get an error envelope back")
	}
	if len(room.broadcasts) != 0 {
		t.Error("A rejected commit must not broadcast a snapshot")
	}
	if room.game.CurrentPlayer != 0 {
		t.Error("A rejected commit must not advance the turn")
	}
}

func TestPlayingState_RejectedMoveCarriesDetails(t *testing.T) {
	room := newMockRoom()
	playing, host, _ := startPlaying(t, room)
	room.game.Players[0].Rack[0] = "א"

	// Off-center first move is illegal.
	err := playing.HandleAction(host, network.CommitMove{Placements: []game.Placement{
		{Pos: game.Position{Row: 0, Col: 0}, Letter: "א", RackIndex: 0},
	}})
	if err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}
	if len(host.sent) != 1 || host.sent[0].Type != network.MsgError {
		t.Fatal("Expected a rejection envelope for the proposer")
	}
}

func TestPlayingState_TimeoutAutoPasses(t *testing.T) {
	room := newMockRoom()
	playing, _, _ := startPlaying(t, room)

	turn := room.game.State.TurnNumber
	playing.HandleTimeout(turn)

	if room.game.CurrentPlayer != 1 {
		t.Errorf("Expected the auto-pass to advance the turn, got seat %d", room.game.CurrentPlayer)
	}
	if len(room.broadcasts) != 1 {
		t.Fatalf("Expected one snapshot broadcast after auto-pass, got %d", len(room.broadcasts))
	}

	// Stale deliveries for the consumed turn fall through.
	before := room.game.State.TurnNumber
	playing.HandleTimeout(turn)
	if room.game.State.TurnNumber != before {
		t.Error("A stale timeout must not auto-pass again")
	}
}

func TestPlayingState_PassOutFinishesAndSaves(t *testing.T) {
	room := newMockRoom()
	room.rules.MaxPasses = 2
	playing, host, joiner := startPlaying(t, room)

	playing.HandleAction(host, network.CommitPass{})
	playing.HandleAction(joiner, network.CommitPass{})

	if room.game.State.Phase != game.PhaseFinished {
		t.Fatalf("Expected the game to finish at the pass threshold, got %s", room.game.State.Phase)
	}
	if room.nextState == nil || room.nextState.GetID() != "finished" {
		t.Error("Expected a transition to the finished state")
	}
	if room.saved != room.game {
		t.Error("Entering the finished state should persist the results")
	}
}

func TestFinishedState_RejectsCommits(t *testing.T) {
	room := newMockRoom()
	_, host, _ := startPlaying(t, room)

	finished := NewFinishedState(room)
	if err := finished.HandleAction(host, network.CommitPass{}); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}
	if len(host.sent) != 1 || host.sent[0].Type != network.MsgError {
		t.Fatal("A commit after the game ends should get an error envelope")
	}
}
