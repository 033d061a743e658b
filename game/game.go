package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrGameNotPlaying is returned for any commit outside the playing
	// phase.
	ErrGameNotPlaying = errors.New("game is not in the playing phase")
	// ErrNotYourTurn is returned when a commit names a player other
	// than the current one. The authority decides whose turn it is.
	ErrNotYourTurn = errors.New("not this player's turn")
	// ErrInvalidRackIndex is returned when a placement or exchange
	// points at an empty, out-of-range or already-used rack slot.
	ErrInvalidRackIndex = errors.New("invalid rack index")
	// ErrLetterMismatch is returned when a placement declares a letter
	// that is not the tile sitting in the named rack slot. A joker may
	// be declared as any letter.
	ErrLetterMismatch = errors.New("placement letter does not match the rack tile")
)

// MoveRejectedError carries every validation failure of a rejected
// placement so the proposer can show all of them at once.
type MoveRejectedError struct {
	Errors []ValidationError
}

func (e *MoveRejectedError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		msgs[i] = v.Error()
	}
	return "move rejected: " + strings.Join(msgs, "; ")
}

// MoveOutcome reports a committed placement back to the caller.
type MoveOutcome struct {
	Move  Move
	Score MoveScore
	Words []FoundWord
}

// Game is the authoritative instance of a two-player session. Exactly
// one participant's side (the host) owns it; the peer only mirrors
// snapshots. All mutations go through the Apply methods, which compute
// the resulting values first and swap them in only after validation
// passes, so a rejected move leaves nothing modified.
type Game struct {
	ID            string
	Board         *Board
	Players       [2]*Player
	Bag           *Bag
	State         *GameState
	CurrentPlayer int
	Rules         Rules

	lexicon Lexicon
}

// NewGame deals both racks and opens play with player 0 (the host's
// seat). The seed fixes the bag order so initialization is
// reproducible on the authoritative side.
func NewGame(id string, names [2]string, rules Rules, lex Lexicon, seed int64) *Game {
	g := &Game{
		ID:      id,
		Board:   NewBoard(),
		Bag:     NewBag(rules.Bag, seed),
		State:   NewGameState(rules.SecondsPerTurn),
		Rules:   rules,
		lexicon: lex,
	}
	for i, name := range names {
		g.Players[i] = NewPlayer(name, rules.RackSize)
		g.Players[i].Refill(g.Bag)
	}
	g.State.Start()
	return g
}

// Version is the monotonic counter stamped on every snapshot.
// Receivers discard snapshots whose version is not greater than their
// last applied one.
func (g *Game) Version() int {
	return g.State.TurnNumber
}

func (g *Game) checkTurn(playerID int) error {
	if g.State.Phase != PhasePlaying {
		return ErrGameNotPlaying
	}
	if playerID != g.CurrentPlayer {
		return ErrNotYourTurn
	}
	return nil
}

// ApplyPlacement validates and commits a word placement. On success
// the board, the player's rack and score, the bag, and the turn state
// all advance atomically; on any error the game is untouched.
func (g *Game) ApplyPlacement(playerID int, placements []Placement) (*MoveOutcome, error) {
	if err := g.checkTurn(playerID); err != nil {
		return nil, err
	}
	if len(placements) == 0 {
		return nil, &MoveRejectedError{Errors: []ValidationError{{Kind: NoWordFormed}}}
	}

	player := g.Players[playerID]
	tilesUsed := make([]string, 0, len(placements))
	seen := make(map[int]bool, len(placements))
	for _, p := range placements {
		if p.RackIndex < 0 || p.RackIndex >= len(player.Rack) || player.Rack[p.RackIndex] == EmptySlot || seen[p.RackIndex] {
			return nil, ErrInvalidRackIndex
		}
		tile := player.Rack[p.RackIndex]
		if tile != Joker && tile != p.Letter {
			return nil, ErrLetterMismatch
		}
		seen[p.RackIndex] = true
		tilesUsed = append(tilesUsed, tile)
	}

	result := Validate(g.Board, placements, g.State.IsFirstMove, g.lexicon)
	if !result.Legal {
		return nil, &MoveRejectedError{Errors: result.Errors}
	}

	// Compute the resulting values before touching the game.
	newBoard := g.Board.Overlay(placements)
	newPositions := make([]Position, len(placements))
	for i, p := range placements {
		newPositions[i] = p.Pos
	}
	score := ScoreMove(result.NewWords, newPositions, newBoard, len(placements), g.Rules.RackSize)
	newBoard.Commit(playerID)

	newPlayer := player.Clone()
	for _, p := range placements {
		newPlayer.Rack[p.RackIndex] = EmptySlot
	}
	newPlayer.Refill(g.Bag)
	newPlayer.Score += score.Total
	newPlayer.ConsecutivePasses = 0

	words := make([]string, len(result.NewWords))
	for i, w := range result.NewWords {
		words[i] = w.Word
	}
	move := Move{
		PlayerID:   playerID,
		Action:     ActionPlaceWord,
		Word:       strings.Join(words, ", "),
		TilesUsed:  tilesUsed,
		Score:      score.Total,
		WordScores: score.WordScores,
		BingoBonus: score.BingoBonus,
	}

	// Swap.
	g.Board = newBoard
	g.Players[playerID] = newPlayer
	g.State.RecordMove(move)
	g.advance()

	return &MoveOutcome{Move: move, Score: score, Words: result.NewWords}, nil
}

// ApplyPass records a pass. Reaching the pass threshold finishes the
// game instead of advancing the turn.
func (g *Game) ApplyPass(playerID int) (*MoveOutcome, error) {
	if err := g.checkTurn(playerID); err != nil {
		return nil, err
	}

	g.Players[playerID].ConsecutivePasses++
	move := Move{PlayerID: playerID, Action: ActionPass}
	g.State.RecordMove(move)
	g.advance()
	return &MoveOutcome{Move: move}, nil
}

// ApplyExchange swaps the named rack tiles for fresh ones. The
// returned tiles enter the bag before the draw, keeping the bag size
// invariant across the exchange.
func (g *Game) ApplyExchange(playerID int, rackIndexes []int) (*MoveOutcome, error) {
	if err := g.checkTurn(playerID); err != nil {
		return nil, err
	}
	if len(rackIndexes) == 0 {
		return nil, fmt.Errorf("exchange with no tiles")
	}

	player := g.Players[playerID]
	returned := make([]string, 0, len(rackIndexes))
	seen := make(map[int]bool, len(rackIndexes))
	for _, idx := range rackIndexes {
		if idx < 0 || idx >= len(player.Rack) || player.Rack[idx] == EmptySlot || seen[idx] {
			return nil, ErrInvalidRackIndex
		}
		seen[idx] = true
		returned = append(returned, player.Rack[idx])
	}

	drawn, err := g.Bag.Exchange(returned)
	if err != nil {
		return nil, err
	}

	newPlayer := player.Clone()
	for i, idx := range rackIndexes {
		newPlayer.Rack[idx] = drawn[i]
	}
	newPlayer.ConsecutivePasses = 0

	move := Move{PlayerID: playerID, Action: ActionExchange, TilesUsed: returned}
	g.Players[playerID] = newPlayer
	g.State.RecordMove(move)
	g.advance()
	return &MoveOutcome{Move: move}, nil
}

// advance runs end-of-game detection and, if the game goes on, hands
// the turn to the other player. Only the authority ever calls this;
// the turn index is never trusted from a commit request.
func (g *Game) advance() {
	if g.finishIfOver() {
		return
	}
	g.CurrentPlayer = (g.CurrentPlayer + 1) % len(g.Players)
}

// finishIfOver checks the two end conditions: an emptied rack or the
// pass threshold. The end-of-game score adjustment is applied here,
// exactly once.
func (g *Game) finishIfOver() bool {
	if g.State.Phase != PhasePlaying {
		return true
	}

	finisher := -1
	for i, p := range g.Players {
		if p.HasEmptyRack() {
			finisher = i
			break
		}
	}
	passedOut := g.State.ConsecutivePasses >= g.Rules.MaxPasses
	if finisher < 0 && !passedOut {
		return false
	}

	for i, p := range g.Players {
		if i == finisher {
			var others [][]string
			for j, o := range g.Players {
				if j != i {
					others = append(others, o.RackTiles())
				}
			}
			p.Score += FinishBonus(others)
		} else {
			p.Score = FinalScore(p.Score, p.RackTiles())
		}
	}

	g.State.Finish()
	return true
}

// Snapshot is the full authoritative state pushed to both
// participants after every committed change. It is applied wholesale,
// never merged.
type Snapshot struct {
	Version       int        `json:"version"`
	GameID        string     `json:"gameId"`
	Board         *Board     `json:"board"`
	Players       [2]*Player `json:"players"`
	BagTiles      []string   `json:"letterBag"`
	CurrentPlayer int        `json:"currentPlayer"`
	State         *GameState `json:"gameState"`
	TakenAt       time.Time  `json:"takenAt"`
}

// Snapshot deep-copies the current state.
func (g *Game) Snapshot() *Snapshot {
	state := *g.State
	state.MoveHistory = append([]Move(nil), g.State.MoveHistory...)

	snap := &Snapshot{
		Version:       g.Version(),
		GameID:        g.ID,
		Board:         g.Board.Clone(),
		BagTiles:      g.Bag.Tiles(),
		CurrentPlayer: g.CurrentPlayer,
		State:         &state,
		TakenAt:       time.Now(),
	}
	for i, p := range g.Players {
		snap.Players[i] = p.Clone()
	}
	return snap
}
