package game

import (
	"fmt"
	"time"
)

// Phase is the lifecycle of a game. finished is terminal.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// ActionType is what a player did on their turn.
type ActionType string

const (
	ActionPlaceWord ActionType = "place-word"
	ActionExchange  ActionType = "exchange-tiles"
	ActionPass      ActionType = "pass"
)

// Rules are the tunable game parameters.
type Rules struct {
	SecondsPerTurn int
	RackSize       int
	// MaxPasses ends the game when consecutive passes across both
	// players reach it. 6 means three full rounds of mutual passing.
	MaxPasses int
	Bag       BagOptions
}

// DefaultRules matches the standard two-minute, seven-tile game.
func DefaultRules() Rules {
	return Rules{
		SecondsPerTurn: 120,
		RackSize:       7,
		MaxPasses:      6,
		Bag:            DefaultBagOptions(),
	}
}

// Move is one immutable entry in the game history.
type Move struct {
	PlayerID   int         `json:"playerId"`
	Action     ActionType  `json:"action"`
	Timestamp  time.Time   `json:"timestamp"`
	Word       string      `json:"word,omitempty"`
	TilesUsed  []string    `json:"tilesUsed,omitempty"`
	Score      int         `json:"score,omitempty"`
	WordScores []WordScore `json:"wordScores,omitempty"`
	BingoBonus int         `json:"bingoBonus,omitempty"`
}

// GameState is the turn bookkeeping. It is mutated only through
// RecordMove and Finish.
type GameState struct {
	Phase             Phase     `json:"phase"`
	TurnNumber        int       `json:"turnNumber"`
	ConsecutivePasses int       `json:"consecutivePasses"`
	IsFirstMove       bool      `json:"isFirstMove"`
	MoveHistory       []Move    `json:"moveHistory"`
	SecondsPerTurn    int       `json:"secondsPerTurn"`
	TurnStartedAt     time.Time `json:"turnStartedAt"`
}

// NewGameState starts in the setup phase with the first move pending.
func NewGameState(secondsPerTurn int) *GameState {
	return &GameState{
		Phase:          PhaseSetup,
		TurnNumber:     1,
		IsFirstMove:    true,
		SecondsPerTurn: secondsPerTurn,
		TurnStartedAt:  time.Now(),
	}
}

// Start moves setup to playing and opens the first turn's clock.
func (s *GameState) Start() {
	s.Phase = PhasePlaying
	s.TurnStartedAt = time.Now()
}

// Finish makes the state terminal. Further moves are rejected.
func (s *GameState) Finish() {
	s.Phase = PhaseFinished
}

// RecordMove appends the move with the authority's timestamp, advances
// the turn counter, and restarts the turn clock. Passes accumulate;
// any other action resets the pass counter. The first place-word move
// clears the first-move flag.
func (s *GameState) RecordMove(m Move) {
	m.Timestamp = time.Now()
	s.MoveHistory = append(s.MoveHistory, m)
	s.TurnNumber++
	if m.Action == ActionPass {
		s.ConsecutivePasses++
	} else {
		s.ConsecutivePasses = 0
	}
	if m.Action == ActionPlaceWord {
		s.IsFirstMove = false
	}
	s.TurnStartedAt = time.Now()
}

// RemainingTurnTime derives the clock from the fixed turn start, never
// from a counting-down value, so it is correct no matter how often or
// late it is read.
func (s *GameState) RemainingTurnTime(now time.Time) time.Duration {
	duration := time.Duration(s.SecondsPerTurn) * time.Second
	remaining := duration - now.Sub(s.TurnStartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatClock renders a duration as m:ss for display.
func FormatClock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// GameStats summarizes a move history.
type GameStats struct {
	TotalWords         int        `json:"totalWords"`
	AverageWordLength  float64    `json:"averageWordLength"`
	HighestScoringWord *WordScore `json:"highestScoringWord,omitempty"`
	BingoCount         int        `json:"bingoCount"`
	TotalTilesPlayed   int        `json:"totalTilesPlayed"`
}

// CollectStats walks the history counting words, bingos and tiles.
func CollectStats(history []Move, rackSize int) GameStats {
	var stats GameStats
	totalLength := 0

	for _, m := range history {
		if m.Action != ActionPlaceWord {
			continue
		}
		for _, ws := range m.WordScores {
			stats.TotalWords++
			totalLength += len([]rune(ws.Word))
			if stats.HighestScoringWord == nil || ws.Score > stats.HighestScoringWord.Score {
				w := ws
				stats.HighestScoringWord = &w
			}
		}
		if len(m.TilesUsed) == rackSize {
			stats.BingoCount++
		}
		stats.TotalTilesPlayed += len(m.TilesUsed)
	}

	if stats.TotalWords > 0 {
		stats.AverageWordLength = float64(totalLength) / float64(stats.TotalWords)
	}
	return stats
}
