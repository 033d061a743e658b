package models

import (
	"time"
)

// HighscoreCategory keys the append-only local record list.
type HighscoreCategory string

const (
	CategoryTurnPoints  HighscoreCategory = "turn-points"
	CategoryGamePoints  HighscoreCategory = "game-points"
	CategoryWordPoints  HighscoreCategory = "word-points"
	CategoryLongestWord HighscoreCategory = "longest-word"
	CategoryBingoCount  HighscoreCategory = "bingo-count"
)

// HighscoreEntry is one appended record. The core only ever writes
// these; reads serve the rpc query surface.
type HighscoreEntry struct {
	ID         string            `json:"id"`
	Category   HighscoreCategory `json:"category"`
	PlayerName string            `json:"playerName"`
	Points     int               `json:"points"`
	Word       string            `json:"word,omitempty"`
	GameID     string            `json:"gameId,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// PlayerResult is one player's line in a game record.
type PlayerResult struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Outcome string `json:"outcome"` // win/lose/draw
}

// GameRecord summarizes a finished game.
type GameRecord struct {
	GameID    string         `json:"gameId"`
	Players   []PlayerResult `json:"players"`
	Moves     int            `json:"moves"`
	Duration  int            `json:"duration"` // seconds
	CreatedAt time.Time      `json:"createdAt"`
}
