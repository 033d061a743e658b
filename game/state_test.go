package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMovePassCounter(t *testing.T) {
	s := NewGameState(120)
	s.Start()

	s.RecordMove(Move{PlayerID: 0, Action: ActionPass})
	s.RecordMove(Move{PlayerID: 1, Action: ActionPass})
	assert.Equal(t, 2, s.ConsecutivePasses)

	s.RecordMove(Move{PlayerID: 0, Action: ActionExchange})
	assert.Zero(t, s.ConsecutivePasses, "any non-pass action resets the counter")

	s.RecordMove(Move{PlayerID: 1, Action: ActionPass})
	assert.Equal(t, 1, s.ConsecutivePasses)
}

func TestRecordMoveTurnNumber(t *testing.T) {
	s := NewGameState(120)
	s.Start()
	assert.Equal(t, 1, s.TurnNumber)

	s.RecordMove(Move{Action: ActionPass})
	s.RecordMove(Move{Action: ActionPlaceWord})
	assert.Equal(t, 3, s.TurnNumber)
	assert.Len(t, s.MoveHistory, 2)
}

func TestRecordMoveFirstMoveFlag(t *testing.T) {
	s := NewGameState(120)
	s.Start()
	require.True(t, s.IsFirstMove)

	s.RecordMove(Move{Action: ActionPass})
	assert.True(t, s.IsFirstMove, "passes do not consume the first move")

	s.RecordMove(Move{Action: ActionExchange})
	assert.True(t, s.IsFirstMove, "exchanges do not consume the first move")

	s.RecordMove(Move{Action: ActionPlaceWord})
	assert.False(t, s.IsFirstMove)
}

func TestRecordMoveStampsTimestamp(t *testing.T) {
	s := NewGameState(120)
	s.Start()

	before := time.Now()
	s.RecordMove(Move{Action: ActionPass, Timestamp: time.Time{}})
	require.Len(t, s.MoveHistory, 1)
	assert.False(t, s.MoveHistory[0].Timestamp.Before(before), "the authority stamps the move, not the sender")
}

func TestRemainingTurnTime(t *testing.T) {
	s := NewGameState(120)
	s.Start()

	remaining := s.RemainingTurnTime(s.TurnStartedAt.Add(30 * time.Second))
	assert.Equal(t, 90*time.Second, remaining)

	assert.Zero(t, s.RemainingTurnTime(s.TurnStartedAt.Add(500*time.Second)), "the clock never goes negative")
	assert.Equal(t, 120*time.Second, s.RemainingTurnTime(s.TurnStartedAt))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "2:00", FormatClock(120*time.Second))
	assert.Equal(t, "1:30", FormatClock(90*time.Second))
	assert.Equal(t, "0:05", FormatClock(5*time.Second))
	assert.Equal(t, "0:00", FormatClock(0))
}

func TestCollectStats(t *testing.T) {
	history := []Move{
		{Action: ActionPlaceWord, TilesUsed: []string{"א", "ב"}, WordScores: []WordScore{{Word: "אב", Score: 12}}},
		{Action: ActionPass},
		{Action: ActionPlaceWord, TilesUsed: []string{"א", "ב", "ג", "ד", "ה", "ו", "ז"}, WordScores: []WordScore{
			{Word: "אבגדהוז", Score: 94},
			{Word: "בא", Score: 4},
		}},
		{Action: ActionExchange, TilesUsed: []string{"ג"}},
	}

	stats := CollectStats(history, 7)
	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 1, stats.BingoCount)
	assert.Equal(t, 9, stats.TotalTilesPlayed)
	require.NotNil(t, stats.HighestScoringWord)
	assert.Equal(t, 94, stats.HighestScoringWord.Score)
	assert.InDelta(t, (2.0+7.0+2.0)/3.0, stats.AverageWordLength, 0.001)
}
