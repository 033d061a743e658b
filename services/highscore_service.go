package services

import (
	"github.com/google/uuid"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/models"
	"github.com/wfunc/scrabbleserver/persistence"
)

// HighscoreService derives record milestones from finished games and
// appends them to the store. It is write-only from the game core's
// point of view; Top serves the rpc query endpoint.
type HighscoreService struct {
	store persistence.Store
}

func NewHighscoreService(store persistence.Store) *HighscoreService {
	return &HighscoreService{store: store}
}

// RecordFinishedGame persists the game record and every highscore
// milestone the game produced: final scores, best single turn, best
// and longest word, and bingo counts.
func (s *HighscoreService) RecordFinishedGame(g *game.Game) error {
	outcomes := outcomesFor(g)
	record := models.GameRecord{
		GameID: g.ID,
		Moves:  len(g.State.MoveHistory),
	}
	if n := len(g.State.MoveHistory); n > 0 {
		first := g.State.MoveHistory[0].Timestamp
		last := g.State.MoveHistory[n-1].Timestamp
		record.Duration = int(last.Sub(first).Seconds())
	}
	for i, p := range g.Players {
		record.Players = append(record.Players, models.PlayerResult{
			Name:    p.Name,
			Score:   p.Score,
			Outcome: outcomes[i],
		})
	}
	if err := s.store.SaveGameRecord(record); err != nil {
		return err
	}

	for _, entry := range s.milestones(g) {
		if err := s.store.AppendHighscore(entry); err != nil {
			logger.Log.Errorf("Failed to append highscore %s for %s: %v", entry.Category, entry.PlayerName, err)
		}
	}
	return nil
}

// milestones walks the move history once per category.
func (s *HighscoreService) milestones(g *game.Game) []models.HighscoreEntry {
	var entries []models.HighscoreEntry
	add := func(category models.HighscoreCategory, player string, points int, word string) {
		entries = append(entries, models.HighscoreEntry{
			ID:         uuid.New().String(),
			Category:   category,
			PlayerName: player,
			Points:     points,
			Word:       word,
			GameID:     g.ID,
		})
	}

	for _, p := range g.Players {
		add(models.CategoryGamePoints, p.Name, p.Score, "")
	}

	var bestTurn *game.Move
	var bestWord, longestWord game.WordScore
	var bestWordPlayer, longestWordPlayer string
	bingos := make(map[int]int)

	for i := range g.State.MoveHistory {
		m := &g.State.MoveHistory[i]
		if m.Action != game.ActionPlaceWord {
			continue
		}
		if bestTurn == nil || m.Score > bestTurn.Score {
			bestTurn = m
		}
		for _, ws := range m.WordScores {
			if ws.Score > bestWord.Score {
				bestWord = ws
				bestWordPlayer = g.Players[m.PlayerID].Name
			}
			if len([]rune(ws.Word)) > len([]rune(longestWord.Word)) {
				longestWord = ws
				longestWordPlayer = g.Players[m.PlayerID].Name
			}
		}
		if len(m.TilesUsed) == g.Rules.RackSize {
			bingos[m.PlayerID]++
		}
	}

	if bestTurn != nil {
		add(models.CategoryTurnPoints, g.Players[bestTurn.PlayerID].Name, bestTurn.Score, bestTurn.Word)
	}
	if bestWord.Word != "" {
		add(models.CategoryWordPoints, bestWordPlayer, bestWord.Score, bestWord.Word)
	}
	if longestWord.Word != "" {
		add(models.CategoryLongestWord, longestWordPlayer, len([]rune(longestWord.Word)), longestWord.Word)
	}
	for playerID, count := range bingos {
		add(models.CategoryBingoCount, g.Players[playerID].Name, count, "")
	}

	return entries
}

// Top returns the best entries in a category.
func (s *HighscoreService) Top(category models.HighscoreCategory, limit int) ([]models.HighscoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.TopHighscores(category, limit)
}

func outcomesFor(g *game.Game) []string {
	outcomes := make([]string, len(g.Players))
	switch {
	case g.Players[0].Score > g.Players[1].Score:
		outcomes[0], outcomes[1] = "win", "lose"
	case g.Players[1].Score > g.Players[0].Score:
		outcomes[0], outcomes[1] = "lose", "win"
	default:
		outcomes[0], outcomes[1] = "draw", "draw"
	}
	return outcomes
}
