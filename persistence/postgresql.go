package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/wfunc/scrabbleserver/models"
)

// PostgreSQL is the plain database/sql store. Functionally equivalent
// to the GORM implementation; kept for deployments that prefer raw
// SQL.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS highscores (
            id SERIAL PRIMARY KEY,
            entry_id TEXT UNIQUE NOT NULL,
            category TEXT NOT NULL,
            player_name TEXT NOT NULL,
            points INT NOT NULL,
            word TEXT,
            game_id TEXT,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_highscores_category ON highscores (category, points DESC)`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            game_id TEXT UNIQUE NOT NULL,
            players JSONB NOT NULL,
            moves INT NOT NULL DEFAULT 0,
            duration INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	return err
}

func (p *PostgreSQL) AppendHighscore(entry models.HighscoreEntry) error {
	_, err := p.db.Exec(`
        INSERT INTO highscores (entry_id, category, player_name, points, word, game_id)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, string(entry.Category), entry.PlayerName, entry.Points, entry.Word, entry.GameID,
	)
	return err
}

func (p *PostgreSQL) TopHighscores(category models.HighscoreCategory, limit int) ([]models.HighscoreEntry, error) {
	rows, err := p.db.Query(`
        SELECT entry_id, category, player_name, points, word, game_id, created_at
        FROM highscores
        WHERE category = $1
        ORDER BY points DESC
        LIMIT $2`,
		string(category), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HighscoreEntry
	for rows.Next() {
		var e models.HighscoreEntry
		var cat string
		if err := rows.Scan(&e.ID, &cat, &e.PlayerName, &e.Points, &e.Word, &e.GameID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Category = models.HighscoreCategory(cat)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *PostgreSQL) SaveGameRecord(record models.GameRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
        INSERT INTO game_records (game_id, players, moves, duration)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (game_id) DO NOTHING`,
		record.GameID, players, record.Moves, record.Duration,
	)
	return err
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
