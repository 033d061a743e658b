package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wfunc/scrabbleserver/models"
)

// GormPostgreSQL is the GORM-backed store.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormHighscore{}, &models.GormGameRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// AppendHighscore inserts a record. The list is append-only: existing
// rows are never updated or deleted.
func (p *GormPostgreSQL) AppendHighscore(entry models.HighscoreEntry) error {
	row := models.GormHighscore{
		EntryID:    entry.ID,
		Category:   string(entry.Category),
		PlayerName: entry.PlayerName,
		Points:     entry.Points,
		Word:       entry.Word,
		GameID:     entry.GameID,
	}
	return p.db.Create(&row).Error
}

// TopHighscores returns the best entries in a category, highest
// points first.
func (p *GormPostgreSQL) TopHighscores(category models.HighscoreCategory, limit int) ([]models.HighscoreEntry, error) {
	var rows []models.GormHighscore
	err := p.db.
		Where("category = ?", string(category)).
		Order("points DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.HighscoreEntry, len(rows))
	for i, row := range rows {
		entries[i] = models.HighscoreEntry{
			ID:         row.EntryID,
			Category:   models.HighscoreCategory(row.Category),
			PlayerName: row.PlayerName,
			Points:     row.Points,
			Word:       row.Word,
			GameID:     row.GameID,
			CreatedAt:  row.CreatedAt,
		}
	}
	return entries, nil
}

// SaveGameRecord stores a finished game summary.
func (p *GormPostgreSQL) SaveGameRecord(record models.GameRecord) error {
	players := make(map[string]interface{}, len(record.Players))
	for _, pr := range record.Players {
		players[pr.Name] = map[string]interface{}{
			"score":   pr.Score,
			"outcome": pr.Outcome,
		}
	}

	row := models.GormGameRecord{
		GameID:   record.GameID,
		Players:  players,
		Moves:    record.Moves,
		Duration: record.Duration,
	}
	return p.db.Create(&row).Error
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction exposes GORM transactions for callers that append
// several records atomically.
func (p *GormPostgreSQL) Transaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}
