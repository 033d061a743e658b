package models

import (
	"gorm.io/gorm"
)

// GormHighscore is the highscore table row.
type GormHighscore struct {
	gorm.Model
	EntryID    string `gorm:"uniqueIndex;not null"`
	Category   string `gorm:"index;not null"`
	PlayerName string `gorm:"not null"`
	Points     int    `gorm:"not null"`
	Word       string
	GameID     string `gorm:"index"`
}

// GormGameRecord is the finished-game table row.
type GormGameRecord struct {
	gorm.Model
	GameID   string                 `gorm:"uniqueIndex;not null"`
	Players  map[string]interface{} `gorm:"serializer:json;type:jsonb;not null"`
	Moves    int                    `gorm:"default:0"`
	Duration int                    `gorm:"default:0"` // seconds
}
