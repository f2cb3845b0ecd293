package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting stores runtime-configurable settings in the DB (difficulty tier,
// feature switches).
type Setting struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Key string `gorm:"type:varchar(120);not null;uniqueIndex" json:"key"`

	// JSON value, e.g. a string for sim.difficulty or true/false for
	// feature switches.
	Value datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`

	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;autoUpdateTime;index" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
