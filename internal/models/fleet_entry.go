package models

import (
	"time"
)

type FleetEntry struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	AircraftType     string `gorm:"type:varchar(50)" json:"aircraft_type"`
	Registration     string `gorm:"type:varchar(20);index" json:"registration"`
	Base             string `gorm:"type:varchar(10)" json:"base"`
	Status           string `gorm:"type:varchar(20);index" json:"status"`
	MaxTakeoffWeight string `gorm:"type:varchar(20)" json:"max_takeoff_weight"`
	UsefulLoad       string `gorm:"type:varchar(20)" json:"useful_load"`
	Notes            string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (FleetEntry) TableName() string {
	return "fleet_entries"
}
