package models

import (
	"time"
)

// CargoManifest is a cargo load record, optionally linked to one dispatch.
type CargoManifest struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Date        string `gorm:"type:varchar(20)" json:"date"`
	FlightID    string `gorm:"type:varchar(20);index" json:"flight_id"`
	Aircraft    string `gorm:"type:varchar(50)" json:"aircraft"`
	Departure   string `gorm:"type:varchar(10)" json:"departure"`
	Arrival     string `gorm:"type:varchar(10)" json:"arrival"`
	TotalWeight string `gorm:"type:varchar(20)" json:"total_weight"`
	Pieces      string `gorm:"type:varchar(10)" json:"pieces"`
	Notes       string `gorm:"type:text" json:"notes"`

	DispatchID *uint64 `gorm:"index" json:"dispatch_id"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (CargoManifest) TableName() string {
	return "cargo_manifests"
}
