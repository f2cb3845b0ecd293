package models

import (
	"time"
)

// CrewLog records an executed flight leg: the destination actually reached
// and the fuel actually burned. The most recent numeric FuelUsed for a
// dispatch overrides its planned fuel in the financial computation.
type CrewLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Date        string `gorm:"type:varchar(20)" json:"date"`
	FlightID    string `gorm:"type:varchar(20);index" json:"flight_id"`
	Origin      string `gorm:"type:varchar(10)" json:"origin"`
	Destination string `gorm:"type:varchar(10)" json:"destination"`
	Aircraft    string `gorm:"type:varchar(50)" json:"aircraft"`
	BlockOff    string `gorm:"type:varchar(10)" json:"block_off"`
	BlockOn     string `gorm:"type:varchar(10)" json:"block_on"`
	BlockTime   string `gorm:"type:varchar(10)" json:"block_time"`
	CargoWeight string `gorm:"type:varchar(20)" json:"cargo_weight"`
	FuelUsed    string `gorm:"type:varchar(20)" json:"fuel_used"`
	Remarks     string `gorm:"type:text" json:"remarks"`

	DispatchID *uint64 `gorm:"index" json:"dispatch_id"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (CrewLog) TableName() string {
	return "crew_logs"
}
