package models

import (
	"time"
)

// Dispatch is a dispatch release: one planned (and eventually flown) cargo
// flight. Weight and fuel figures are stored as the free-form strings the
// dispatch form submits; numeric parsing is best-effort downstream.
type Dispatch struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Date      string `gorm:"type:varchar(20)" json:"date"`
	FlightID  string `gorm:"type:varchar(20);index" json:"flight_id"`
	Aircraft  string `gorm:"type:varchar(50)" json:"aircraft"`
	Departure string `gorm:"type:varchar(10)" json:"departure"`

	// Destination is the planned destination; crew logs record what was
	// actually reached.
	Destination string `gorm:"type:varchar(10)" json:"destination"`

	Offblocks string `gorm:"type:varchar(10)" json:"offblocks"`
	Arrival   string `gorm:"type:varchar(10)" json:"arrival"`
	Route     string `gorm:"type:text" json:"route"`

	PayloadPlanned string `gorm:"type:varchar(20)" json:"payload_planned"`
	FuelPlanned    string `gorm:"type:varchar(20)" json:"fuel_planned"`

	// ActualCargoWeight is derived: the sum of linked manifest weights,
	// integer-formatted when whole, one decimal otherwise. NULL when no
	// linked manifest carries a numeric weight.
	ActualCargoWeight *string `gorm:"type:varchar(20)" json:"actual_cargo_weight"`

	Completed bool `gorm:"not null;default:false;index" json:"completed"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Dispatch) TableName() string {
	return "dispatch_releases"
}
