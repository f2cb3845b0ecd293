package models

import (
	"time"
)

type Notam struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	NotamID string `gorm:"type:varchar(30);index" json:"notam_id"`
	Subject string `gorm:"type:varchar(100)" json:"subject"`
	Area    string `gorm:"type:varchar(50)" json:"area"`
	Text    string `gorm:"type:text" json:"text"`
	Status  string `gorm:"type:varchar(20);index" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Notam) TableName() string {
	return "company_notams"
}
