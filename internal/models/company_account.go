package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyAccount is the single running-balance row. Mutated only by applying
// or reversing transactions; the balance must always equal the signed sum of
// live transaction amounts.
type CompanyAccount struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Balance decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"balance"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (CompanyAccount) TableName() string {
	return "company_accounts"
}
