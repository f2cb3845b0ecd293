package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a periodic record of the company balance, taken by the
// snapshot cron job.
type BalanceSnapshot struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SnapshotAt time.Time `gorm:"type:timestamptz;not null;index" json:"snapshot_at"`

	Balance          decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"balance"`
	TransactionCount int64           `gorm:"not null" json:"transaction_count"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (BalanceSnapshot) TableName() string {
	return "balance_snapshots"
}
