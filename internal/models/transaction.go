package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TxKindRevenue = "revenue"
	TxKindExpense = "expense"
)

// Transaction categories. Primary transactions settle a dispatch; fuel
// reconciliation transactions correct for planned-vs-actual fuel burn and
// are matched by crew log, never by description text.
const (
	TxCategoryPrimaryRevenue     = "primary_revenue"
	TxCategoryPrimaryExpense     = "primary_expense"
	TxCategoryFuelReconciliation = "fuel_reconciliation"
)

// Transaction is a company ledger entry. Amount is a positive magnitude;
// the kind decides the sign of its effect on the account balance.
type Transaction struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Kind     string `gorm:"type:varchar(10);not null;index" json:"kind"`
	Category string `gorm:"type:varchar(30);not null;index" json:"category"`

	Amount decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"amount"`

	Description string `gorm:"type:text" json:"description"`

	DispatchID *uint64 `gorm:"index" json:"dispatch_id"`
	CrewLogID  *uint64 `gorm:"index" json:"crew_log_id"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "ledger_transactions"
}

// Effect is the signed balance impact of the transaction.
func (t Transaction) Effect() decimal.Decimal {
	if t.Kind == TxKindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
