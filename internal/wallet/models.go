package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is one user's balance row. Version backs the optimistic-lock
// update; every movement bumps it.
type Wallet struct {
	WalletID  string          `gorm:"column:wallet_id;primaryKey;type:uuid;default:uuid_generate_v4()" json:"wallet_id"`
	UserID    string          `gorm:"column:user_id;type:uuid;not null;unique" json:"user_id"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric(20,2);not null;default:0" json:"balance"`
	Version   int             `gorm:"column:version;not null;default:1" json:"-"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (Wallet) TableName() string { return "wallets" }

// Entry kinds. Stakes and refunds reference the bet ID; payouts reference
// the bet ID with a ":win" suffix so one bet can carry both a stake and a
// payout entry.
const (
	EntryStake   = "stake"
	EntryPayout  = "payout"
	EntryRefund  = "refund"
	EntryDeposit = "deposit"
)

// Entry is one journal row. Reference is the idempotency key: replaying a
// movement with the same reference returns the original entry instead of
// moving money twice.
type Entry struct {
	EntryID       string          `gorm:"column:entry_id;primaryKey;type:uuid;default:uuid_generate_v4()" json:"entry_id"`
	WalletID      string          `gorm:"column:wallet_id;type:uuid;not null;index" json:"wallet_id"`
	UserID        string          `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Kind          string          `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(20,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"column:balance_before;type:numeric(20,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"column:balance_after;type:numeric(20,2);not null" json:"balance_after"`
	Reference     string          `gorm:"column:reference;type:varchar(255);not null;unique" json:"reference"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (Entry) TableName() string { return "wallet_entries" }
