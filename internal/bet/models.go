package bet

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Bet lifecycle. A bet leaves PENDING exactly once: to WON or LOST through
// settlement, or to CANCELLED while the draw result does not exist yet.
// VERIFIED is a legacy terminal marker kept so old rows still scan as
// settled.
const (
	StatusPending   = "PENDING"
	StatusWon       = "WON"
	StatusLost      = "LOST"
	StatusCancelled = "CANCELLED"
	StatusVerified  = "VERIFIED"
)

// Bet is immutable after placement except for the status/result fields.
type Bet struct {
	BetID         string          `gorm:"column:bet_id;primaryKey;type:uuid;default:uuid_generate_v4()" json:"bet_id"`
	UserID        string          `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	RuleCode      string          `gorm:"column:rule_code;type:varchar(8);not null" json:"rule_code"`
	Region        string          `gorm:"column:region;type:varchar(8);not null" json:"region"`
	Province      string          `gorm:"column:province;type:varchar(50);not null;index:idx_bets_draw" json:"province"`
	Subtype       string          `gorm:"column:subtype;type:varchar(8);not null;default:''" json:"subtype"`
	Numbers       string          `gorm:"column:numbers;type:varchar(512);not null" json:"-"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(20,2);not null" json:"amount"`
	TotalStake    decimal.Decimal `gorm:"column:total_stake;type:numeric(20,2);not null" json:"total_stake"`
	DrawDate      string          `gorm:"column:draw_date;type:varchar(10);not null;index:idx_bets_draw" json:"draw_date"`
	Status        string          `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index" json:"status"`
	WonAmount     decimal.Decimal `gorm:"column:won_amount;type:numeric(20,2);not null;default:0" json:"won_amount"`
	WinningRecord string          `gorm:"column:winning_record;type:varchar(1024);not null;default:''" json:"winning_record,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	SettledAt     *time.Time      `gorm:"column:settled_at" json:"settled_at,omitempty"`
}

func (Bet) TableName() string { return "bets" }

// ChosenNumbers splits the stored comma-joined list.
func (b *Bet) ChosenNumbers() []string {
	if b.Numbers == "" {
		return []string{}
	}
	return strings.Split(b.Numbers, ",")
}

type PlaceBetRequest struct {
	UserID   string          `json:"user_id" validate:"required,uuid4"`
	RuleCode string          `json:"rule_code" validate:"required"`
	Region   string          `json:"region" validate:"required,oneof=M1 M2"`
	Province string          `json:"province" validate:"required"`
	Subtype  string          `json:"subtype"`
	Numbers  []string        `json:"numbers" validate:"required,min=1,dive,numeric"`
	Amount   decimal.Decimal `json:"amount"`
	DrawDate string          `json:"draw_date" validate:"required,datetime=2006-01-02"`
}

func (r *PlaceBetRequest) Validate() error {
	return validate.Struct(r)
}

type StakePreviewRequest struct {
	RuleCode string          `json:"rule_code" validate:"required"`
	Region   string          `json:"region" validate:"required,oneof=M1 M2"`
	Subtype  string          `json:"subtype"`
	Numbers  []string        `json:"numbers" validate:"required,min=1"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *StakePreviewRequest) Validate() error {
	return validate.Struct(r)
}

// SettlementSummary reports one settlement batch run.
type SettlementSummary struct {
	Province  string          `json:"province"`
	DrawDate  string          `json:"draw_date"`
	Settled   int             `json:"settled"`
	Won       int             `json:"won"`
	Lost      int             `json:"lost"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

// SettlementUpdate is pushed to subscribed callers when one of their bets
// settles.
type SettlementUpdate struct {
	BetID     string          `json:"bet_id"`
	UserID    string          `json:"user_id"`
	Status    string          `json:"status"`
	WonAmount decimal.Decimal `json:"won_amount"`
	Timestamp time.Time       `json:"timestamp"`
}
