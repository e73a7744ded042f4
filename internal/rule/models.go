package rule

import (
	"time"

	"github.com/shopspring/decimal"

	"lottery_service/internal/engine"
)

// Rule describes one wager type. The code is immutable once bets reference
// it; deactivation is a soft delete so historical bets keep settling against
// the rule they were placed under.
type Rule struct {
	RuleID       string          `gorm:"column:rule_id;primaryKey;type:uuid;default:uuid_generate_v4()" json:"rule_id"`
	Code         string          `gorm:"column:code;type:varchar(8);not null;unique" json:"code"`
	Name         string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Region       string          `gorm:"column:region;type:varchar(8);not null" json:"region"` // "M1", "M2", "BOTH"
	Digits       int             `gorm:"column:digits;not null" json:"digits"`
	Rate         decimal.Decimal `gorm:"column:rate;type:numeric(12,4);not null;default:0" json:"rate"`
	StakeFormula string          `gorm:"column:stake_formula;type:varchar(255)" json:"stake_formula,omitempty"`
	Active       bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt    time.Time       `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`

	Variants []Variant `gorm:"foreignKey:RuleID;references:RuleID" json:"variants,omitempty"`
}

func (Rule) TableName() string { return "rules" }

// Variant is one subtype of a wager type, e.g. "dau"/"duoi" under Đầu Đuôi
// or "da2".."da5" under Đá. Ordering is the display order of the bet form.
type Variant struct {
	VariantID string          `gorm:"column:variant_id;primaryKey;type:uuid;default:uuid_generate_v4()" json:"variant_id"`
	RuleID    string          `gorm:"column:rule_id;type:uuid;not null;index" json:"rule_id"`
	Code      string          `gorm:"column:code;type:varchar(8);not null" json:"code"`
	Name      string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Ordering  int             `gorm:"column:ordering;not null;default:0" json:"ordering"`
	M1Stake   int             `gorm:"column:m1_stake;not null;default:1" json:"m1_stake"`
	M2Stake   int             `gorm:"column:m2_stake;not null;default:1" json:"m2_stake"`
	BaseRate  decimal.Decimal `gorm:"column:base_rate;type:numeric(12,4);not null;default:0" json:"base_rate"`
}

func (Variant) TableName() string { return "rule_variants" }

// Engine projects the persisted row onto the slice the settlement engine
// reads.
func (r *Rule) Engine() engine.Rule {
	return engine.Rule{
		Code:         r.Code,
		Region:       engine.Region(r.Region),
		Digits:       r.Digits,
		Rate:         r.Rate,
		StakeFormula: r.StakeFormula,
	}
}
