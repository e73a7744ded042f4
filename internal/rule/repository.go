package rule

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRuleNotFound = errors.New("rule not found")

type RuleRepository interface {
	GetByCode(ctx context.Context, code string) (*Rule, error)
	ListActive(ctx context.Context) ([]Rule, error)
	Upsert(ctx context.Context, r *Rule) error
}

type RuleRepositoryImpl struct {
	db *gorm.DB
}

func NewRuleRepositoryImpl(db *gorm.DB) RuleRepository {
	return &RuleRepositoryImpl{db: db}
}

// GetByCode returns the rule regardless of its active flag: inactive rules
// are hidden from new bets but must stay resolvable for settling historical
// ones.
func (r *RuleRepositoryImpl) GetByCode(ctx context.Context, code string) (*Rule, error) {
	var rule Rule
	err := r.db.WithContext(ctx).Preload("Variants").Where("code = ?", code).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepositoryImpl) ListActive(ctx context.Context) ([]Rule, error) {
	var rules []Rule
	err := r.db.WithContext(ctx).Preload("Variants").Where("active = ?", true).Order("code").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RuleRepositoryImpl) Upsert(ctx context.Context, rule *Rule) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "region", "digits", "rate", "stake_formula", "active", "updated_at",
		}),
	}).Create(rule).Error
}
