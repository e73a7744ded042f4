package draw

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrResultNotAvailable marks the recoverable "draw not published yet"
// condition. Callers must not conflate it with a lost bet.
var ErrResultNotAvailable = errors.New("draw result not available")

type ResultRepository interface {
	Get(ctx context.Context, province string, drawDate string) (*Result, error)
	Upsert(ctx context.Context, result *Result) error
}

type ResultRepositoryImpl struct {
	db *gorm.DB
}

func NewResultRepositoryImpl(db *gorm.DB) ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

func (r *ResultRepositoryImpl) Get(ctx context.Context, province string, drawDate string) (*Result, error) {
	var res Result
	err := r.db.WithContext(ctx).Where("province = ? AND draw_date = ?", province, drawDate).First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotAvailable
		}
		return nil, err
	}
	return &res, nil
}

// Upsert publishes or corrects a result. Correction is only legitimate
// before any bet has been verified against the draw; that guard lives with
// the caller, which can see the bet table.
func (r *ResultRepositoryImpl) Upsert(ctx context.Context, result *Result) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "province"}, {Name: "draw_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"region", "giai_dac_biet", "giai_nhat", "giai_nhi", "giai_ba",
			"giai_tu", "giai_nam", "giai_sau", "giai_bay", "giai_tam", "updated_at",
		}),
	}).Create(result).Error
}
