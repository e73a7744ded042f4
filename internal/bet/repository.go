package bet

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBetNotFound     = errors.New("bet not found")
	ErrBetNotPending   = errors.New("bet is not pending")
	ErrAlreadyVerified = errors.New("bets already verified against this draw")
)

type BetRepository interface {
	Get(ctx context.Context, betID string) (*Bet, error)
	Create(ctx context.Context, b *Bet) error
	ListPending(ctx context.Context, province string, drawDate string) ([]Bet, error)
	// Settle transitions PENDING -> WON/LOST. The status guard in the WHERE
	// clause makes re-settlement a no-op: zero rows affected means another
	// run already did it.
	Settle(ctx context.Context, betID string, status string, wonAmount decimal.Decimal, record string) (bool, error)
	Cancel(ctx context.Context, betID string) (bool, error)
	HasSettled(ctx context.Context, province string, drawDate string) (bool, error)
}

type BetRepositoryImpl struct {
	db *gorm.DB
}

func NewBetRepositoryImpl(db *gorm.DB) BetRepository {
	return &BetRepositoryImpl{db: db}
}

func (r *BetRepositoryImpl) Get(ctx context.Context, betID string) (*Bet, error) {
	var b Bet
	err := r.db.WithContext(ctx).Where("bet_id = ?", betID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBetNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BetRepositoryImpl) Create(ctx context.Context, b *Bet) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BetRepositoryImpl) ListPending(ctx context.Context, province string, drawDate string) ([]Bet, error) {
	var bets []Bet
	err := r.db.WithContext(ctx).
		Where("province = ? AND draw_date = ? AND status = ?", province, drawDate, StatusPending).
		Order("created_at").
		Find(&bets).Error
	if err != nil {
		return nil, err
	}
	return bets, nil
}

func (r *BetRepositoryImpl) Settle(ctx context.Context, betID string, status string, wonAmount decimal.Decimal, record string) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&Bet{}).
		Where("bet_id = ? AND status = ?", betID, StatusPending).
		Updates(map[string]interface{}{
			"status":         status,
			"won_amount":     wonAmount,
			"winning_record": record,
			"settled_at":     now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *BetRepositoryImpl) Cancel(ctx context.Context, betID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&Bet{}).
		Where("bet_id = ? AND status = ?", betID, StatusPending).
		Update("status", StatusCancelled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasSettled reports whether any bet for the draw has already left PENDING
// through verification. Guards result corrections.
func (r *BetRepositoryImpl) HasSettled(ctx context.Context, province string, drawDate string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Bet{}).
		Where("province = ? AND draw_date = ? AND status IN ?", province, drawDate,
			[]string{StatusWon, StatusLost, StatusVerified}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
