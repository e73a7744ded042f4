package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrOptimisticLock    = errors.New("optimistic lock error")
)

type WalletRepository interface {
	GetByUser(ctx context.Context, userID string) (*Wallet, error)
	GetEntryByReference(ctx context.Context, reference string) (*Entry, error)
	Create(ctx context.Context, userID string) (*Wallet, error)
	Credit(ctx context.Context, entry *Entry) error
	Debit(ctx context.Context, entry *Entry) error
}

type WalletRepositoryImpl struct {
	db *gorm.DB
}

func NewWalletRepositoryImpl(db *gorm.DB) WalletRepository {
	return &WalletRepositoryImpl{db: db}
}

func (r *WalletRepositoryImpl) GetByUser(ctx context.Context, userID string) (*Wallet, error) {
	var w Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepositoryImpl) GetEntryByReference(ctx context.Context, reference string) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *WalletRepositoryImpl) Create(ctx context.Context, userID string) (*Wallet, error) {
	w := Wallet{
		WalletID: uuid.New().String(),
		UserID:   userID,
	}
	if err := r.db.WithContext(ctx).Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// apply moves money inside one DB transaction with an optimistic-lock
// version check. debit guards the balance; credit never fails on amount.
func (r *WalletRepositoryImpl) apply(ctx context.Context, entry *Entry, debit bool) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var w Wallet
		if err := dbtx.Where("wallet_id = ?", entry.WalletID).First(&w).Error; err != nil {
			return err
		}

		newBalance := w.Balance.Add(entry.Amount)
		if debit {
			if w.Balance.LessThan(entry.Amount) {
				return ErrInsufficientFunds
			}
			newBalance = w.Balance.Sub(entry.Amount)
		}

		result := dbtx.Model(&Wallet{}).Where("wallet_id = ? AND version = ?", w.WalletID, w.Version).
			Updates(map[string]interface{}{
				"balance":    newBalance,
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOptimisticLock
		}

		entry.EntryID = uuid.New().String()
		entry.UserID = w.UserID
		entry.BalanceBefore = w.Balance
		entry.BalanceAfter = newBalance
		entry.CreatedAt = time.Now()

		return dbtx.Create(entry).Error
	})
}

func (r *WalletRepositoryImpl) Credit(ctx context.Context, entry *Entry) error {
	return r.apply(ctx, entry, false)
}

func (r *WalletRepositoryImpl) Debit(ctx context.Context, entry *Entry) error {
	return r.apply(ctx, entry, true)
}
