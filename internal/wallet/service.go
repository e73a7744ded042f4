package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxRetries = 3
	RetryDelay = 10 * time.Millisecond
)

type Service struct {
	repo WalletRepository
}

func NewService(repo WalletRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetBalance(ctx context.Context, userID string) (*Wallet, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Apply moves `amount` for `userID`, debiting for stakes and crediting for
// everything else. The reference makes the movement idempotent: a replay
// returns the recorded entry without touching the balance. Optimistic-lock
// conflicts are retried a few times before giving up.
func (s *Service) Apply(ctx context.Context, userID, kind string, amount decimal.Decimal, reference string) (*Entry, error) {
	existing, err := s.repo.GetEntryByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	w, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if err == ErrWalletNotFound {
			if kind == EntryStake {
				return nil, ErrInsufficientFunds
			}
			w, err = s.repo.Create(ctx, userID)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	entry := &Entry{
		WalletID:  w.WalletID,
		UserID:    userID,
		Kind:      kind,
		Amount:    amount,
		Reference: reference,
	}

	for i := 0; i < MaxRetries; i++ {
		if kind == EntryStake {
			err = s.repo.Debit(ctx, entry)
		} else {
			err = s.repo.Credit(ctx, entry)
		}
		if err == nil {
			return entry, nil
		}
		if err == ErrOptimisticLock {
			time.Sleep(RetryDelay)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("wallet update kept conflicting: %w", err)
}
