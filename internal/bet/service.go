package bet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lottery_service/internal/draw"
	"lottery_service/internal/engine"
	"lottery_service/internal/rule"
	"lottery_service/internal/wallet"
)

var (
	ErrRuleInactive   = errors.New("rule is not open for new bets")
	ErrRegionMismatch = errors.New("rule does not apply to this region")
)

type Service struct {
	bets    BetRepository
	rules   rule.RuleRepository
	results draw.ResultRepository
	wallets *wallet.Service
	hub     *SettlementHub
}

// SettlementHub fans settlement outcomes out to subscribed callers,
// per user, without ever blocking the settlement loop.
type SettlementHub struct {
	mu          sync.RWMutex
	subscribers map[string][]chan SettlementUpdate
}

func NewSettlementHub() *SettlementHub {
	return &SettlementHub{subscribers: make(map[string][]chan SettlementUpdate)}
}

func (h *SettlementHub) Subscribe(userID string) <-chan SettlementUpdate {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan SettlementUpdate, 10)
	h.subscribers[userID] = append(h.subscribers[userID], ch)
	return ch
}

func (h *SettlementHub) Notify(userID string, update SettlementUpdate) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers[userID] {
		select {
		case ch <- update:
		default:
			// Channel full, skip (don't block)
		}
	}
}

func NewService(bets BetRepository, rules rule.RuleRepository, results draw.ResultRepository, wallets *wallet.Service) *Service {
	return &Service{
		bets:    bets,
		rules:   rules,
		results: results,
		wallets: wallets,
		hub:     NewSettlementHub(),
	}
}

func (s *Service) SubscribeToSettlements(userID string) <-chan SettlementUpdate {
	return s.hub.Subscribe(userID)
}

// PreviewStake runs the calculator without touching any state. Used live by
// the bet form; contract errors come back as-is for field-level display.
// Numbers are padded the same way placement pads them, so the quote and the
// placed bet never disagree.
func (s *Service) PreviewStake(ctx context.Context, req StakePreviewRequest) (engine.StakeComputation, error) {
	if err := req.Validate(); err != nil {
		return engine.StakeComputation{}, err
	}
	r, err := s.rules.GetByCode(ctx, req.RuleCode)
	if err != nil {
		return engine.StakeComputation{}, err
	}
	numbers := padNumbers(req.Numbers, r.Digits)
	return engine.ComputeStake(r.Engine(), numbers, req.Amount, req.Subtype, engine.Region(req.Region))
}

// PlaceBet computes the stake, debits it idempotently (the bet ID is the
// wallet reference) and persists the PENDING bet.
func (s *Service) PlaceBet(ctx context.Context, req PlaceBetRequest) (*Bet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.rules.GetByCode(ctx, req.RuleCode)
	if err != nil {
		return nil, err
	}
	if !r.Active {
		return nil, ErrRuleInactive
	}
	if r.Region != string(engine.RegionBoth) && r.Region != req.Region {
		return nil, ErrRegionMismatch
	}

	numbers := padNumbers(req.Numbers, r.Digits)
	comp, err := engine.ComputeStake(r.Engine(), numbers, req.Amount, req.Subtype, engine.Region(req.Region))
	if err != nil {
		return nil, err
	}

	b := &Bet{
		BetID:      uuid.New().String(),
		UserID:     req.UserID,
		RuleCode:   req.RuleCode,
		Region:     req.Region,
		Province:   req.Province,
		Subtype:    req.Subtype,
		Numbers:    joinNumbers(numbers),
		Amount:     req.Amount,
		TotalStake: comp.TotalStake,
		DrawDate:   req.DrawDate,
		Status:     StatusPending,
		WonAmount:  decimal.Zero,
		CreatedAt:  time.Now(),
	}

	if _, err := s.wallets.Apply(ctx, req.UserID, wallet.EntryStake, comp.TotalStake, b.BetID); err != nil {
		return nil, err
	}
	if err := s.bets.Create(ctx, b); err != nil {
		// The stake entry stays journaled under the bet ID; a retry with a
		// fresh ID would double-charge, so surface the failure.
		return nil, fmt.Errorf("persisting bet after stake debit: %w", err)
	}

	slog.Info("bet placed", "bet_id", b.BetID, "user_id", b.UserID,
		"rule", b.RuleCode, "stake", comp.TotalStake.String())
	return b, nil
}

func (s *Service) GetBet(ctx context.Context, betID string) (*Bet, error) {
	return s.bets.Get(ctx, betID)
}

// CancelBet refunds a pending bet, allowed only while no draw result exists
// for its (draw_date, province). Cancelling an already-cancelled bet is a
// no-op that re-attempts the refund, so a failure between the status flip
// and the wallet credit is healed by retrying.
func (s *Service) CancelBet(ctx context.Context, betID string) (*Bet, error) {
	b, err := s.bets.Get(ctx, betID)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		if _, err := s.wallets.Apply(ctx, b.UserID, wallet.EntryRefund, b.TotalStake, b.BetID+":refund"); err != nil {
			return nil, err
		}
		return b, nil
	}
	if b.Status != StatusPending {
		return nil, ErrBetNotPending
	}
	if _, err := s.results.Get(ctx, b.Province, b.DrawDate); err == nil {
		return nil, fmt.Errorf("draw result already published: %w", ErrBetNotPending)
	} else if !errors.Is(err, draw.ErrResultNotAvailable) {
		return nil, err
	}

	cancelled, err := s.bets.Cancel(ctx, betID)
	if err != nil {
		return nil, err
	}
	if cancelled {
		if _, err := s.wallets.Apply(ctx, b.UserID, wallet.EntryRefund, b.TotalStake, b.BetID+":refund"); err != nil {
			return nil, err
		}
		slog.Info("bet cancelled", "bet_id", betID)
	}
	return s.bets.Get(ctx, betID)
}

// PublishResult upserts a draw result. Corrections are rejected once any bet
// has been verified against the draw; there is no re-settlement path.
func (s *Service) PublishResult(ctx context.Context, result *draw.Result) error {
	settled, err := s.bets.HasSettled(ctx, result.Province, result.DrawDate)
	if err != nil {
		return err
	}
	if settled {
		return ErrAlreadyVerified
	}
	return s.results.Upsert(ctx, result)
}

// SettleDraw verifies every pending bet of one draw. The status guard on the
// update makes the whole batch idempotent: a re-run finds either no pending
// bets or loses the PENDING race and pays nothing twice. An unknown wager
// type aborts the batch — that is rule data out of sync with the verifier,
// not a losing bet.
func (s *Service) SettleDraw(ctx context.Context, province string, drawDate string) (*SettlementSummary, error) {
	result, err := s.results.Get(ctx, province, drawDate)
	if err != nil {
		return nil, err
	}
	tiers := result.Tiers()

	bets, err := s.bets.ListPending(ctx, province, drawDate)
	if err != nil {
		return nil, err
	}

	summary := &SettlementSummary{
		Province:  province,
		DrawDate:  drawDate,
		TotalPaid: decimal.Zero,
	}
	for i := range bets {
		b := &bets[i]
		outcome, err := engine.Verify(engine.BetContext{
			RuleCode: b.RuleCode,
			Region:   engine.Region(b.Region),
			Subtype:  b.Subtype,
			Numbers:  b.ChosenNumbers(),
			Amount:   b.Amount,
		}, tiers)
		if err != nil {
			return nil, fmt.Errorf("settling bet %s: %w", b.BetID, err)
		}

		// Pay before flipping the status. The payout reference makes a
		// duplicate Apply a no-op, so a failure anywhere in between leaves
		// the bet PENDING and a re-run of the batch heals it; the reverse
		// order would strand a WON bet that was never paid.
		status := StatusLost
		if outcome.IsWin {
			status = StatusWon
			if _, err := s.wallets.Apply(ctx, b.UserID, wallet.EntryPayout, outcome.TotalWinAmount, b.BetID+":win"); err != nil {
				return nil, fmt.Errorf("paying bet %s: %w", b.BetID, err)
			}
		}
		settled, err := s.bets.Settle(ctx, b.BetID, status, outcome.TotalWinAmount, joinNumbers(outcome.WinningNumbers))
		if err != nil {
			return nil, err
		}
		if !settled {
			continue
		}
		if outcome.IsWin {
			summary.Won++
			summary.TotalPaid = summary.TotalPaid.Add(outcome.TotalWinAmount)
		} else {
			summary.Lost++
		}
		summary.Settled++

		s.hub.Notify(b.UserID, SettlementUpdate{
			BetID:     b.BetID,
			UserID:    b.UserID,
			Status:    status,
			WonAmount: outcome.TotalWinAmount,
			Timestamp: time.Now(),
		})
	}

	slog.Info("draw settled", "province", province, "draw_date", drawDate,
		"settled", summary.Settled, "won", summary.Won, "paid", summary.TotalPaid.String())
	return summary, nil
}
