// Package engine implements the bet settlement core: the stake calculator
// and the result verifier for the nine supported wager types. Everything in
// this package is pure computation — no I/O, no persistence, no mutation of
// inputs — so it is safe to call from any number of goroutines.
package engine

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Region identifies one of the two regional lottery systems. Their draws
// differ in prize-tier count and in which tiers the head-digit wager types
// read.
type Region string

const (
	RegionM1 Region = "M1"
	RegionM2 Region = "M2"
	// RegionBoth is only valid on a Rule, never on a Bet.
	RegionBoth Region = "BOTH"
)

// Wager type codes. Immutable once bets reference them.
const (
	CodeDauDuoi = "dd"  // head/tail, 2 digits
	CodeXiuChu  = "xc"  // head/tail, 3 digits
	CodeBao2    = "b2"  // any-tier tail match, 2 digits
	CodeBao3    = "b3"  // any-tier tail match, 3 digits
	CodeBao4    = "b4"  // any-tier tail match, 4 digits
	CodeBao7Lo  = "b7l" // 7-number tier subset, M1 only
	CodeBao8Lo  = "b8l" // 8-number tier subset, M2 only
	CodeNhatTo  = "nt"  // First-prize tail, M2 only
	CodeXien    = "x"   // all-or-nothing chain, M2 only
	CodeDa      = "da"  // leg match with scenario table, M1 only
)

var (
	ErrUnknownRuleCode = errors.New("unknown wager type code")
	ErrInvalidNumbers  = errors.New("invalid chosen numbers")
	ErrInvalidAmount   = errors.New("unit amount must be positive")
)

// Rule is the wager-type descriptor the engine consumes. It is a projection
// of the persisted rule row: only the fields the calculator and verifier
// read.
type Rule struct {
	Code   string
	Region Region
	// Digits is the required chosen-number length (2, 3 or 4).
	Digits int
	// Rate is the base payout multiplier, used only when the code has no
	// canonical built-in rate.
	Rate decimal.Decimal
	// StakeFormula is an optional arithmetic expression over the inputs
	// "region" and "subtype", consulted only for codes outside the built-in
	// multiplier table.
	StakeFormula string
}

// StakeComputation is the calculator output. TotalStake is what the player
// owes at placement; PotentialWin is a display-time upper bound that assumes
// every chosen number wins independently, which overstates joint types like
// xiên and đá on purpose.
type StakeComputation struct {
	Numbers      []string        `json:"numbers"`
	UnitStake    decimal.Decimal `json:"unit_stake"`
	UnitCount    int             `json:"unit_count"`
	Multiplier   int             `json:"multiplier"`
	TotalStake   decimal.Decimal `json:"total_stake"`
	PotentialWin decimal.Decimal `json:"potential_win"`
	RewardRate   decimal.Decimal `json:"reward_rate"`
}

// BetContext is the slice of a placed bet the verifier needs.
type BetContext struct {
	RuleCode string
	Region   Region
	Subtype  string
	Numbers  []string
	// Amount is the stake per chosen number.
	Amount decimal.Decimal
}

// VerificationResult is the verifier output. WinningNumbers lists each
// matched number annotated with the tier it matched in, e.g. "25 (Đặc Biệt)".
// WinDetails carries wager-type-specific diagnostics for audit display.
type VerificationResult struct {
	IsWin          bool              `json:"is_win"`
	WinningNumbers []string          `json:"winning_numbers"`
	TotalWinAmount decimal.Decimal   `json:"total_win_amount"`
	WinDetails     map[string]string `json:"win_details,omitempty"`
}

func loss() VerificationResult {
	return VerificationResult{
		IsWin:          false,
		WinningNumbers: []string{},
		TotalWinAmount: decimal.Zero,
	}
}
