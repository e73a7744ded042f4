package engine

import (
	"log/slog"
	"math"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"
)

// stakeMultiplier resolves how many draw positions one unit stake covers for
// a wager type, as a closed-form case analysis on (region, subtype). This is
// a lookup, not a formula engine: each code's rule is small and fixed.
func stakeMultiplier(code string, region Region, subtype string) (int, bool) {
	switch code {
	case CodeDauDuoi:
		if region == RegionM2 {
			switch subtype {
			case "dd":
				return 5, true
			case "dau":
				return 4, true
			}
			return 1, true
		}
		if subtype == "dd" {
			return 2, true
		}
		return 1, true
	case CodeXiuChu:
		if region == RegionM2 {
			switch subtype {
			case "xc":
				return 4, true
			case "dau":
				return 3, true
			}
			return 1, true
		}
		if subtype == "xc" {
			return 2, true
		}
		return 1, true
	case CodeBao2:
		if region == RegionM2 {
			return 27, true
		}
		return 18, true
	case CodeBao3:
		if region == RegionM2 {
			return 23, true
		}
		return 17, true
	case CodeBao4:
		if region == RegionM2 {
			return 20, true
		}
		return 16, true
	case CodeBao7Lo:
		return 7, true
	case CodeBao8Lo:
		return 8, true
	case CodeNhatTo:
		return 1, true
	case CodeXien:
		return 27, true
	case CodeDa:
		switch subtype {
		case "da2":
			return 1, true
		case "da3":
			return 3, true
		case "da4":
			return 6, true
		case "da5":
			return 10, true
		}
		return 1, true
	}
	return 0, false
}

// rewardRate resolves the canonical payout rate for the built-in wager
// types, overriding the rule's configured base rate. For đá these are base
// rates only: the actual payout is scenario-dependent and owned by the
// verifier.
func rewardRate(rule Rule, subtype string) decimal.Decimal {
	switch rule.Code {
	case CodeDauDuoi, CodeBao2, CodeBao7Lo, CodeBao8Lo, CodeNhatTo:
		return decimal.NewFromInt(75)
	case CodeXiuChu, CodeBao3:
		return decimal.NewFromInt(650)
	case CodeBao4:
		return decimal.NewFromInt(5500)
	case CodeXien:
		switch subtype {
		case "x3":
			return decimal.NewFromInt(40)
		case "x4":
			return decimal.NewFromInt(250)
		}
		return decimal.NewFromInt(75)
	case CodeDa:
		switch subtype {
		case "da3":
			return decimal.NewFromFloat(37.5)
		case "da4":
			return decimal.NewFromInt(250)
		case "da5":
			return decimal.NewFromInt(1250)
		}
		return decimal.NewFromFloat(12.5)
	}
	return rule.Rate
}

// evalStakeFormula evaluates a configured fallback expression with only the
// two named inputs bound. Anything that goes wrong — parse error, non-numeric
// result, reference to an unknown name — degrades to multiplier 1 with a
// warning rather than interrupting the caller.
func evalStakeFormula(formula string, region Region, subtype string) int {
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		slog.Warn("stake formula parse failed", "formula", formula, "error", err)
		return 1
	}
	result, err := expr.Evaluate(map[string]interface{}{
		"region":  string(region),
		"subtype": subtype,
	})
	if err != nil {
		slog.Warn("stake formula evaluation failed", "formula", formula, "error", err)
		return 1
	}
	f, ok := result.(float64)
	if !ok || f < 1 || f != math.Trunc(f) {
		slog.Warn("stake formula returned non-numeric, sub-unit or fractional result", "formula", formula)
		return 1
	}
	return int(f)
}

// ComputeStake computes the total stake owed for a set of chosen numbers and
// a display-time potential win. It is used live during bet-form editing, so
// it never errors for well-formed input; malformed input gets a contract
// error before any computation.
func ComputeStake(rule Rule, numbers []string, unitAmount decimal.Decimal, subtype string, region Region) (StakeComputation, error) {
	if err := ValidateNumbers(numbers, rule.Digits); err != nil {
		return StakeComputation{}, err
	}
	if !unitAmount.IsPositive() {
		return StakeComputation{}, ErrInvalidAmount
	}

	multiplier, known := stakeMultiplier(rule.Code, region, subtype)
	if !known {
		if rule.StakeFormula != "" {
			multiplier = evalStakeFormula(rule.StakeFormula, region, subtype)
		} else {
			// Permissive default for unrecognized codes without a formula.
			slog.Warn("no stake rule for wager type, defaulting multiplier to 1", "code", rule.Code)
			multiplier = 1
		}
	}

	rate := rewardRate(rule, subtype)
	unitCount := int64(len(numbers))
	total := unitAmount.Mul(decimal.NewFromInt(unitCount)).Mul(decimal.NewFromInt(int64(multiplier)))
	potential := unitAmount.Mul(rate).Mul(decimal.NewFromInt(unitCount))

	out := StakeComputation{
		Numbers:      append([]string(nil), numbers...),
		UnitStake:    unitAmount,
		UnitCount:    int(unitCount),
		Multiplier:   multiplier,
		TotalStake:   total,
		PotentialWin: potential,
		RewardRate:   rate,
	}
	return out, nil
}
