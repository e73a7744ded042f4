package engine

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Đá settles on two observations over the draw's 2-digit tail multiset:
// how many distinct chosen numbers appear at all (matchCount), and the
// highest repeat count among the matched numbers (maxRepeat). Each subtype
// has its own priority-ordered scenario table; the first row whose
// thresholds are met classifies the outcome. This is deliberately a literal
// decision table, not a formula.

type daScenario struct {
	Name string
	// MinMatches is the required number of distinct matched chosen numbers.
	MinMatches int
	// MinRepeat is the required repeat count of at least one matched number
	// (1 means presence is enough).
	MinRepeat int
	// MaxRepeat bounds the repeat count from above, 0 meaning unbounded.
	// Used where a table row pays for "exactly 2 occurrences".
	MaxRepeat int
	Rate      decimal.Decimal
}

// daTables maps subtype to its scenario rows, ordered most-specific-first.
// Rows below a matching row never apply: the scenarios are mutually
// exclusive by construction.
var daTables = map[string][]daScenario{
	"da2": {
		{Name: "2-match-repeat", MinMatches: 2, MinRepeat: 2, Rate: decimal.NewFromInt(25)},
		{Name: "2-match", MinMatches: 2, MinRepeat: 1, Rate: decimal.NewFromFloat(12.5)},
	},
	"da3": {
		{Name: "3-match-triple", MinMatches: 3, MinRepeat: 3, Rate: decimal.NewFromFloat(112.5)},
		{Name: "3-match-double", MinMatches: 3, MinRepeat: 2, MaxRepeat: 2, Rate: decimal.NewFromInt(75)},
		{Name: "3-match", MinMatches: 3, MinRepeat: 1, Rate: decimal.NewFromFloat(37.5)},
		{Name: "2-match-repeat", MinMatches: 2, MinRepeat: 2, Rate: decimal.NewFromFloat(43.75)},
		{Name: "2-match", MinMatches: 2, MinRepeat: 1, Rate: decimal.NewFromInt(25)},
	},
	"da4": {
		{Name: "4-match-repeat", MinMatches: 4, MinRepeat: 2, Rate: decimal.NewFromInt(500)},
		{Name: "4-match", MinMatches: 4, MinRepeat: 1, Rate: decimal.NewFromInt(250)},
		{Name: "3-match", MinMatches: 3, MinRepeat: 1, Rate: decimal.NewFromInt(125)},
	},
	"da5": {
		{Name: "5-match-repeat", MinMatches: 5, MinRepeat: 2, Rate: decimal.NewFromInt(2500)},
		{Name: "5-match", MinMatches: 5, MinRepeat: 1, Rate: decimal.NewFromInt(1250)},
		{Name: "4-match", MinMatches: 4, MinRepeat: 1, Rate: decimal.NewFromInt(625)},
	},
}

// verifyDa settles a Đá bet. The payout rate applies once to the whole bet,
// never per number.
func verifyDa(bet BetContext, tiers DrawTiers) VerificationResult {
	if bet.Region != RegionM1 {
		return loss()
	}
	table, ok := daTables[bet.Subtype]
	if !ok {
		// Unknown subtype behaves like an unmatched bet rather than a
		// configuration error: the rule code itself is valid.
		return loss()
	}

	counts := tailCounts(tiers, 2)

	matched := make([]string, 0, len(bet.Numbers))
	maxRepeat := 0
	for _, n := range bet.Numbers {
		c := counts[n]
		if c == 0 {
			continue
		}
		matched = append(matched, fmt.Sprintf("%s (×%d)", n, c))
		if c > maxRepeat {
			maxRepeat = c
		}
	}

	for _, sc := range table {
		if len(matched) < sc.MinMatches {
			continue
		}
		if maxRepeat < sc.MinRepeat {
			continue
		}
		if sc.MaxRepeat > 0 && maxRepeat > sc.MaxRepeat {
			continue
		}
		res := loss()
		res.IsWin = true
		res.WinningNumbers = matched
		res.TotalWinAmount = bet.Amount.Mul(sc.Rate)
		res.WinDetails = map[string]string{
			"scenario":    sc.Name,
			"match_count": strconv.Itoa(len(matched)),
			"max_repeat":  strconv.Itoa(maxRepeat),
		}
		return res
	}
	return loss()
}
