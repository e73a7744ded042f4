package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Verify settles one bet against one draw. It dispatches on the wager type
// code; every handler is state-free, so batch settlement is a plain loop and
// re-running a verification is harmless as long as the caller applies
// TotalWinAmount only once.
//
// An unrecognized code is a configuration error, not a loss: the rule data
// disagrees with the verifier's known set and the caller must stop and
// surface it. A bet placed for the wrong region is an ordinary loss.
func Verify(bet BetContext, tiers DrawTiers) (VerificationResult, error) {
	switch bet.RuleCode {
	case CodeDauDuoi:
		return verifyHeadTail(bet, tiers, 2, decimal.NewFromInt(75)), nil
	case CodeXiuChu:
		return verifyHeadTail(bet, tiers, 3, decimal.NewFromInt(650)), nil
	case CodeBao2:
		return verifyBaoLo(bet, tiers, 2, decimal.NewFromInt(75)), nil
	case CodeBao3:
		return verifyBaoLo(bet, tiers, 3, decimal.NewFromInt(650)), nil
	case CodeBao4:
		return verifyBaoLo(bet, tiers, 4, decimal.NewFromInt(5500)), nil
	case CodeBao7Lo:
		return verifyBao7Lo(bet, tiers), nil
	case CodeBao8Lo:
		return verifyBao8Lo(bet, tiers), nil
	case CodeNhatTo:
		return verifyNhatTo(bet, tiers), nil
	case CodeXien:
		return verifyXien(bet, tiers), nil
	case CodeDa:
		return verifyDa(bet, tiers), nil
	}
	return VerificationResult{}, fmt.Errorf("%w: %q", ErrUnknownRuleCode, bet.RuleCode)
}

// headTiers returns the tier holding the "đầu" numbers for the head/tail
// wager types. M1 draws put the shortest numbers at the bottom tiers, M2
// draws one tier higher.
func headTiers(region Region, digits int, d DrawTiers) tier {
	if digits == 2 {
		if region == RegionM2 {
			return tier{"Giải Bảy", d.Bay}
		}
		return tier{"Giải Tám", d.Tam}
	}
	if region == RegionM2 {
		return tier{"Giải Sáu", d.Sau}
	}
	return tier{"Giải Bảy", d.Bay}
}

// verifyHeadTail settles Đầu Đuôi (2 digits) and Xỉu Chủ (3 digits). Every
// chosen number is checked against the head tier and the Special-prize tail,
// gated by subtype; each independent match pays the full rate, with no cap
// across numbers.
func verifyHeadTail(bet BetContext, tiers DrawTiers, digits int, rate decimal.Decimal) VerificationResult {
	checkHead := bet.Subtype != "duoi"
	checkTail := bet.Subtype != "dau"

	head := headTiers(bet.Region, digits, tiers)
	special := tailOf(firstOf(tiers.DacBiet), digits)

	res := loss()
	matches := 0
	for _, n := range bet.Numbers {
		if checkHead {
			for _, h := range head.Numbers {
				if tailOf(h, digits) == n {
					res.WinningNumbers = append(res.WinningNumbers, fmt.Sprintf("%s (%s)", n, head.Label))
					matches++
					break
				}
			}
		}
		if checkTail && special != "" && n == special {
			res.WinningNumbers = append(res.WinningNumbers, fmt.Sprintf("%s (Đặc Biệt)", n))
			matches++
		}
	}
	if matches > 0 {
		res.IsWin = true
		res.TotalWinAmount = bet.Amount.Mul(rate).Mul(decimal.NewFromInt(int64(matches)))
	}
	return res
}

// verifyBaoLo settles the bao-lô family: a chosen number wins when it equals
// the n-digit tail of any published number in any tier. The inner scan stops
// at the first match, so a number present in several tiers still pays once.
func verifyBaoLo(bet BetContext, tiers DrawTiers, digits int, rate decimal.Decimal) VerificationResult {
	byTier := tailsOfLength(tiers, digits)

	res := loss()
	wins := 0
	for _, n := range bet.Numbers {
	scan:
		for _, t := range byTier {
			for _, tail := range t.Numbers {
				if tail == n {
					res.WinningNumbers = append(res.WinningNumbers, fmt.Sprintf("%s (%s)", n, t.Label))
					wins++
					break scan
				}
			}
		}
	}
	if wins > 0 {
		res.IsWin = true
		res.TotalWinAmount = bet.Amount.Mul(rate).Mul(decimal.NewFromInt(int64(wins)))
	}
	return res
}

// verifyBao7Lo settles Bao 7 Lô: bao-lô matching restricted to the fixed
// seven-number M1 subset (Eighth, Seventh, the three Sixth entries, the
// first Fifth entry and the Special prize).
func verifyBao7Lo(bet BetContext, tiers DrawTiers) VerificationResult {
	if bet.Region != RegionM1 {
		return loss()
	}
	subset := []tier{
		{"Giải Tám", pick(tiers.Tam, 1)},
		{"Giải Bảy", pick(tiers.Bay, 1)},
		{"Giải Sáu", pick(tiers.Sau, 3)},
		{"Giải Năm", pick(tiers.Nam, 1)},
		{"Đặc Biệt", pick(tiers.DacBiet, 1)},
	}
	return verifySubset(bet, subset, 2, decimal.NewFromInt(75))
}

// verifyBao8Lo settles Bao 8 Lô: the M2 counterpart over eight numbers
// (Special, first Seventh, three Sixth, first Fifth, first Fourth, first
// Third).
func verifyBao8Lo(bet BetContext, tiers DrawTiers) VerificationResult {
	if bet.Region != RegionM2 {
		return loss()
	}
	subset := []tier{
		{"Đặc Biệt", pick(tiers.DacBiet, 1)},
		{"Giải Bảy", pick(tiers.Bay, 1)},
		{"Giải Sáu", pick(tiers.Sau, 3)},
		{"Giải Năm", pick(tiers.Nam, 1)},
		{"Giải Tư", pick(tiers.Tu, 1)},
		{"Giải Ba", pick(tiers.Ba, 1)},
	}
	return verifySubset(bet, subset, 2, decimal.NewFromInt(75))
}

func pick(numbers []string, n int) []string {
	if len(numbers) < n {
		return numbers
	}
	return numbers[:n]
}

func verifySubset(bet BetContext, subset []tier, digits int, rate decimal.Decimal) VerificationResult {
	res := loss()
	wins := 0
	for _, n := range bet.Numbers {
	scan:
		for _, t := range subset {
			for _, num := range t.Numbers {
				if tailOf(num, digits) == n {
					res.WinningNumbers = append(res.WinningNumbers, fmt.Sprintf("%s (%s)", n, t.Label))
					wins++
					break scan
				}
			}
		}
	}
	if wins > 0 {
		res.IsWin = true
		res.TotalWinAmount = bet.Amount.Mul(rate).Mul(decimal.NewFromInt(int64(wins)))
	}
	return res
}

// verifyNhatTo settles Nhất Tố: a single comparison of the chosen 2-digit
// number against the First-prize tail.
func verifyNhatTo(bet BetContext, tiers DrawTiers) VerificationResult {
	if bet.Region != RegionM2 {
		return loss()
	}
	first := firstOf(tiers.Nhat)
	if first == "" {
		return loss()
	}
	target := tailOf(first, 2)

	res := loss()
	wins := 0
	for _, n := range bet.Numbers {
		if n == target {
			res.WinningNumbers = append(res.WinningNumbers, fmt.Sprintf("%s (Giải Nhất)", n))
			wins++
		}
	}
	if wins > 0 {
		res.IsWin = true
		res.TotalWinAmount = bet.Amount.Mul(decimal.NewFromInt(75)).Mul(decimal.NewFromInt(int64(wins)))
	}
	return res
}

// verifyXien settles Xiên: all-or-nothing. The bet wins only when every
// chosen number appears somewhere in the union of 2-digit tails across the
// whole draw, and the subtype rate then applies once to the whole bet.
func verifyXien(bet BetContext, tiers DrawTiers) VerificationResult {
	if bet.Region != RegionM2 {
		return loss()
	}
	counts := tailCounts(tiers, 2)

	matched := make([]string, 0, len(bet.Numbers))
	for _, n := range bet.Numbers {
		if counts[n] == 0 {
			return loss()
		}
		matched = append(matched, n)
	}

	res := loss()
	res.WinningNumbers = matched
	rate := decimal.NewFromInt(75)
	switch bet.Subtype {
	case "x3":
		rate = decimal.NewFromInt(40)
	case "x4":
		rate = decimal.NewFromInt(250)
	}
	res.IsWin = true
	res.TotalWinAmount = bet.Amount.Mul(rate)
	res.WinDetails = map[string]string{"subtype": bet.Subtype}
	return res
}
