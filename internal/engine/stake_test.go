package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mkRule(code string, digits int) Rule {
	return Rule{Code: code, Region: RegionBoth, Digits: digits}
}

func numbersFor(digits, count int) []string {
	base := []string{"12", "34", "56", "78", "90"}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := base[i%len(base)]
		for len(n) < digits {
			n = "0" + n
		}
		out = append(out, n)
	}
	return out
}

func TestStakeMultiplierTable(t *testing.T) {
	cases := []struct {
		code       string
		digits     int
		region     Region
		subtype    string
		multiplier int
	}{
		{CodeDauDuoi, 2, RegionM1, "dd", 2},
		{CodeDauDuoi, 2, RegionM1, "dau", 1},
		{CodeDauDuoi, 2, RegionM1, "duoi", 1},
		{CodeDauDuoi, 2, RegionM2, "dd", 5},
		{CodeDauDuoi, 2, RegionM2, "dau", 4},
		{CodeDauDuoi, 2, RegionM2, "duoi", 1},
		{CodeXiuChu, 3, RegionM1, "xc", 2},
		{CodeXiuChu, 3, RegionM1, "dau", 1},
		{CodeXiuChu, 3, RegionM1, "duoi", 1},
		{CodeXiuChu, 3, RegionM2, "xc", 4},
		{CodeXiuChu, 3, RegionM2, "dau", 3},
		{CodeXiuChu, 3, RegionM2, "duoi", 1},
		{CodeBao2, 2, RegionM1, "", 18},
		{CodeBao2, 2, RegionM2, "", 27},
		{CodeBao3, 3, RegionM1, "", 17},
		{CodeBao3, 3, RegionM2, "", 23},
		{CodeBao4, 4, RegionM1, "", 16},
		{CodeBao4, 4, RegionM2, "", 20},
		{CodeBao7Lo, 2, RegionM1, "", 7},
		{CodeBao8Lo, 2, RegionM2, "", 8},
		{CodeNhatTo, 2, RegionM2, "", 1},
		{CodeXien, 2, RegionM2, "x2", 27},
		{CodeXien, 2, RegionM2, "x3", 27},
		{CodeDa, 2, RegionM1, "da2", 1},
		{CodeDa, 2, RegionM1, "da3", 3},
		{CodeDa, 2, RegionM1, "da4", 6},
		{CodeDa, 2, RegionM1, "da5", 10},
	}

	unit := decimal.NewFromInt(1000)
	for _, tc := range cases {
		t.Run(tc.code+"/"+string(tc.region)+"/"+tc.subtype, func(t *testing.T) {
			numbers := numbersFor(tc.digits, 2)
			comp, err := ComputeStake(mkRule(tc.code, tc.digits), numbers, unit, tc.subtype, tc.region)
			require.NoError(t, err)
			require.Equal(t, tc.multiplier, comp.Multiplier)

			expected := unit.Mul(decimal.NewFromInt(int64(len(numbers)))).Mul(decimal.NewFromInt(int64(tc.multiplier)))
			require.True(t, comp.TotalStake.Equal(expected),
				"totalStake = %s, want %s", comp.TotalStake, expected)
		})
	}
}

func TestRewardRates(t *testing.T) {
	cases := []struct {
		code    string
		digits  int
		subtype string
		rate    decimal.Decimal
	}{
		{CodeDauDuoi, 2, "dd", decimal.NewFromInt(75)},
		{CodeXiuChu, 3, "xc", decimal.NewFromInt(650)},
		{CodeBao2, 2, "", decimal.NewFromInt(75)},
		{CodeBao3, 3, "", decimal.NewFromInt(650)},
		{CodeBao4, 4, "", decimal.NewFromInt(5500)},
		{CodeBao7Lo, 2, "", decimal.NewFromInt(75)},
		{CodeBao8Lo, 2, "", decimal.NewFromInt(75)},
		{CodeNhatTo, 2, "", decimal.NewFromInt(75)},
		{CodeXien, 2, "x2", decimal.NewFromInt(75)},
		{CodeXien, 2, "x3", decimal.NewFromInt(40)},
		{CodeXien, 2, "x4", decimal.NewFromInt(250)},
		{CodeDa, 2, "da2", decimal.NewFromFloat(12.5)},
		{CodeDa, 2, "da3", decimal.NewFromFloat(37.5)},
		{CodeDa, 2, "da4", decimal.NewFromInt(250)},
		{CodeDa, 2, "da5", decimal.NewFromInt(1250)},
	}

	unit := decimal.NewFromInt(2000)
	for _, tc := range cases {
		t.Run(tc.code+"/"+tc.subtype, func(t *testing.T) {
			numbers := numbersFor(tc.digits, 1)
			comp, err := ComputeStake(mkRule(tc.code, tc.digits), numbers, unit, tc.subtype, RegionM1)
			require.NoError(t, err)
			require.True(t, comp.RewardRate.Equal(tc.rate), "rate = %s, want %s", comp.RewardRate, tc.rate)
			require.True(t, comp.PotentialWin.Equal(unit.Mul(tc.rate)))
		})
	}
}

// One 2-digit number at 5000/unit in M1 covers 18 draw positions.
func TestBao2StakeExample(t *testing.T) {
	comp, err := ComputeStake(mkRule(CodeBao2, 2), []string{"07"}, decimal.NewFromInt(5000), "", RegionM1)
	require.NoError(t, err)
	require.True(t, comp.TotalStake.Equal(decimal.NewFromInt(90000)))
	require.True(t, comp.PotentialWin.Equal(decimal.NewFromInt(375000)))
}

func TestComputeStakeIsPure(t *testing.T) {
	numbers := []string{"12", "34", "56"}
	unit := decimal.NewFromInt(10000)

	first, err := ComputeStake(mkRule(CodeDa, 2), numbers, unit, "da3", RegionM1)
	require.NoError(t, err)
	second, err := ComputeStake(mkRule(CodeDa, 2), numbers, unit, "da3", RegionM1)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Inputs stay untouched.
	require.Equal(t, []string{"12", "34", "56"}, numbers)
}

func TestComputeStakeRejectsBadInput(t *testing.T) {
	unit := decimal.NewFromInt(1000)

	_, err := ComputeStake(mkRule(CodeBao2, 2), nil, unit, "", RegionM1)
	require.ErrorIs(t, err, ErrInvalidNumbers)

	_, err = ComputeStake(mkRule(CodeBao2, 2), []string{"123"}, unit, "", RegionM1)
	require.ErrorIs(t, err, ErrInvalidNumbers)

	_, err = ComputeStake(mkRule(CodeBao2, 2), []string{"1a"}, unit, "", RegionM1)
	require.ErrorIs(t, err, ErrInvalidNumbers)

	_, err = ComputeStake(mkRule(CodeBao2, 2), []string{"12"}, decimal.Zero, "", RegionM1)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestStakeFormulaFallback(t *testing.T) {
	unit := decimal.NewFromInt(1000)

	custom := Rule{Code: "zz", Region: RegionBoth, Digits: 2,
		StakeFormula: "region == 'M1' ? 2 : 3"}

	comp, err := ComputeStake(custom, []string{"12"}, unit, "", RegionM1)
	require.NoError(t, err)
	require.Equal(t, 2, comp.Multiplier)

	comp, err = ComputeStake(custom, []string{"12"}, unit, "", RegionM2)
	require.NoError(t, err)
	require.Equal(t, 3, comp.Multiplier)

	// A broken formula degrades to 1 rather than failing the caller.
	broken := Rule{Code: "zz", Region: RegionBoth, Digits: 2, StakeFormula: "region +"}
	comp, err = ComputeStake(broken, []string{"12"}, unit, "", RegionM1)
	require.NoError(t, err)
	require.Equal(t, 1, comp.Multiplier)

	// A fractional result is a misconfigured rule, not a licence to
	// truncate the stake: it degrades to 1 like any other bad result.
	fractional := Rule{Code: "zz", Region: RegionBoth, Digits: 2,
		StakeFormula: "region == 'M1' ? 2.9 : 3"}
	comp, err = ComputeStake(fractional, []string{"12"}, unit, "", RegionM1)
	require.NoError(t, err)
	require.Equal(t, 1, comp.Multiplier)
	comp, err = ComputeStake(fractional, []string{"12"}, unit, "", RegionM2)
	require.NoError(t, err)
	require.Equal(t, 3, comp.Multiplier)

	// No formula at all: permissive default.
	comp, err = ComputeStake(Rule{Code: "zz", Region: RegionBoth, Digits: 2}, []string{"12"}, unit, "", RegionM1)
	require.NoError(t, err)
	require.Equal(t, 1, comp.Multiplier)
}
