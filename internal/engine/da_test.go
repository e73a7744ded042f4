package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// tiersWithTails builds an M1-shaped draw whose 2-digit tail multiset is
// exactly the given list (repeats included), spread across a few tiers.
func tiersWithTails(tails ...string) DrawTiers {
	buckets := make([][]string, 4)
	for i, tail := range tails {
		buckets[i%4] = append(buckets[i%4], "99"+tail)
	}
	return DrawTiers{
		DacBiet: buckets[0],
		Nhat:    buckets[1],
		Tu:      buckets[2],
		Nam:     buckets[3],
	}
}

func daBet(subtype string, amount int64, numbers ...string) BetContext {
	return betFor(CodeDa, RegionM1, subtype, amount, numbers...)
}

// All three legs present, one of them three times: the top da3 scenario.
func TestDa3TripleScenario(t *testing.T) {
	tiers := tiersWithTails("11", "22", "33", "33", "33")

	res, err := Verify(daBet("da3", 1000, "11", "22", "33"), tiers)
	require.NoError(t, err)
	require.True(t, res.IsWin)
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromFloat(112500)))
	require.Equal(t, "3-match-triple", res.WinDetails["scenario"])
	require.Equal(t, "3", res.WinDetails["match_count"])
	require.Equal(t, "3", res.WinDetails["max_repeat"])
}

func TestDa3Scenarios(t *testing.T) {
	cases := []struct {
		name     string
		tails    []string
		scenario string
		rate     float64
	}{
		{"double", []string{"11", "22", "33", "33"}, "3-match-double", 75},
		{"plain", []string{"11", "22", "33"}, "3-match", 37.5},
		{"two-with-repeat", []string{"11", "22", "22"}, "2-match-repeat", 43.75},
		{"two-plain", []string{"11", "22"}, "2-match", 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Verify(daBet("da3", 1000, "11", "22", "33"), tiersWithTails(tc.tails...))
			require.NoError(t, err)
			require.True(t, res.IsWin)
			require.Equal(t, tc.scenario, res.WinDetails["scenario"])
			require.True(t, res.TotalWinAmount.Equal(decimal.NewFromFloat(tc.rate*1000)),
				"win = %s, want %v", res.TotalWinAmount, tc.rate*1000)
		})
	}
}

func TestDa3BelowThresholdLoses(t *testing.T) {
	// A single matched leg is below every da3 row, repeats or not.
	res, err := Verify(daBet("da3", 1000, "11", "22", "33"), tiersWithTails("11", "11", "11"))
	require.NoError(t, err)
	require.False(t, res.IsWin)
	require.True(t, res.TotalWinAmount.IsZero())
}

func TestDa2Scenarios(t *testing.T) {
	res, err := Verify(daBet("da2", 1000, "11", "22"), tiersWithTails("11", "22"))
	require.NoError(t, err)
	require.True(t, res.IsWin)
	require.Equal(t, "2-match", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromFloat(12500)))

	res, err = Verify(daBet("da2", 1000, "11", "22"), tiersWithTails("11", "22", "22"))
	require.NoError(t, err)
	require.True(t, res.IsWin)
	require.Equal(t, "2-match-repeat", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromInt(25000)))

	res, err = Verify(daBet("da2", 1000, "11", "22"), tiersWithTails("11"))
	require.NoError(t, err)
	require.False(t, res.IsWin)
}

func TestDa4Scenarios(t *testing.T) {
	numbers := []string{"11", "22", "33", "44"}

	res, err := Verify(daBet("da4", 1000, numbers...), tiersWithTails("11", "22", "33", "44"))
	require.NoError(t, err)
	require.Equal(t, "4-match", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromInt(250000)))

	res, err = Verify(daBet("da4", 1000, numbers...), tiersWithTails("11", "22", "33", "44", "44"))
	require.NoError(t, err)
	require.Equal(t, "4-match-repeat", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromInt(500000)))

	res, err = Verify(daBet("da4", 1000, numbers...), tiersWithTails("11", "22", "33"))
	require.NoError(t, err)
	require.Equal(t, "3-match", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromInt(125000)))

	res, err = Verify(daBet("da4", 1000, numbers...), tiersWithTails("11", "22"))
	require.NoError(t, err)
	require.False(t, res.IsWin)
}

func TestDa5Scenarios(t *testing.T) {
	numbers := []string{"11", "22", "33", "44", "55"}

	res, err := Verify(daBet("da5", 1000, numbers...), tiersWithTails("11", "22", "33", "44", "55"))
	require.NoError(t, err)
	require.Equal(t, "5-match", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromInt(1250000)))

	res, err = Verify(daBet("da5", 1000, numbers...), tiersWithTails("11", "22", "33", "44", "55", "11"))
	require.NoError(t, err)
	require.Equal(t, "5-match-repeat", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromInt(2500000)))

	res, err = Verify(daBet("da5", 1000, numbers...), tiersWithTails("11", "22", "33", "44"))
	require.NoError(t, err)
	require.Equal(t, "4-match", res.WinDetails["scenario"])
	require.True(t, res.TotalWinAmount.Equal(decimal.NewFromInt(625000)))

	res, err = Verify(daBet("da5", 1000, numbers...), tiersWithTails("11", "22", "33"))
	require.NoError(t, err)
	require.False(t, res.IsWin)
}

func TestDaWrongRegionLoses(t *testing.T) {
	res, err := Verify(BetContext{
		RuleCode: CodeDa,
		Region:   RegionM2,
		Subtype:  "da3",
		Numbers:  []string{"11", "22", "33"},
		Amount:   decimal.NewFromInt(1000),
	}, tiersWithTails("11", "22", "33"))
	require.NoError(t, err)
	require.False(t, res.IsWin)
	require.Empty(t, res.WinningNumbers)
	require.True(t, res.TotalWinAmount.IsZero())
}
