package draw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultTiers(t *testing.T) {
	r := Result{
		Province:    "TP.HCM",
		DrawDate:    "2024-06-01",
		Region:      "M1",
		GiaiDacBiet: "123425",
		GiaiSau:     "1011, 2022,3033",
	}

	tiers := r.Tiers()
	require.Equal(t, []string{"123425"}, tiers.DacBiet)
	require.Equal(t, []string{"1011", "2022", "3033"}, tiers.Sau)

	// Unpublished tiers come back empty, never nil.
	require.NotNil(t, tiers.Tam)
	require.Empty(t, tiers.Tam)
	require.NotNil(t, tiers.Bay)
}
