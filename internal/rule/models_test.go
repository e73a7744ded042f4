package rule

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"lottery_service/internal/engine"
)

func TestEngineProjection(t *testing.T) {
	r := Rule{
		Code:         "zz",
		Name:         "Custom",
		Region:       "BOTH",
		Digits:       2,
		Rate:         decimal.NewFromInt(60),
		StakeFormula: "region == 'M1' ? 2 : 1",
		Active:       true,
	}

	er := r.Engine()
	require.Equal(t, "zz", er.Code)
	require.Equal(t, engine.RegionBoth, er.Region)
	require.Equal(t, 2, er.Digits)
	require.True(t, er.Rate.Equal(decimal.NewFromInt(60)))
	require.Equal(t, r.StakeFormula, er.StakeFormula)
}
