package bet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPadNumbers(t *testing.T) {
	require.Equal(t, []string{"07", "25"}, padNumbers([]string{"7", "25"}, 2))
	require.Equal(t, []string{"007", "123"}, padNumbers([]string{"7", "123"}, 3))
	// Over-length entries pass through for the engine to reject.
	require.Equal(t, []string{"1234"}, padNumbers([]string{"1234"}, 2))
}

func TestChosenNumbers(t *testing.T) {
	b := Bet{Numbers: "07,25,99"}
	require.Equal(t, []string{"07", "25", "99"}, b.ChosenNumbers())

	var empty Bet
	require.Empty(t, empty.ChosenNumbers())
}
