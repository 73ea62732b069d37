package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/internal/model"
)

func TestDelta_LinearPhase(t *testing.T) {
	p := model.CompoundParams{AvgDegSPerLap: 0.08, CliffOnsetLap: 20, CliffRateSPerLap2: 0.01, TypicalMaxStintLaps: 25}

	assert.Equal(t, 0.0, Delta(p, 0, nil))
	assert.InDelta(t, 0.08, Delta(p, 1, nil), 1e-9)
	assert.InDelta(t, 0.8, Delta(p, 10, nil), 1e-9)
	// Last lap before the cliff is still purely linear.
	assert.InDelta(t, 1.6, Delta(p, 20, nil), 1e-9)
}

func TestDelta_CliffPhase(t *testing.T) {
	p := model.CompoundParams{AvgDegSPerLap: 0.08, CliffOnsetLap: 20, CliffRateSPerLap2: 0.01, TypicalMaxStintLaps: 25}

	// delta(25) = 25*0.08 + 0.01*(25-20)^2 = 2.0 + 0.25
	assert.InDelta(t, 2.25, Delta(p, 25, nil), 1e-9)
}

func TestDelta_MonotonicallyNonDecreasing(t *testing.T) {
	p := model.CompoundParams{AvgDegSPerLap: 0.065, CliffOnsetLap: 24, CliffRateSPerLap2: 0.012, TypicalMaxStintLaps: 32}

	prev := Delta(p, 0, nil)
	for n := 1; n <= 60; n++ {
		cur := Delta(p, n, nil)
		require.GreaterOrEqual(t, cur, prev, "lap %d", n)
		prev = cur
	}
}

func TestDelta_NegativeLapTreatedAsZero(t *testing.T) {
	p := model.CompoundParams{AvgDegSPerLap: 0.1, CliffOnsetLap: 5, CliffRateSPerLap2: 0.01, TypicalMaxStintLaps: 20}
	assert.Equal(t, 0.0, Delta(p, -3, nil))
}

func TestDelta_TempMultiplierScalesDegradationOnly(t *testing.T) {
	mult := 2.0
	temp := 45.0
	p := model.CompoundParams{AvgDegSPerLap: 0.08, CliffOnsetLap: 20, CliffRateSPerLap2: 0.01, TypicalMaxStintLaps: 25}
	hot := p
	hot.TempMultiplier = &mult

	// Multiplier doubles the full wear term on every lap.
	for _, n := range []int{1, 10, 25} {
		assert.InDelta(t, 2*Delta(p, n, &temp), Delta(hot, n, &temp), 1e-9, "lap %d", n)
	}

	// Without a track temperature the multiplier is inert.
	assert.InDelta(t, Delta(p, 10, nil), Delta(hot, 10, nil), 1e-9)

	// The flat baseline is unaffected: lap time changes only through Delta.
	weather := model.WeatherState{Condition: model.ConditionDry}
	base := laptime("C3", p, 0, 90, weather, &temp, DefaultOptions().Wet)
	hotBase := laptime("C3", hot, 0, 90, weather, &temp, DefaultOptions().Wet)
	assert.Equal(t, base, hotBase)
}

func TestPitLossCost(t *testing.T) {
	got, err := PitLossCost(22.0, 2)
	require.NoError(t, err)
	assert.Equal(t, 44.0, got)

	got, err = PitLossCost(22.0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = PitLossCost(-1.0, 1)
	assert.Error(t, err)

	_, err = PitLossCost(22.0, -1)
	assert.Error(t, err)
}
