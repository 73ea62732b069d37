package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/internal/model"
)

func strat(name string, stops int, total, adj float64, firstStop int) model.Strategy {
	s := model.Strategy{Name: name, Stops: stops, TotalTimeS: total, HistoricalAdjustmentS: adj}
	if stops > 0 {
		s.PitStopLaps = []int{firstStop}
	}
	return s
}

func TestRank_OrdersByEffectiveScore(t *testing.T) {
	res := Rank([]model.Strategy{
		strat("1-Stop: C4 → C3", 1, 5401.0, 0.5, 20),
		strat("1-Stop: C3 → C4", 1, 5400.0, 0, 25),
		strat("2-Stop: C4 → C3 → C4", 2, 5399.0, 0, 15),
	}, 2.0)

	assert.Equal(t, "2-Stop: C4 → C3 → C4", res.Recommended)
	assert.Equal(t, "1-Stop: C3 → C4", res.Strategies[1].Name)
	assert.Equal(t, 1.0, res.DeltaS)
}

func TestRank_AdjustmentBreaksNearTie(t *testing.T) {
	// Raw gap 0.8s is inside the 2s cap, so the adjusted score decides.
	res := Rank([]model.Strategy{
		strat("1-Stop: C3 → C4", 1, 5400.0, 0, 25),
		strat("1-Stop: C4 → C3", 1, 5400.8, -1.5, 20),
	}, 2.0)

	assert.Equal(t, "1-Stop: C4 → C3", res.Recommended)
}

func TestRank_PhysicsGuardBlocksLargeGapFlip(t *testing.T) {
	// Raw gap 2.5s exceeds the cap: the adjustment may not flip the order
	// no matter how favourable.
	res := Rank([]model.Strategy{
		strat("1-Stop: C3 → C4", 1, 5400.0, 1.9, 25),
		strat("1-Stop: C4 → C3", 1, 5402.5, -1.9, 20),
	}, 2.0)

	assert.Equal(t, "1-Stop: C3 → C4", res.Recommended)
}

func TestRank_TieBreaks(t *testing.T) {
	t.Run("fewer stops first", func(t *testing.T) {
		res := Rank([]model.Strategy{
			strat("2-Stop: C4 → C3 → C4", 2, 5400.0, 0, 15),
			strat("1-Stop: C3 → C4", 1, 5400.0, 0, 25),
		}, 2.0)
		assert.Equal(t, "1-Stop: C3 → C4", res.Recommended)
	})

	t.Run("earlier first stop next", func(t *testing.T) {
		res := Rank([]model.Strategy{
			strat("1-Stop: C3 → C4", 1, 5400.0, 0, 25),
			strat("1-Stop: C4 → C3", 1, 5400.0, 0, 20),
		}, 2.0)
		assert.Equal(t, "1-Stop: C4 → C3", res.Recommended)
	})

	t.Run("name as the final tie-break", func(t *testing.T) {
		res := Rank([]model.Strategy{
			strat("1-Stop: C4 → C3", 1, 5400.0, 0, 20),
			strat("1-Stop: C2 → C3", 1, 5400.0, 0, 20),
		}, 2.0)
		assert.Equal(t, "1-Stop: C2 → C3", res.Recommended)
	})
}

func TestRank_Empty(t *testing.T) {
	res := Rank(nil, 2.0)
	assert.Equal(t, "N/A", res.Recommended)
	assert.Equal(t, 0.0, res.DeltaS)
	assert.Empty(t, res.Strategies)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []model.Strategy{
		strat("1-Stop: C3 → C4", 1, 5401.0, 0, 25),
		strat("1-Stop: C4 → C3", 1, 5400.0, 0, 20),
	}
	res := Rank(in, 2.0)
	require.Equal(t, "1-Stop: C4 → C3", res.Recommended)
	assert.Equal(t, "1-Stop: C3 → C4", in[0].Name, "caller's slice keeps its order")
}
