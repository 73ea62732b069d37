package historical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/internal/model"
)

func oneStop(name string, firstStop int, compounds ...string) model.Strategy {
	stints := make([]model.Stint, len(compounds))
	for i, c := range compounds {
		stints[i] = model.Stint{StintNumber: i + 1, Compound: c}
	}
	return model.Strategy{
		Name:        name,
		Stops:       len(compounds) - 1,
		TotalTimeS:  5400,
		PitStopLaps: []int{firstStop},
		Stints:      stints,
	}
}

func TestAdjust_NilProfileIsZero(t *testing.T) {
	in := []model.Strategy{oneStop("1-Stop: C4 → C3", 18, "C4", "C3")}
	out := Adjust(in, nil, nil, DefaultWeights())
	require.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].HistoricalAdjustmentS)
	assert.Empty(t, out[0].HistoricalNotes)
}

func TestAdjust_MasterZeroDisablesLayer(t *testing.T) {
	profile := &model.HistoricalProfile{
		FirstStopLap: &model.FirstStopStats{Median: 18, P25: 15, P75: 21, N: 12},
	}
	w := DefaultWeights()
	w.Master = 0
	out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 30, "C4", "C3")}, profile, nil, w)
	assert.Equal(t, 0.0, out[0].HistoricalAdjustmentS)
}

func TestAdjust_FirstStopInsideWindow(t *testing.T) {
	profile := &model.HistoricalProfile{
		FirstStopLap: &model.FirstStopStats{Median: 18, P25: 15, P75: 21, N: 12},
	}
	out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 18, "C4", "C3")}, profile, nil, DefaultWeights())
	assert.Equal(t, 0.0, out[0].HistoricalAdjustmentS)
	require.Len(t, out[0].HistoricalNotes, 1)
	assert.Contains(t, out[0].HistoricalNotes[0], "within historical window")
}

func TestAdjust_FirstStopOutsideIQR(t *testing.T) {
	profile := &model.HistoricalProfile{
		FirstStopLap: &model.FirstStopStats{Median: 18, P25: 15, P75: 21, N: 12},
	}

	t.Run("linear penalty with distance", func(t *testing.T) {
		// 4 laps past p75: 4 * 0.15 = 0.6.
		out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 25, "C4", "C3")}, profile, nil, DefaultWeights())
		assert.InDelta(t, 0.6, out[0].HistoricalAdjustmentS, 1e-9)
		assert.Contains(t, out[0].HistoricalNotes[0], "outside historical IQR")
	})

	t.Run("capped per factor and overall", func(t *testing.T) {
		// 30 laps past p75 would be 4.5s; the per-factor cap holds it at 2.0
		// and the overall cap keeps the final value within ±2.0.
		out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 51, "C4", "C3")}, profile, nil, DefaultWeights())
		assert.InDelta(t, 2.0, out[0].HistoricalAdjustmentS, 1e-9)
	})
}

func TestAdjust_SequenceMatch(t *testing.T) {
	profile := &model.HistoricalProfile{
		CommonStrategySequences: []model.SequenceFrequency{
			{Sequence: []string{"MEDIUM", "HARD"}, FrequencyPct: 60},
		},
	}
	roles := map[string]string{"C3": "HARD", "C4": "MEDIUM"}

	t.Run("exact match earns the full bonus", func(t *testing.T) {
		out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 18, "C4", "C3")}, profile, roles, DefaultWeights())
		// -1.5 * 60/100 = -0.9.
		assert.InDelta(t, -0.9, out[0].HistoricalAdjustmentS, 1e-9)
		assert.Contains(t, out[0].HistoricalNotes[0], "Matches historical sequence")
	})

	t.Run("same compounds in another order earn the partial bonus", func(t *testing.T) {
		out := Adjust([]model.Strategy{oneStop("1-Stop: C3 → C4", 18, "C3", "C4")}, profile, roles, DefaultWeights())
		// -1.5 * 0.4 * 60/100 = -0.36.
		assert.InDelta(t, -0.36, out[0].HistoricalAdjustmentS, 1e-9)
		assert.Contains(t, out[0].HistoricalNotes[0], "Partially matches")
	})

	t.Run("no role map compares raw codes", func(t *testing.T) {
		out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 18, "C4", "C3")}, profile, nil, DefaultWeights())
		assert.Equal(t, 0.0, out[0].HistoricalAdjustmentS)
	})
}

func TestAdjust_StopCountDominance(t *testing.T) {
	w := DefaultWeights()

	t.Run("dominant pattern above threshold earns the bonus", func(t *testing.T) {
		profile := &model.HistoricalProfile{
			StopCountDistribution: &model.StopCountDist{OneStopPct: 70, TwoStopPct: 20},
		}
		out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 18, "C4", "C3")}, profile, nil, w)
		// -0.5 * 70/100 = -0.35.
		assert.InDelta(t, -0.35, out[0].HistoricalAdjustmentS, 1e-9)
	})

	t.Run("no bonus below the dominance threshold", func(t *testing.T) {
		profile := &model.HistoricalProfile{
			StopCountDistribution: &model.StopCountDist{OneStopPct: 35, TwoStopPct: 30},
		}
		out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 18, "C4", "C3")}, profile, nil, w)
		assert.Equal(t, 0.0, out[0].HistoricalAdjustmentS)
	})

	t.Run("mismatched stop count earns nothing", func(t *testing.T) {
		profile := &model.HistoricalProfile{
			StopCountDistribution: &model.StopCountDist{OneStopPct: 20, TwoStopPct: 70},
		}
		out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 18, "C4", "C3")}, profile, nil, w)
		assert.Equal(t, 0.0, out[0].HistoricalAdjustmentS)
	})
}

func TestAdjust_UndercutNoteIsAdvisoryOnly(t *testing.T) {
	profile := &model.HistoricalProfile{
		FirstStopLap: &model.FirstStopStats{Median: 18, P25: 15, P75: 21, N: 12},
		UndercutOvercut: &model.UndercutStats{
			UndercutAttempts: 9, UndercutSuccessPct: 67, AvgPositionsGained: 1.2,
		},
	}
	out := Adjust([]model.Strategy{oneStop("1-Stop: C4 → C3", 10, "C4", "C3")}, profile, nil, DefaultWeights())

	// First stop 5 laps before p25: IQR penalty 0.75, plus a note about
	// relying on the undercut that carries no time of its own.
	assert.InDelta(t, 0.75, out[0].HistoricalAdjustmentS, 1e-9)
	require.Len(t, out[0].HistoricalNotes, 2)
	assert.Contains(t, out[0].HistoricalNotes[1], "undercut")
}

func TestAdjust_DoesNotMutateInput(t *testing.T) {
	profile := &model.HistoricalProfile{
		FirstStopLap: &model.FirstStopStats{Median: 18, P25: 15, P75: 21, N: 12},
	}
	in := []model.Strategy{oneStop("1-Stop: C4 → C3", 30, "C4", "C3")}
	_ = Adjust(in, profile, nil, DefaultWeights())
	assert.Equal(t, 0.0, in[0].HistoricalAdjustmentS)
	assert.Equal(t, 5400.0, in[0].TotalTimeS)
}
