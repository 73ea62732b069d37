package analysis

import (
	"math"
	"sort"

	"pitwall/internal/model"
)

// Rank orders simulated strategies best-first and determines the
// recommendation and winning margin.
//
// Ordering is by effective score (total_time_s + historical_adjustment_s),
// with an explicit physics guard: when two strategies' unadjusted totals
// differ by more than adjustmentCapS, the raw times decide regardless of
// adjustments. The guard lives here, not folded into the sort key, so it
// stays auditable and testable on its own. Ties break by fewer stops, then
// by earlier first pit lap, then by name for full determinism.
func Rank(strategies []model.Strategy, adjustmentCapS float64) model.RankedResult {
	ranked := make([]model.Strategy, len(strategies))
	copy(ranked, strategies)

	sort.SliceStable(ranked, func(i, j int) bool {
		return strategyLess(ranked[i], ranked[j], adjustmentCapS)
	})

	res := model.RankedResult{Strategies: ranked, Recommended: "N/A"}
	if len(ranked) > 0 {
		res.Recommended = ranked[0].Name
	}
	if len(ranked) > 1 {
		res.DeltaS = math.Round((ranked[1].EffectiveScore()-ranked[0].EffectiveScore())*1000) / 1000
	}
	return res
}

func strategyLess(a, b model.Strategy, capS float64) bool {
	// Physics wins at a clear margin: historical adjustments may only
	// decide near-ties.
	if math.Abs(a.TotalTimeS-b.TotalTimeS) > capS {
		return a.TotalTimeS < b.TotalTimeS
	}
	ea, eb := a.EffectiveScore(), b.EffectiveScore()
	if ea != eb {
		return ea < eb
	}
	if a.Stops != b.Stops {
		return a.Stops < b.Stops
	}
	fa, fb := a.FirstStopLap(), b.FirstStopLap()
	if fa != fb {
		return fa < fb
	}
	return a.Name < b.Name
}
