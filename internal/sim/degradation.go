package sim

import "pitwall/internal/model"

// Delta returns the lap-time penalty (seconds) from tyre wear for lap n
// within a stint, 0-indexed. Piecewise model:
//
//	delta(n) = n*avg_deg + cliff_rate * max(0, n - cliff_onset)^2
//
// When both a track temperature and a compound temp multiplier are present,
// the multiplier scales the degradation component only, never the flat
// per-lap baseline: a hotter track accelerates wear, it never improves pace.
//
// Params are assumed validated (CompoundParams.Validate); the result is
// monotonically non-decreasing in n.
func Delta(p model.CompoundParams, lapInStint int, trackTempC *float64) float64 {
	if lapInStint <= 0 {
		return 0
	}
	d := float64(lapInStint) * p.AvgDegSPerLap
	if lapInStint > p.CliffOnsetLap {
		over := float64(lapInStint - p.CliffOnsetLap)
		d += p.CliffRateSPerLap2 * over * over
	}
	if trackTempC != nil && p.TempMultiplier != nil {
		d *= *p.TempMultiplier
	}
	return d
}
