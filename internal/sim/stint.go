package sim

import "pitwall/internal/model"

// stintResult is the aggregated lap-by-lap breakdown of one stint.
type stintResult struct {
	TotalS    float64
	AvgS      float64
	FinalLapS float64
	CliffLaps int
}

// laptime returns the time for lap n (0-indexed) of a stint on the given
// compound. effBase is base_lap_time_s already scaled by the condition
// multiplier.
func laptime(code string, p model.CompoundParams, n int, effBase float64, weather model.WeatherState, trackTempC *float64, wet WetOptions) float64 {
	return effBase + p.BasePaceOffset + Delta(p, n, trackTempC) + suitabilityPenalty(code, weather, wet)
}

// suitabilityPenalty is the flat per-lap cost of running a compound outside
// its window. Slicks on a wet track aquaplane; grooved tyres on a track
// drier than their suitability threshold overheat, increasingly so as
// rain intensity falls.
func suitabilityPenalty(code string, weather model.WeatherState, wet WetOptions) float64 {
	if model.IsWetCompound(code) {
		th := wet.InterSuitabilityThreshold
		maxPen := wet.InterOverheatPenaltyS
		if code == model.CompoundWet {
			th = wet.WetSuitabilityThreshold
			maxPen = wet.WetDryingPenaltyS
		}
		rain := weather.RainIntensity
		if weather.IsDry() {
			rain = 0
		}
		if th <= 0 || rain >= th {
			return 0
		}
		return maxPen * (th - rain) / th
	}
	if weather.IsDry() {
		return 0
	}
	return wet.SlickWetPenaltyS * (1 + weather.RainIntensity)
}

// simulateStint accumulates laps 0..laps-1 for one stint.
func simulateStint(code string, p model.CompoundParams, laps int, effBase float64, weather model.WeatherState, trackTempC *float64, wet WetOptions) stintResult {
	if laps <= 0 {
		return stintResult{}
	}
	var res stintResult
	for n := 0; n < laps; n++ {
		t := laptime(code, p, n, effBase, weather, trackTempC, wet)
		res.TotalS += t
		if n == laps-1 {
			res.FinalLapS = t
		}
		if n > p.CliffOnsetLap {
			res.CliffLaps++
		}
	}
	res.AvgS = res.TotalS / float64(laps)
	return res
}
