package sim

import (
	"math"

	"pitwall/internal/model"
)

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// evalTotal is the fast total-time evaluation used by the boundary search:
// stint times plus pit loss, unrounded.
func evalTotal(c Candidate, laps []int, effBase float64, weather model.WeatherState, trackTempC *float64, opts Options) float64 {
	total := 0.0
	for i, code := range c.Compounds {
		r := simulateStint(code, c.Params[code], laps[i], effBase, weather, trackTempC, opts.Wet)
		total += r.TotalS
	}
	return total // pit loss is constant per shape; irrelevant to the argmin
}

// stintBounds returns the legal [min, max] lap counts for stint i.
func stintBounds(c Candidate, i int, opts Options) (int, int) {
	return opts.MinStintLaps, c.Params[c.Compounds[i]].TypicalMaxStintLaps + opts.StintSlackLaps
}

func legalPartition(c Candidate, laps []int, opts Options) bool {
	for i := range laps {
		lo, hi := stintBounds(c, i, opts)
		if laps[i] < lo || laps[i] > hi {
			return false
		}
	}
	return true
}

func boundaryFixed(c Candidate, i int) bool {
	return c.FixedBoundaries != nil && i < len(c.FixedBoundaries) && c.FixedBoundaries[i]
}

// optimizeBoundaries settles the exact stint boundaries for a candidate
// shape. A coarse scan (stride CoarseStepLaps) over the legality envelope
// finds the neighbourhood of the optimum; a ±SearchRadiusLaps local search
// then finds the true minimum. Boundaries marked fixed by the enumerator
// (wet crossover laps) are never moved.
//
// Returns false when the shape admits no legal partition at all.
func optimizeBoundaries(c Candidate, totalLaps int, effBase float64, weather model.WeatherState, trackTempC *float64, opts Options) ([]int, bool) {
	// A relaxed shape has no legal search space at all; its balanced
	// fallback split stands as-is.
	if c.MaxRelaxed {
		return append([]int(nil), c.StintLaps...), true
	}
	switch c.stops() {
	case 0:
		laps := []int{totalLaps}
		return laps, legalPartition(c, laps, opts)
	case 1:
		return optimize1Stop(c, totalLaps, effBase, weather, trackTempC, opts)
	default:
		return optimize2Stop(c, totalLaps, effBase, weather, trackTempC, opts)
	}
}

func optimize1Stop(c Candidate, totalLaps int, effBase float64, weather model.WeatherState, trackTempC *float64, opts Options) ([]int, bool) {
	if boundaryFixed(c, 0) {
		laps := []int{c.StintLaps[0], totalLaps - c.StintLaps[0]}
		return laps, legalPartition(c, laps, opts)
	}

	best, bestTime := -1, math.Inf(1)
	try := func(s1 int) {
		laps := []int{s1, totalLaps - s1}
		if !legalPartition(c, laps, opts) {
			return
		}
		if t := evalTotal(c, laps, effBase, weather, trackTempC, opts); t < bestTime {
			best, bestTime = s1, t
		}
	}

	// The enumerator's initial partition is legal by construction; seeding
	// with it keeps narrow legality windows from slipping between coarse
	// strides.
	try(c.StintLaps[0])
	lo1, hi1 := stintBounds(c, 0, opts)
	for s1 := lo1; s1 <= hi1 && s1 <= totalLaps-opts.MinStintLaps; s1 += opts.CoarseStepLaps {
		try(s1)
	}
	if best < 0 {
		return nil, false
	}
	center := best
	for s1 := center - opts.SearchRadiusLaps; s1 <= center+opts.SearchRadiusLaps; s1++ {
		try(s1)
	}
	return []int{best, totalLaps - best}, true
}

func optimize2Stop(c Candidate, totalLaps int, effBase float64, weather model.WeatherState, trackTempC *float64, opts Options) ([]int, bool) {
	s1Fixed := boundaryFixed(c, 0)

	var bestS1, bestS2 int
	bestTime := math.Inf(1)
	found := false
	try := func(s1, s2 int) {
		s3 := totalLaps - s1 - s2
		if s3 <= 0 {
			return
		}
		laps := []int{s1, s2, s3}
		if !legalPartition(c, laps, opts) {
			return
		}
		if t := evalTotal(c, laps, effBase, weather, trackTempC, opts); t < bestTime {
			bestS1, bestS2, bestTime = s1, s2, t
			found = true
		}
	}

	try(c.StintLaps[0], c.StintLaps[1])
	lo1, hi1 := stintBounds(c, 0, opts)
	lo2, hi2 := stintBounds(c, 1, opts)
	if s1Fixed {
		lo1, hi1 = c.StintLaps[0], c.StintLaps[0]
	}
	for s1 := lo1; s1 <= hi1; s1 += coarseOr1(opts, s1Fixed) {
		for s2 := lo2; s2 <= hi2; s2 += opts.CoarseStepLaps {
			try(s1, s2)
		}
	}
	if !found {
		return nil, false
	}

	c1, c2 := bestS1, bestS2
	r := opts.SearchRadiusLaps
	for d1 := -r; d1 <= r; d1++ {
		if s1Fixed && d1 != 0 {
			continue
		}
		for d2 := -r; d2 <= r; d2++ {
			try(c1+d1, c2+d2)
		}
	}
	return []int{bestS1, bestS2, totalLaps - bestS1 - bestS2}, true
}

func coarseOr1(opts Options, fixed bool) int {
	if fixed {
		return 1
	}
	return opts.CoarseStepLaps
}

// buildStrategy populates the full immutable Strategy for a settled
// partition: per-stint breakdown, pit laps, and the pit-loss-inclusive
// total race time.
func buildStrategy(c Candidate, laps []int, race model.RaceConfig, weather model.WeatherState, opts Options) (model.Strategy, error) {
	effBase := race.BaseLapTimeS * model.ConditionMultiplier(weather.Condition)
	stops := c.stops()

	pitCost, err := PitLossCost(race.PitLossSeconds, stops)
	if err != nil {
		return model.Strategy{}, err
	}

	stints := make([]model.Stint, 0, len(laps))
	pitLaps := make([]int, 0, stops)
	total := 0.0
	currentLap := 1
	for i, code := range c.Compounds {
		r := simulateStint(code, c.Params[code], laps[i], effBase, weather, race.TrackTempC, opts.Wet)
		stints = append(stints, model.Stint{
			StintNumber:   i + 1,
			Compound:      code,
			StartLap:      currentLap,
			EndLap:        currentLap + laps[i] - 1,
			Laps:          laps[i],
			StintTimeS:    round3(r.TotalS),
			AvgLapTimeS:   round3(r.AvgS),
			FinalLapTimeS: round3(r.FinalLapS),
			CliffLaps:     r.CliffLaps,
			IsWetTyre:     model.IsWetCompound(code),
		})
		total += r.TotalS
		if i < stops {
			pitLaps = append(pitLaps, currentLap+laps[i]-1)
		}
		currentLap += laps[i]
	}
	total += pitCost

	return model.Strategy{
		Name:             c.Name,
		Stops:            stops,
		TotalTimeS:       round3(total),
		TotalTimeDisplay: model.FormatRaceTime(total),
		PitStopLaps:      pitLaps,
		Stints:           stints,
		WeatherNote:      c.WeatherNote,
	}, nil
}
