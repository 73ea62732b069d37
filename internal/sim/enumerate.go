package sim

import (
	"fmt"
	"sort"
	"strings"

	"pitwall/internal/model"
)

// Candidate is a coarse strategy shape: a compound sequence plus an initial
// legal stint partition. Exact boundaries are settled later by the
// simulator's local search, except where FixedBoundaries marks a boundary as
// weather policy (the wet/dry crossover lap is a function of rain intensity,
// not a free variable).
type Candidate struct {
	Name            string
	Compounds       []string
	StintLaps       []int
	Params          map[string]model.CompoundParams
	WeatherNote     string
	FixedBoundaries []bool

	// MaxRelaxed marks a shape whose balanced fallback split runs past the
	// per-compound maximums because no legal split exists. The split is
	// final; the boundary search does not touch it.
	MaxRelaxed bool
}

func (c Candidate) stops() int { return len(c.Compounds) - 1 }

// shortLabel is the display name used in strategy names.
func shortLabel(code string) string {
	if code == model.CompoundIntermediate {
		return "INTER"
	}
	return code
}

func strategyName(compounds []string) string {
	labels := make([]string, len(compounds))
	for i, c := range compounds {
		labels[i] = shortLabel(c)
	}
	return fmt.Sprintf("%d-Stop: %s", len(compounds)-1, strings.Join(labels, " → "))
}

// Enumerate generates the legal candidate set for one request. Slick-only
// shapes in dry conditions, crossover shapes otherwise. Returned notes are
// advisory (e.g. the short-race relaxation of the two-compound rule).
//
// Candidates whose shape admits no legal partition are simply absent; the
// caller decides whether an empty set is fatal.
func Enumerate(race model.RaceConfig, weather model.WeatherState, compounds map[string]model.CompoundParams, opts Options) ([]Candidate, []string) {
	if weather.IsDry() {
		return enumerateDry(race, compounds, opts)
	}
	return enumerateWet(race, weather, compounds, opts)
}

// slickCodes returns the sorted slick compound codes of the catalogue.
// Sorting makes enumeration order, and therefore engine output, stable.
func slickCodes(compounds map[string]model.CompoundParams) []string {
	codes := make([]string, 0, len(compounds))
	for code := range compounds {
		if !model.IsWetCompound(code) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

func enumerateDry(race model.RaceConfig, compounds map[string]model.CompoundParams, opts Options) ([]Candidate, []string) {
	slicks := slickCodes(compounds)
	var out []Candidate
	var notes []string

	// Dry races must run at least two distinct slick compounds, mirroring
	// the tyre-use regulations.
	if opts.allowsStops(1) {
		for _, c1 := range slicks {
			for _, c2 := range slicks {
				if c1 == c2 {
					continue
				}
				if cand, ok := makeCandidate([]string{c1, c2}, race.TotalLaps, compounds, opts, "", nil); ok {
					out = append(out, cand)
				}
			}
		}
	}
	if opts.allowsStops(2) {
		for _, c1 := range slicks {
			for _, c2 := range slicks {
				for _, c3 := range slicks {
					if c1 == c2 && c2 == c3 {
						continue
					}
					if cand, ok := makeCandidate([]string{c1, c2, c3}, race.TotalLaps, compounds, opts, "", nil); ok {
						out = append(out, cand)
					}
				}
			}
		}
	}

	for _, c := range out {
		if c.MaxRelaxed {
			notes = append(notes, "Race length exceeds typical stint maximums for some compound sequences; their stint lengths were relaxed")
			break
		}
	}

	// Short-race relaxation: when no two-compound split is legal, allow a
	// single-stint race and say so.
	if len(out) == 0 && opts.allowsStops(0) {
		for _, c := range slicks {
			if race.TotalLaps > compounds[c].TypicalMaxStintLaps {
				continue
			}
			cand := Candidate{
				Name:        strategyName([]string{c}),
				Compounds:   []string{c},
				StintLaps:   []int{race.TotalLaps},
				Params:      compounds,
				WeatherNote: "Two-compound rule relaxed: race too short for a legal split",
			}
			out = append(out, cand)
		}
		if len(out) > 0 {
			notes = append(notes, "Two-compound rule relaxed: no legal two-compound split exists for this race length")
		}
	}
	return out, notes
}

// makeCandidate builds a candidate with a legal initial partition. When the
// shape admits none because the race outruns the combined maximums, the
// balanced split keeps it in play with the overrun flagged; only shapes that
// cannot even satisfy the minimum stint length are dropped.
func makeCandidate(seq []string, totalLaps int, params map[string]model.CompoundParams, opts Options, note string, fixed []bool) (Candidate, bool) {
	relaxed := false
	laps, ok := initialPartition(seq, totalLaps, params, opts)
	if !ok {
		laps, ok = balancedPartition(seq, totalLaps, opts)
		if !ok {
			return Candidate{}, false
		}
		relaxed = true
		if note == "" {
			note = "Race length exceeds the combined typical stint maximums; stints run past their usual limits"
		}
	}
	return Candidate{
		Name:            strategyName(seq),
		Compounds:       seq,
		StintLaps:       laps,
		Params:          params,
		WeatherNote:     note,
		FixedBoundaries: fixed,
		MaxRelaxed:      relaxed,
	}, true
}

// balancedPartition splits the race evenly across the sequence, ignoring the
// per-compound maximums. Used as the fallback when no legal split exists.
func balancedPartition(seq []string, totalLaps int, opts Options) ([]int, bool) {
	n := len(seq)
	if totalLaps < n*opts.MinStintLaps {
		return nil, false
	}
	laps := make([]int, n)
	each := totalLaps / n
	for i := range laps {
		laps[i] = each
	}
	laps[n-1] += totalLaps - each*n
	return laps, true
}

// initialPartition splits totalLaps across the sequence proportionally to
// each compound's max stint length, then repairs any min/max violations.
func initialPartition(seq []string, totalLaps int, params map[string]model.CompoundParams, opts Options) ([]int, bool) {
	n := len(seq)
	maxes := make([]int, n)
	sumMax := 0
	for i, code := range seq {
		maxes[i] = params[code].TypicalMaxStintLaps + opts.StintSlackLaps
		sumMax += maxes[i]
	}
	if sumMax < totalLaps || totalLaps < n*opts.MinStintLaps {
		return nil, false
	}

	laps := make([]int, n)
	assigned := 0
	for i := range seq {
		laps[i] = totalLaps * maxes[i] / sumMax
		assigned += laps[i]
	}
	laps[n-1] += totalLaps - assigned

	// Repair pass: push overflow/underflow onto neighbours with headroom.
	for i := 0; i < n; i++ {
		if laps[i] > maxes[i] {
			excess := laps[i] - maxes[i]
			laps[i] = maxes[i]
			for j := 0; j < n && excess > 0; j++ {
				if j == i {
					continue
				}
				room := maxes[j] - laps[j]
				if room > 0 {
					take := room
					if take > excess {
						take = excess
					}
					laps[j] += take
					excess -= take
				}
			}
			if excess > 0 {
				return nil, false
			}
		}
	}
	for i := 0; i < n; i++ {
		for laps[i] < opts.MinStintLaps {
			// Pull a lap from the longest stint.
			longest := -1
			for j := 0; j < n; j++ {
				if j != i && laps[j] > opts.MinStintLaps && (longest < 0 || laps[j] > laps[longest]) {
					longest = j
				}
			}
			if longest < 0 {
				return nil, false
			}
			laps[longest]--
			laps[i]++
		}
	}
	return laps, true
}

// crossoverLap is the lap where slicks become faster than inters as the
// track dries. Drying rate is inversely proportional to rain intensity, so
// heavier rain pushes the crossover later.
func crossoverLap(totalLaps int, weather model.WeatherState, wet WetOptions) int {
	var coeff float64
	lo, hi := 10, totalLaps-5
	switch weather.Condition {
	case model.ConditionDamp:
		coeff = wet.CrossoverCoeffDamp
		lo, hi = 5, totalLaps-10
	case model.ConditionWet:
		coeff = wet.CrossoverCoeffWet
	default:
		coeff = wet.CrossoverCoeffExtreme
	}
	x := int(float64(totalLaps) * weather.RainIntensity * coeff)
	if x < lo {
		x = lo
	}
	if x > hi {
		x = hi
	}
	return x
}

func enumerateWet(race model.RaceConfig, weather model.WeatherState, compounds map[string]model.CompoundParams, opts Options) ([]Candidate, []string) {
	slicks := slickCodes(compounds)
	total := race.TotalLaps
	var out []Candidate
	var notes []string

	switch weather.Condition {
	case model.ConditionDamp:
		// Track starts damp and dries out. Inters are mandatory at the start;
		// past the crossover they overheat on the drying surface, which we
		// model by moving the cliff onset to the crossover lap with a severe
		// cliff rate.
		cross := crossoverLap(total, weather, opts.Wet)
		note := fmt.Sprintf("Track dries ~lap %d. Inters mandatory at start.", cross)

		interBase := compounds[model.CompoundIntermediate]
		inter := interBase
		inter.CliffOnsetLap = cross
		inter.CliffRateSPerLap2 = opts.Wet.OverheatCliffRate
		inter.TypicalMaxStintLaps = cross + opts.StintSlackLaps
		adjusted := withCompound(compounds, model.CompoundIntermediate, inter)

		if opts.allowsStops(1) {
			for _, sc := range slicks {
				if total-cross < opts.MinStintLaps {
					continue
				}
				out = append(out, Candidate{
					Name:            strategyName([]string{model.CompoundIntermediate, sc}),
					Compounds:       []string{model.CompoundIntermediate, sc},
					StintLaps:       []int{cross, total - cross},
					Params:          adjusted,
					WeatherNote:     note,
					FixedBoundaries: []bool{true},
				})
			}
		}
		if opts.allowsStops(2) {
			for _, s1 := range slicks {
				for _, s2 := range slicks {
					if s1 == s2 {
						continue
					}
					mid := (total - cross) / 2
					rest := total - cross - mid
					if mid < opts.MinStintLaps || rest < opts.MinStintLaps {
						continue
					}
					out = append(out, Candidate{
						Name:            strategyName([]string{model.CompoundIntermediate, s1, s2}),
						Compounds:       []string{model.CompoundIntermediate, s1, s2},
						StintLaps:       []int{cross, mid, rest},
						Params:          adjusted,
						WeatherNote:     note,
						FixedBoundaries: []bool{true, false},
					})
				}
			}
		}

	case model.ConditionWet:
		cross := crossoverLap(total, weather, opts.Wet)
		if opts.allowsStops(0) {
			out = append(out, Candidate{
				Name:        strategyName([]string{model.CompoundIntermediate}),
				Compounds:   []string{model.CompoundIntermediate},
				StintLaps:   []int{total},
				Params:      compounds,
				WeatherNote: "Full wet race on inters",
			})
		}
		if opts.allowsStops(1) && weather.RainIntensity > opts.Wet.FullWetSwitchIntensity {
			switchLap := total / 2
			out = append(out, Candidate{
				Name:            strategyName([]string{model.CompoundWet, model.CompoundIntermediate}),
				Compounds:       []string{model.CompoundWet, model.CompoundIntermediate},
				StintLaps:       []int{switchLap, total - switchLap},
				Params:          compounds,
				WeatherNote:     "Start Full Wets, switch to Inters as rain eases",
				FixedBoundaries: []bool{true},
			})
		}
		if opts.allowsStops(1) && weather.RainIntensity < opts.Wet.LateCrossoverMaxIntensity && cross < total-8 {
			picks := slicks
			if len(picks) > 2 {
				picks = picks[:2]
			}
			for _, sc := range picks {
				out = append(out, Candidate{
					Name:            strategyName([]string{model.CompoundIntermediate, sc}),
					Compounds:       []string{model.CompoundIntermediate, sc},
					StintLaps:       []int{cross, total - cross},
					Params:          compounds,
					WeatherNote:     fmt.Sprintf("Late crossover to slicks at ~lap %d", cross),
					FixedBoundaries: []bool{true},
				})
			}
		}

	case model.ConditionExtreme:
		if opts.allowsStops(0) {
			out = append(out, Candidate{
				Name:        strategyName([]string{model.CompoundWet}),
				Compounds:   []string{model.CompoundWet},
				StintLaps:   []int{total},
				Params:      compounds,
				WeatherNote: "Extreme rain — Full Wets only",
			})
		}
		if opts.allowsStops(1) {
			switchLap := total / 2
			if byRain := int(float64(total) * weather.RainIntensity * opts.Wet.ExtremeSwitchCoeff); byRain > switchLap {
				switchLap = byRain
			}
			if switchLap > total-opts.MinStintLaps {
				switchLap = total - opts.MinStintLaps
			}
			out = append(out, Candidate{
				Name:            strategyName([]string{model.CompoundWet, model.CompoundIntermediate}),
				Compounds:       []string{model.CompoundWet, model.CompoundIntermediate},
				StintLaps:       []int{switchLap, total - switchLap},
				Params:          compounds,
				WeatherNote:     "Switch to Inters if rain eases",
				FixedBoundaries: []bool{true},
			})
		}
	}
	return out, notes
}

func withCompound(params map[string]model.CompoundParams, code string, p model.CompoundParams) map[string]model.CompoundParams {
	out := make(map[string]model.CompoundParams, len(params))
	for k, v := range params {
		out[k] = v
	}
	out[code] = p
	return out
}
