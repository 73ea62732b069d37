package sim

// Options are the engine tuning knobs surfaced to callers. Zero values are
// not meaningful; start from DefaultOptions and override.
type Options struct {
	// StopCounts bounds the search space. The realistic planning bound is
	// {0, 1, 2}; anything past 2 stops is never time-optimal on these models.
	StopCounts []int `yaml:"stop_counts"`

	// MinStintLaps rejects partitions with token stints.
	MinStintLaps int `yaml:"min_stint_laps"`

	// StintSlackLaps extends typical_max_stint_laps during partitioning:
	// the "typical" max is a viability guide, not a hard cliff.
	StintSlackLaps int `yaml:"stint_slack_laps"`

	// CoarseStepLaps is the stride of the first boundary scan. Combined with
	// the local refinement below it replaces exhaustive lap-by-lap
	// enumeration of partitions.
	CoarseStepLaps int `yaml:"coarse_step_laps"`

	// SearchRadiusLaps is the ±radius of the per-boundary local search run
	// around the best coarse partition.
	SearchRadiusLaps int `yaml:"search_radius_laps"`

	// ShortlistPerStopCount limits how many dry strategies per stop count
	// reach the ranked result.
	ShortlistPerStopCount int `yaml:"shortlist_per_stop_count"`

	// WetShortlist limits the ranked result size in non-dry conditions.
	WetShortlist int `yaml:"wet_shortlist"`

	// FallbackWetParams substitutes built-in Intermediate/Full Wet
	// parameters (with an advisory note) when the request omits them.
	// When false the request fails with InsufficientCompoundData instead.
	FallbackWetParams bool `yaml:"fallback_wet_params"`

	Wet WetOptions `yaml:"wet"`
}

// WetOptions are the wet-weather heuristics: crossover timing and tyre
// suitability penalties. All product policy constants, deliberately exposed
// as configuration rather than hard-coded.
type WetOptions struct {
	// Crossover lap ≈ total_laps * rain_intensity * coeff. Higher intensity
	// delays the switch to slicks.
	CrossoverCoeffDamp    float64 `yaml:"crossover_coeff_damp"`
	CrossoverCoeffWet     float64 `yaml:"crossover_coeff_wet"`
	CrossoverCoeffExtreme float64 `yaml:"crossover_coeff_extreme"`

	// OverheatCliffRate replaces the Intermediate's cliff rate past the
	// crossover lap on a drying track (s/lap^2).
	OverheatCliffRate float64 `yaml:"overheat_cliff_rate"`

	// SlickWetPenaltyS is the flat per-lap aquaplaning penalty for running a
	// slick in non-dry conditions, scaled up with rain intensity.
	SlickWetPenaltyS float64 `yaml:"slick_wet_penalty_s"`

	// Suitability thresholds: below this rain intensity a wet-weather
	// compound starts overheating, up to the full per-lap penalty at zero
	// intensity.
	InterSuitabilityThreshold float64 `yaml:"inter_suitability_threshold"`
	InterOverheatPenaltyS     float64 `yaml:"inter_overheat_penalty_s"`
	WetSuitabilityThreshold   float64 `yaml:"wet_suitability_threshold"`
	WetDryingPenaltyS         float64 `yaml:"wet_drying_penalty_s"`

	// FullWetSwitchIntensity: in wet condition, a WET → INTER candidate is
	// only offered above this intensity.
	FullWetSwitchIntensity float64 `yaml:"full_wet_switch_intensity"`

	// ExtremeSwitchCoeff times total_laps*rain_intensity gives the earliest
	// WET → INTER switch lap in extreme conditions.
	ExtremeSwitchCoeff float64 `yaml:"extreme_switch_coeff"`

	// LateCrossoverMaxIntensity: in wet condition, INTER → slick candidates
	// are only offered below this intensity.
	LateCrossoverMaxIntensity float64 `yaml:"late_crossover_max_intensity"`
}

// DefaultOptions returns the production defaults. Wet constants are
// calibrated against 2023-2024 rain-affected races.
func DefaultOptions() Options {
	return Options{
		StopCounts:            []int{0, 1, 2},
		MinStintLaps:          5,
		StintSlackLaps:        5,
		CoarseStepLaps:        3,
		SearchRadiusLaps:      2,
		ShortlistPerStopCount: 3,
		WetShortlist:          6,
		FallbackWetParams:     true,
		Wet: WetOptions{
			CrossoverCoeffDamp:        0.5,
			CrossoverCoeffWet:         0.7,
			CrossoverCoeffExtreme:     0.8,
			OverheatCliffRate:         0.10,
			SlickWetPenaltyS:          6.0,
			InterSuitabilityThreshold: 0.35,
			InterOverheatPenaltyS:     1.5,
			WetSuitabilityThreshold:   0.7,
			WetDryingPenaltyS:         4.0,
			FullWetSwitchIntensity:    0.5,
			ExtremeSwitchCoeff:        0.6,
			LateCrossoverMaxIntensity: 0.6,
		},
	}
}

// allowsStops reports whether stop count n is inside the configured bound.
func (o Options) allowsStops(n int) bool {
	for _, s := range o.StopCounts {
		if s == n {
			return true
		}
	}
	return false
}
