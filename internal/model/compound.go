package model

import "fmt"

// Compound codes follow the Pirelli naming: slicks C1 (hardest) through
// C5 (softest), plus the two grooved wet-weather compounds. The same
// C-number means the same chemistry at every circuit; only its nominated
// role (hard/medium/soft) changes per race.
const (
	CompoundIntermediate = "INTERMEDIATE"
	CompoundWet          = "WET"
)

// IsWetCompound reports whether code is one of the grooved rain compounds.
func IsWetCompound(code string) bool {
	return code == CompoundIntermediate || code == CompoundWet
}

// SlickNumber returns the C-number of a slick code ("C3" -> 3).
// Returns 0 and false for wet compounds or malformed codes.
func SlickNumber(code string) (int, bool) {
	if len(code) != 2 || code[0] != 'C' || code[1] < '1' || code[1] > '5' {
		return 0, false
	}
	return int(code[1] - '0'), true
}

// CompoundParams defines the degradation behaviour of one tyre compound.
// Units:
//   - AvgDegSPerLap: seconds lost per lap in the linear phase
//   - CliffOnsetLap: lap in stint (0-indexed) where the quadratic cliff begins
//   - CliffRateSPerLap2: quadratic cliff coefficient (s/lap^2)
//   - TypicalMaxStintLaps: laps before the stint is considered unviable
//   - BasePaceOffset: pace gap in seconds vs the softest nominated compound
//   - TempMultiplier: optional, scales the degradation component only; computed
//     upstream from track temperature (see data.TempMultiplierFor)
type CompoundParams struct {
	AvgDegSPerLap       float64  `json:"avg_deg_s_per_lap" yaml:"avg_deg_s_per_lap"`
	CliffOnsetLap       int      `json:"cliff_onset_lap" yaml:"cliff_onset_lap"`
	CliffRateSPerLap2   float64  `json:"cliff_rate_s_per_lap2" yaml:"cliff_rate_s_per_lap2"`
	TypicalMaxStintLaps int      `json:"typical_max_stint_laps" yaml:"typical_max_stint_laps"`
	BasePaceOffset      float64  `json:"base_pace_offset" yaml:"base_pace_offset"`
	TempMultiplier      *float64 `json:"temp_multiplier,omitempty" yaml:"temp_multiplier,omitempty"`
}

// InvalidCompoundParamsError reports a compound whose parameters cannot
// produce a monotonic degradation curve.
type InvalidCompoundParamsError struct {
	Code   string
	Reason string
}

func (e *InvalidCompoundParamsError) Error() string {
	return fmt.Sprintf("compound %s: %s", e.Code, e.Reason)
}

// Validate checks the monotonic-degradation invariant: all rates non-negative,
// cliff onset non-negative, and a usable max stint length.
func (p CompoundParams) Validate(code string) error {
	if p.AvgDegSPerLap < 0 {
		return &InvalidCompoundParamsError{Code: code, Reason: "avg_deg_s_per_lap must be >= 0"}
	}
	if p.CliffOnsetLap < 0 {
		return &InvalidCompoundParamsError{Code: code, Reason: "cliff_onset_lap must be >= 0"}
	}
	if p.CliffRateSPerLap2 < 0 {
		return &InvalidCompoundParamsError{Code: code, Reason: "cliff_rate_s_per_lap2 must be >= 0"}
	}
	if p.TypicalMaxStintLaps <= 0 {
		return &InvalidCompoundParamsError{Code: code, Reason: "typical_max_stint_laps must be > 0"}
	}
	if p.TempMultiplier != nil && *p.TempMultiplier < 0 {
		return &InvalidCompoundParamsError{Code: code, Reason: "temp_multiplier must be >= 0"}
	}
	return nil
}

// DefaultIntermediateParams returns the built-in Intermediate compound:
// good on standing water, very durable, overheats on a dry surface.
// Calibrated from 2023-2024 wet races (Spa, Suzuka, Montreal).
func DefaultIntermediateParams() CompoundParams {
	return CompoundParams{
		AvgDegSPerLap:       0.02,
		CliffOnsetLap:       25,
		CliffRateSPerLap2:   0.005,
		TypicalMaxStintLaps: 40,
		BasePaceOffset:      2.0,
	}
}

// DefaultWetParams returns the built-in Full Wet compound:
// extreme rain only, very slow on anything less.
func DefaultWetParams() CompoundParams {
	return CompoundParams{
		AvgDegSPerLap:       0.01,
		CliffOnsetLap:       35,
		CliffRateSPerLap2:   0.003,
		TypicalMaxStintLaps: 50,
		BasePaceOffset:      5.0,
	}
}
