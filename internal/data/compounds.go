// Package data holds the upstream collaborators of the simulation engine:
// compound catalogues, tyre nominations, historical profiles, and the
// weather client. Everything here resolves and validates inputs before the
// engine runs; the engine itself never touches the network or disk.
package data

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"pitwall/internal/model"
)

// tempBaselineC is the track temperature at which degradation rates were
// calibrated; the multiplier is 1.0 there.
const tempBaselineC = 25.0

// FallbackCompounds returns generic per-code slick parameters used when no
// circuit-specific catalogue is available. Values are averaged across
// 2023-2025 dry races.
func FallbackCompounds() map[string]model.CompoundParams {
	return map[string]model.CompoundParams{
		"C1": {AvgDegSPerLap: 0.030, CliffOnsetLap: 35, CliffRateSPerLap2: 0.006, TypicalMaxStintLaps: 45, BasePaceOffset: 2.0},
		"C2": {AvgDegSPerLap: 0.045, CliffOnsetLap: 30, CliffRateSPerLap2: 0.008, TypicalMaxStintLaps: 40, BasePaceOffset: 1.3},
		"C3": {AvgDegSPerLap: 0.065, CliffOnsetLap: 24, CliffRateSPerLap2: 0.012, TypicalMaxStintLaps: 32, BasePaceOffset: 0.7},
		"C4": {AvgDegSPerLap: 0.095, CliffOnsetLap: 18, CliffRateSPerLap2: 0.025, TypicalMaxStintLaps: 25, BasePaceOffset: 0.2},
		"C5": {AvgDegSPerLap: 0.140, CliffOnsetLap: 12, CliffRateSPerLap2: 0.035, TypicalMaxStintLaps: 18, BasePaceOffset: 0.0},
	}
}

// LoadCompoundsJSON reads an already-computed catalogue keyed by compound
// code, validating every entry.
func LoadCompoundsJSON(path string) (map[string]model.CompoundParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var compounds map[string]model.CompoundParams
	if err := json.Unmarshal(raw, &compounds); err != nil {
		return nil, fmt.Errorf("parse compounds %s: %w", path, err)
	}
	for code, p := range compounds {
		if err := p.Validate(code); err != nil {
			return nil, err
		}
	}
	return compounds, nil
}

// TempMultiplierFor returns the degradation multiplier for a compound at
// the given track temperature.
//
// Heuristic: (track_temp / 25)^1.2, with softer compounds more sensitive to
// heat: ×(1 + 0.05*(cnum-3)), so C5 reacts more than C1. At 25°C the
// multiplier is 1.0; ~45°C roughly doubles degradation, ~15°C halves it.
func TempMultiplierFor(code string, trackTempC float64) float64 {
	if trackTempC <= 0 {
		return 1.0
	}
	base := math.Pow(trackTempC/tempBaselineC, 1.2)
	cnum := 3
	if n, ok := model.SlickNumber(code); ok {
		cnum = n
	}
	sensitivity := 1.0 + 0.05*float64(cnum-3)
	return base * sensitivity
}

// ApplyTempAdjustment returns a copy of the catalogue with per-compound
// temperature multipliers attached. The engine applies the multiplier to
// the degradation component only.
func ApplyTempAdjustment(compounds map[string]model.CompoundParams, trackTempC float64) map[string]model.CompoundParams {
	out := make(map[string]model.CompoundParams, len(compounds))
	for code, p := range compounds {
		m := TempMultiplierFor(code, trackTempC)
		p.TempMultiplier = &m
		out[code] = p
	}
	return out
}
