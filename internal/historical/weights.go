// Package historical applies small, capped, transparent corrections to
// simulated strategies using circuit history. Historical data is advisory:
// it breaks near-ties and attaches context notes, it never replaces the
// physics simulation.
package historical

// Weights control how much historical patterns nudge the ranking score.
// All values are seconds (or factors on seconds). As a yardstick, a pit stop
// costs ~22s, so a 1s nudge is under 5% of one stop. Set any weight to 0 to
// disable that factor; set Master to 0 to disable the whole layer.
type Weights struct {
	// Penalty per lap the first stop sits outside the historical IQR,
	// capped by FirstStopMaxPenaltyS.
	FirstStopOutsideIQRPenaltyPerLap float64 `yaml:"first_stop_outside_iqr_penalty_per_lap"`
	FirstStopMaxPenaltyS             float64 `yaml:"first_stop_max_penalty_s"`

	// Bonus (subtracted) for matching a historically common compound
	// sequence, scaled by that sequence's frequency. Partial matches (same
	// compounds, different order) get the reduced factor.
	SequenceMatchBonusS        float64 `yaml:"sequence_match_bonus_s"`
	SequencePartialMatchFactor float64 `yaml:"sequence_partial_match_factor"`

	// Bonus when the stop count matches the dominant historical pattern
	// (above the 40% dominance threshold).
	StopCountAlignmentBonusS float64 `yaml:"stop_count_alignment_bonus_s"`

	// Master multiplies the summed adjustment; MaxAdjustmentS clamps the
	// result and doubles as the ranker's physics-guard cap.
	Master         float64 `yaml:"master"`
	MaxAdjustmentS float64 `yaml:"max_adjustment_s"`
}

// DefaultWeights are the production values: the summed adjustment stays
// within ±2s, small against any realistic strategy gap.
func DefaultWeights() Weights {
	return Weights{
		FirstStopOutsideIQRPenaltyPerLap: 0.15,
		FirstStopMaxPenaltyS:             2.0,
		SequenceMatchBonusS:              1.5,
		SequencePartialMatchFactor:       0.4,
		StopCountAlignmentBonusS:         0.5,
		Master:                           1.0,
		MaxAdjustmentS:                   2.0,
	}
}
