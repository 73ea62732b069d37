package historical

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pitwall/internal/model"
)

// stopDominanceThresholdPct: a stop-count pattern only earns the alignment
// bonus when it covers more than this share of historical drivers.
const stopDominanceThresholdPct = 40

// Adjust computes the advisory historical adjustment and notes for each
// strategy. The adjustment is stored on the strategy, never folded into
// TotalTimeS. A nil profile is not an error: every strategy simply gets a
// zero adjustment and no notes.
//
// roles optionally maps compound codes to nominated roles (e.g. "C3" ->
// "SOFT") so sequences can be compared against role-labelled history.
func Adjust(strategies []model.Strategy, profile *model.HistoricalProfile, roles map[string]string, w Weights) []model.Strategy {
	out := make([]model.Strategy, len(strategies))
	copy(out, strategies)
	if profile == nil || w.Master == 0 {
		return out
	}

	for i := range out {
		s := &out[i]
		adjustment := 0.0
		var notes []string

		if profile.FirstStopLap != nil && s.Stops >= 1 && len(s.PitStopLaps) > 0 {
			adj, note := scoreFirstStop(s.PitStopLaps[0], *profile.FirstStopLap, w)
			adjustment += adj
			if note != "" {
				notes = append(notes, note)
			}
		}

		if len(profile.CommonStrategySequences) > 0 {
			adj, note := scoreSequenceMatch(s.CompoundSequence(), profile.CommonStrategySequences, roles, w)
			adjustment += adj
			if note != "" {
				notes = append(notes, note)
			}
		}

		if profile.StopCountDistribution != nil {
			adj, note := scoreStopCount(s.Stops, *profile.StopCountDistribution, w)
			adjustment += adj
			if note != "" {
				notes = append(notes, note)
			}
		}

		if note := undercutNote(s, profile); note != "" {
			notes = append(notes, note)
		}

		final := math.Round(adjustment*w.Master*1000) / 1000
		if final > w.MaxAdjustmentS {
			final = w.MaxAdjustmentS
		}
		if final < -w.MaxAdjustmentS {
			final = -w.MaxAdjustmentS
		}
		s.HistoricalAdjustmentS = final
		s.HistoricalNotes = notes
	}
	return out
}

// scoreFirstStop penalises a first stop outside the historical IQR,
// linearly with distance from the boundary, capped.
func scoreFirstStop(actualLap int, fs model.FirstStopStats, w Weights) (float64, string) {
	if float64(actualLap) >= fs.P25 && float64(actualLap) <= fs.P75 {
		return 0, fmt.Sprintf(
			"First stop L%d within historical window (L%.0f–L%.0f, median L%.0f, n=%d)",
			actualLap, fs.P25, fs.P75, fs.Median, fs.N)
	}
	distance := math.Max(fs.P25-float64(actualLap), float64(actualLap)-fs.P75)
	penalty := math.Min(distance*w.FirstStopOutsideIQRPenaltyPerLap, w.FirstStopMaxPenaltyS)
	return penalty, fmt.Sprintf(
		"First stop L%d is %.0f laps outside historical IQR (L%.0f–L%.0f), +%.1fs penalty",
		actualLap, distance, fs.P25, fs.P75, penalty)
}

// scoreSequenceMatch rewards matching a historically common compound
// sequence, scaled by how often that sequence was run.
func scoreSequenceMatch(seq []string, sequences []model.SequenceFrequency, roles map[string]string, w Weights) (float64, string) {
	normalized := seq
	if roles != nil {
		normalized = make([]string, len(seq))
		for i, c := range seq {
			if role, ok := roles[c]; ok {
				normalized[i] = role
			} else {
				normalized[i] = c
			}
		}
	}

	for _, sf := range sequences {
		if sequencesEqual(normalized, sf.Sequence) {
			bonus := -w.SequenceMatchBonusS * (sf.FrequencyPct / 100.0)
			return bonus, fmt.Sprintf("Matches historical sequence %s (%.0f%% of races)",
				strings.Join(sf.Sequence, " → "), sf.FrequencyPct)
		}
		if sequencesSameSet(normalized, sf.Sequence) {
			bonus := -w.SequenceMatchBonusS * w.SequencePartialMatchFactor * (sf.FrequencyPct / 100.0)
			return bonus, fmt.Sprintf("Partially matches historical %s (%.0f%%)",
				strings.Join(sf.Sequence, " → "), sf.FrequencyPct)
		}
	}
	return 0, ""
}

// scoreStopCount rewards matching the dominant historical stop count.
func scoreStopCount(stops int, dist model.StopCountDist, w Weights) (float64, string) {
	dominant, dominantPct := 1, dist.OneStopPct
	if dist.TwoStopPct > dominantPct {
		dominant, dominantPct = 2, dist.TwoStopPct
	}
	if stops == dominant && dominantPct > stopDominanceThresholdPct {
		bonus := -w.StopCountAlignmentBonusS * (float64(dominantPct) / 100.0)
		return bonus, fmt.Sprintf("%d-stop matches dominant historical pattern (%d%% of drivers)",
			stops, dominantPct)
	}
	return 0, ""
}

// undercutNote flags undercut-dependent shapes: a first stop earlier than
// the historical p25 leans on the undercut working. Note only, no time
// adjustment.
func undercutNote(s *model.Strategy, profile *model.HistoricalProfile) string {
	if s.Stops < 1 || len(s.PitStopLaps) == 0 {
		return ""
	}
	fs, uc := profile.FirstStopLap, profile.UndercutOvercut
	if fs == nil || uc == nil || uc.UndercutAttempts == 0 {
		return ""
	}
	if float64(s.PitStopLaps[0]) >= fs.P25 {
		return ""
	}
	return fmt.Sprintf(
		"First stop L%d is earlier than the historical p25 (L%.0f); shape relies on the undercut (historically %.0f%% successful over %d attempts)",
		s.PitStopLaps[0], fs.P25, uc.UndercutSuccessPct, uc.UndercutAttempts)
}

func sequencesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sequencesSameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	for i := range a {
		as[i] = strings.ToUpper(a[i])
		bs[i] = strings.ToUpper(b[i])
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
