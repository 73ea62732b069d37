package historical

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"pitwall/internal/model"
)

// Minimum sample sizes for meaningful statistics.
const (
	minDriversForIQR   = 4
	maxCommonSequences = 3
)

// StopRecord is one classified driver result from a past race, the raw
// input for profile aggregation. Upstream session parsing produces these;
// the engine itself only ever sees the finished profile.
type StopRecord struct {
	Year         int      `json:"year"`
	Driver       string   `json:"driver"`
	Stops        int      `json:"stops"`
	FirstStopLap int      `json:"first_stop_lap"`
	Sequence     []string `json:"sequence"`
}

// BuildProfile aggregates raw stop records into a read-only circuit profile.
// Sub-statistics that lack enough data are left nil with an explanatory note
// rather than fabricated.
func BuildProfile(circuitKey string, records []StopRecord) *model.HistoricalProfile {
	p := &model.HistoricalProfile{CircuitKey: circuitKey}
	if len(records) == 0 {
		p.Notes = append(p.Notes, "No historical races loaded. Profile is empty.")
		return p
	}

	seasons := map[int]bool{}
	for _, r := range records {
		seasons[r.Year] = true
	}
	for y := range seasons {
		p.SeasonsUsed = append(p.SeasonsUsed, y)
	}
	sort.Ints(p.SeasonsUsed)
	p.RacesUsed = len(p.SeasonsUsed)

	p.FirstStopLap = firstStopStats(records, &p.Notes)
	p.StopCountDistribution = stopCountDist(records)
	p.CommonStrategySequences = commonSequences(records)

	p.Notes = append(p.Notes, fmt.Sprintf(
		"Computed from %d driver result(s) across %d season(s).", len(records), len(p.SeasonsUsed)))
	return p
}

func firstStopStats(records []StopRecord, notes *[]string) *model.FirstStopStats {
	var laps []float64
	for _, r := range records {
		if r.Stops >= 1 && r.FirstStopLap > 0 {
			laps = append(laps, float64(r.FirstStopLap))
		}
	}
	if len(laps) < minDriversForIQR {
		*notes = append(*notes, fmt.Sprintf(
			"First-stop stats skipped: %d driver(s) with a stop, need %d.", len(laps), minDriversForIQR))
		return nil
	}
	sort.Float64s(laps)
	return &model.FirstStopStats{
		Median: stat.Quantile(0.5, stat.Empirical, laps, nil),
		P25:    stat.Quantile(0.25, stat.Empirical, laps, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, laps, nil),
		N:      len(laps),
	}
}

func stopCountDist(records []StopRecord) *model.StopCountDist {
	one, two := 0, 0
	for _, r := range records {
		switch r.Stops {
		case 1:
			one++
		case 2:
			two++
		}
	}
	n := len(records)
	return &model.StopCountDist{
		OneStopPct: one * 100 / n,
		TwoStopPct: two * 100 / n,
	}
}

func commonSequences(records []StopRecord) []model.SequenceFrequency {
	counts := map[string]int{}
	classified := 0
	for _, r := range records {
		if len(r.Sequence) == 0 {
			continue
		}
		key := strings.ToUpper(strings.Join(r.Sequence, "|"))
		counts[key]++
		classified++
	}
	if classified == 0 {
		return nil
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// Most frequent first; alphabetical among equals for stable output.
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > maxCommonSequences {
		keys = keys[:maxCommonSequences]
	}

	out := make([]model.SequenceFrequency, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.SequenceFrequency{
			Sequence:     strings.Split(k, "|"),
			FrequencyPct: float64(counts[k]) * 100 / float64(classified),
		})
	}
	return out
}
