package model

// HistoricalProfile is the read-only circuit history handed in by the
// historical-statistics collaborator. The engine never mutates it; any field
// may be nil/empty when the underlying data was insufficient.
type HistoricalProfile struct {
	CircuitKey              string              `json:"circuit_key,omitempty"`
	SeasonsUsed             []int               `json:"seasons_used,omitempty"`
	RacesUsed               int                 `json:"races_used"`
	FirstStopLap            *FirstStopStats     `json:"first_stop_lap,omitempty"`
	StopCountDistribution   *StopCountDist      `json:"stop_count_distribution,omitempty"`
	CommonStrategySequences []SequenceFrequency `json:"common_strategy_sequences,omitempty"`
	UndercutOvercut         *UndercutStats      `json:"undercut_overcut,omitempty"`
	Notes                   []string            `json:"notes,omitempty"`
}

// FirstStopStats summarises when the field historically makes its first stop.
type FirstStopStats struct {
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	N      int     `json:"n"`
}

// StopCountDist is the historical stop-count split, in percent of drivers.
type StopCountDist struct {
	OneStopPct int `json:"one_stop_pct"`
	TwoStopPct int `json:"two_stop_pct"`
}

// SequenceFrequency records how often a compound sequence was run,
// as a percentage of classified race strategies.
type SequenceFrequency struct {
	Sequence     []string `json:"sequence"`
	FrequencyPct float64  `json:"frequency_pct"`
}

// UndercutStats summarises historical undercut/overcut attempts.
type UndercutStats struct {
	UndercutAttempts   int     `json:"undercut_attempts"`
	UndercutSuccessPct float64 `json:"undercut_success_pct"`
	AvgPositionsGained float64 `json:"avg_positions_gained"`
}
