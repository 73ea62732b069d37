package sim

import (
	"fmt"
	"strings"
)

// StintLengthExceededError marks a candidate shape that admits no legal
// stint partition. The candidate is dropped; the run only fails when no
// candidate survives.
type StintLengthExceededError struct {
	Compounds []string
	TotalLaps int
}

func (e *StintLengthExceededError) Error() string {
	return fmt.Sprintf("no legal stint partition of %d laps for sequence %s",
		e.TotalLaps, strings.Join(e.Compounds, " → "))
}

// NoLegalStrategyError means the whole candidate set was empty or dropped.
// Callers must surface Reason literally, never a partial strategy list.
type NoLegalStrategyError struct {
	Reason string
}

func (e *NoLegalStrategyError) Error() string {
	return "no legal strategy: " + e.Reason
}

// InsufficientCompoundDataError reports a compound the weather condition
// makes mandatory but for which no parameters were supplied, when the
// fallback substitution policy is disabled.
type InsufficientCompoundDataError struct {
	Code string
}

func (e *InsufficientCompoundDataError) Error() string {
	return fmt.Sprintf("no parameters for required compound %s", e.Code)
}
