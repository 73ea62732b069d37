package sim

import "fmt"

// PitLossCost returns the total time cost of stops pit stops.
// Pure; the only failure mode is negative input.
func PitLossCost(pitLossSeconds float64, stops int) (float64, error) {
	if pitLossSeconds < 0 {
		return 0, fmt.Errorf("pit_loss_seconds must be >= 0, got %v", pitLossSeconds)
	}
	if stops < 0 {
		return 0, fmt.Errorf("stops must be >= 0, got %d", stops)
	}
	return pitLossSeconds * float64(stops), nil
}
