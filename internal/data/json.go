package data

import (
	"encoding/json"
	"fmt"
	"os"

	"pitwall/internal/model"
)

// LoadHistoricalProfileJSON reads a pre-aggregated circuit profile produced
// upstream. The engine treats it as read-only.
func LoadHistoricalProfileJSON(path string) (*model.HistoricalProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p model.HistoricalProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse historical profile %s: %w", path, err)
	}
	return &p, nil
}
