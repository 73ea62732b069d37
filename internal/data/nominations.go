package data

import (
	"strings"

	"pitwall/internal/model"
)

// Nomination is Pirelli's per-race selection of three slick compounds.
type Nomination struct {
	Hard   string `json:"hard"`
	Medium string `json:"medium"`
	Soft   string `json:"soft"`
}

// Roles returns the compound-code → role mapping used for historical
// sequence matching.
func (n Nomination) Roles() map[string]string {
	return map[string]string{n.Hard: "HARD", n.Medium: "MEDIUM", n.Soft: "SOFT"}
}

// Codes lists the nominated slicks hard → soft.
func (n Nomination) Codes() []string {
	return []string{n.Hard, n.Medium, n.Soft}
}

type nominationKey struct {
	Year    int
	Circuit string
}

// Source: Pirelli pre-race announcements. 2024 is verified; later seasons
// fall back to the most recent entry until announced.
var compoundNominations = map[nominationKey]Nomination{
	{2024, "bahrain"}:           {"C1", "C2", "C3"},
	{2024, "jeddah"}:            {"C2", "C3", "C4"},
	{2024, "melbourne"}:         {"C2", "C3", "C4"},
	{2024, "suzuka"}:            {"C1", "C2", "C3"},
	{2024, "shanghai"}:          {"C2", "C3", "C4"},
	{2024, "miami"}:             {"C2", "C3", "C4"},
	{2024, "imola"}:             {"C2", "C3", "C4"},
	{2024, "monaco"}:            {"C3", "C4", "C5"},
	{2024, "montreal"}:          {"C3", "C4", "C5"},
	{2024, "barcelona"}:         {"C1", "C2", "C3"},
	{2024, "spielberg"}:         {"C2", "C3", "C4"},
	{2024, "silverstone"}:       {"C1", "C2", "C3"},
	{2024, "budapest"}:          {"C2", "C3", "C4"},
	{2024, "spa-francorchamps"}: {"C1", "C2", "C3"},
	{2024, "zandvoort"}:         {"C1", "C2", "C3"},
	{2024, "monza"}:             {"C2", "C3", "C4"},
	{2024, "baku"}:              {"C2", "C3", "C4"},
	{2024, "singapore"}:         {"C3", "C4", "C5"},
	{2024, "austin"}:            {"C2", "C3", "C4"},
	{2024, "mexico city"}:       {"C2", "C3", "C4"},
	{2024, "sao paulo"}:         {"C2", "C3", "C4"},
	{2024, "las vegas"}:         {"C2", "C3", "C4"},
	{2024, "lusail"}:            {"C1", "C2", "C3"},
	{2024, "yas marina"}:        {"C2", "C3", "C4"},
}

const earliestNominationYear = 2023

// NormalizeCircuitKey lowercases and trims a circuit name for lookup.
func NormalizeCircuitKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetNomination returns the compound nomination for a circuit and year,
// falling back to the most recent known year, then to the generic
// C2/C3/C4 selection.
func GetNomination(year int, circuitKey string) Nomination {
	key := NormalizeCircuitKey(circuitKey)
	for y := year; y >= earliestNominationYear; y-- {
		if n, ok := compoundNominations[nominationKey{y, key}]; ok {
			return n
		}
	}
	return Nomination{Hard: "C2", Medium: "C3", Soft: "C4"}
}

// NominatedCompounds narrows a full catalogue to the slicks nominated for a
// race, keeping any wet compounds present. Missing nominated codes are just
// skipped; the engine decides whether what remains is enough.
func NominatedCompounds(catalogue map[string]model.CompoundParams, n Nomination) map[string]model.CompoundParams {
	out := make(map[string]model.CompoundParams, 5)
	for _, code := range n.Codes() {
		if p, ok := catalogue[code]; ok {
			out[code] = p
		}
	}
	for code, p := range catalogue {
		if model.IsWetCompound(code) {
			out[code] = p
		}
	}
	return out
}
