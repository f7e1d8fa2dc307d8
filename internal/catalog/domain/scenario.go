package catalog

import (
	"errors"

	analysis "heatpump-insight/internal/analysis/domain"
)

// ErrScenarioNotFound is returned for unknown scenario ids.
var ErrScenarioNotFound = errors.New("catalog: scenario not found")

// Scenario is one telemetry snapshot paired with its installation's
// reference profile.
type Scenario struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	EventType  string                     `json:"event_type,omitempty"`
	Timestamp  string                     `json:"timestamp,omitempty"`
	PropertyID string                     `json:"property_id,omitempty"`
	Profile    *PropertyProfile           `json:"property_profile,omitempty"`
	Data       analysis.TelemetrySnapshot `json:"data"`
}

// Snapshot returns the scenario's telemetry, carrying the scenario
// timestamp onto the snapshot when the snapshot has none.
func (s Scenario) Snapshot() analysis.TelemetrySnapshot {
	snap := s.Data
	if snap.Timestamp == "" {
		snap.Timestamp = s.Timestamp
	}
	return snap
}

// Catalog is the read-only scenario and profile set, loaded once at
// process start and safely shared across concurrent analyses.
type Catalog struct {
	Profiles  []PropertyProfile `json:"profiles"`
	Scenarios []Scenario        `json:"scenarios"`

	byID map[string]int
}

// NewCatalog builds a catalog with its scenario index. Scenarios that
// carry a property id but no embedded profile are linked to the
// matching catalog profile.
func NewCatalog(profiles []PropertyProfile, scenarios []Scenario) *Catalog {
	c := &Catalog{
		Profiles:  profiles,
		Scenarios: scenarios,
		byID:      make(map[string]int, len(scenarios)),
	}
	byProperty := make(map[string]int, len(profiles))
	for i, profile := range profiles {
		if profile.PropertyID != "" {
			byProperty[profile.PropertyID] = i
		}
	}
	for i := range scenarios {
		scenario := &c.Scenarios[i]
		if scenario.ID != "" {
			c.byID[scenario.ID] = i
		}
		if scenario.Profile == nil && scenario.PropertyID != "" {
			if j, ok := byProperty[scenario.PropertyID]; ok {
				scenario.Profile = &c.Profiles[j]
			}
		}
	}
	return c
}

// Scenario looks up a scenario by id.
func (c *Catalog) Scenario(id string) (Scenario, error) {
	if c == nil {
		return Scenario{}, ErrScenarioNotFound
	}
	index, ok := c.byID[id]
	if !ok {
		return Scenario{}, ErrScenarioNotFound
	}
	return c.Scenarios[index], nil
}
