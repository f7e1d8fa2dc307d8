package catalog

import (
	"errors"
	"testing"

	analysis "heatpump-insight/internal/analysis/domain"
)

func f64(v float64) *float64 { return &v }

func TestNewCatalogLinksProfiles(t *testing.T) {
	profiles := []PropertyProfile{{PropertyID: "EOH0423", ProfileName: "Average ASHP"}}
	scenarios := []Scenario{
		{ID: "EOH0423_cold_day", PropertyID: "EOH0423"},
		{ID: "orphan", PropertyID: "EOH9999"},
	}
	cat := NewCatalog(profiles, scenarios)

	linked, err := cat.Scenario("EOH0423_cold_day")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if linked.Profile == nil || linked.Profile.ProfileName != "Average ASHP" {
		t.Fatalf("expected linked profile, got %+v", linked.Profile)
	}

	orphan, err := cat.Scenario("orphan")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if orphan.Profile != nil {
		t.Fatal("unknown property id must not link a profile")
	}
}

func TestCatalogScenarioNotFound(t *testing.T) {
	cat := NewCatalog(nil, []Scenario{{ID: "known"}})
	if _, err := cat.Scenario("unknown"); !errors.Is(err, ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestScenarioSnapshotCarriesTimestamp(t *testing.T) {
	scenario := Scenario{
		ID:        "ts",
		Timestamp: "2024-01-15T02:30:00",
		Data:      analysis.TelemetrySnapshot{IndoorTemp: f64(19.0)},
	}
	snap := scenario.Snapshot()
	if snap.Timestamp != "2024-01-15T02:30:00" {
		t.Fatalf("expected scenario timestamp, got %q", snap.Timestamp)
	}

	scenario.Data.Timestamp = "2024-02-01T10:00:00"
	snap = scenario.Snapshot()
	if snap.Timestamp != "2024-02-01T10:00:00" {
		t.Fatalf("snapshot timestamp must win, got %q", snap.Timestamp)
	}
}
