package interfaces

import (
	"bytes"
	"testing"

	analysis "heatpump-insight/internal/analysis/domain"
)

func f64(v float64) *float64 { return &v }

func sampleResult() *analysis.AnalysisResult {
	snapshot := analysis.TelemetrySnapshot{
		IndoorTemp:         f64(19.8),
		OutdoorTemp:        f64(-5.0),
		COP:                f64(2.0),
		PowerConsumptionKW: f64(3.5),
		Timestamp:          "2024-01-20T08:00:00",
	}
	classification := analysis.Classify(snapshot)
	benefit := analysis.EstimateBenefit(snapshot, classification)
	return &analysis.AnalysisResult{
		ScenarioName: "Cold Weather Performance",
		Pattern:      classification,
		Explanation:  "Your heat pump worked harder because it was very cold outside.",
		WordCount:    11,
		Guidance:     analysis.ResolveGuidance(classification, snapshot),
		Benefit:      benefit,
		Transparency: analysis.AssembleTransparency(snapshot, classification, benefit, nil),
	}
}

func TestBuildReportPDF(t *testing.T) {
	data, err := BuildReportPDF(sampleResult())
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected PDF header")
	}
}

func TestBuildReportPDFNilResult(t *testing.T) {
	if _, err := BuildReportPDF(nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestBuildReportXLSX(t *testing.T) {
	data, err := BuildReportXLSX(sampleResult())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	// xlsx is a zip container
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("expected zip header")
	}
}

func TestBuildReportXLSXNilResult(t *testing.T) {
	if _, err := BuildReportXLSX(nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestReportSectionsCoverTransparency(t *testing.T) {
	sections := reportSections(sampleResult())
	titles := make(map[string]bool, len(sections))
	for _, section := range sections {
		titles[section.title] = true
		if len(section.rows) == 0 {
			t.Fatalf("section %s has no rows", section.title)
		}
		for _, row := range section.rows {
			if row.label == "" {
				t.Fatalf("section %s has an unlabeled row", section.title)
			}
		}
	}
	for _, want := range []string{"Detection", "Measurements", "Context", "Property Baseline", "Calculated Benefits"} {
		if !titles[want] {
			t.Fatalf("missing section %s", want)
		}
	}
}
