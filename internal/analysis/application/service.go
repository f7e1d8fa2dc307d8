package application

import (
	"context"
	"errors"
	"time"

	analysis "heatpump-insight/internal/analysis/domain"
	catalog "heatpump-insight/internal/catalog/domain"
	"heatpump-insight/internal/narrative"
	"heatpump-insight/internal/observability/metrics"
)

// Narrator produces the plain-language explanation for an analysis.
type Narrator interface {
	Narrate(ctx context.Context, s analysis.TelemetrySnapshot, c analysis.PatternClassification, b analysis.BenefitEstimate) narrative.Narrative
}

// Service is the analysis orchestrator: the sole public entry point
// composing classification, benefit estimation, guidance, transparency
// and narration into one result.
type Service struct {
	narrator Narrator
}

// NewService constructs the orchestrator.
func NewService(narrator Narrator) (*Service, error) {
	if narrator == nil {
		return nil, errors.New("analysis: nil narrator")
	}
	return &Service{narrator: narrator}, nil
}

// AnalyzeScenario runs one scenario through the full pipeline. It
// fails only when a required snapshot field is absent; every later
// stage is total.
func (s *Service) AnalyzeScenario(ctx context.Context, scenario catalog.Scenario) (*analysis.AnalysisResult, error) {
	if s == nil {
		return nil, errors.New("analysis: nil service")
	}
	snapshot := scenario.Snapshot()
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	classification := analysis.Classify(snapshot)
	benefit := analysis.EstimateBenefit(snapshot, classification)
	guidance := analysis.ResolveGuidance(classification, snapshot)
	report := analysis.AssembleTransparency(snapshot, classification, benefit, baselineFrom(scenario.Profile))

	narrateStart := time.Now()
	story := s.narrator.Narrate(ctx, snapshot, classification, benefit)
	metrics.ObserveNarrative(story.Source, time.Since(narrateStart))

	metrics.ObserveAnalysis(string(classification.PatternType), "", time.Since(start))
	metrics.IncGuidance(string(guidance.Tier))

	name := scenario.Name
	if name == "" {
		name = "Unknown Scenario"
	}
	return &analysis.AnalysisResult{
		ScenarioName: name,
		Pattern:      classification,
		Explanation:  story.Text,
		WordCount:    story.WordCount,
		Guidance:     guidance,
		Benefit:      benefit,
		Transparency: report,
	}, nil
}

func baselineFrom(profile *catalog.PropertyProfile) *analysis.PropertyBaseline {
	if profile == nil {
		return nil
	}
	return &analysis.PropertyBaseline{
		HouseType: profile.PropertyDetails.HouseType,
		Brand:     profile.HeatPumpSpecs.Brand,
		Model:     profile.HeatPumpSpecs.Model,
		SizeKW:    profile.HeatPumpSpecs.SizeKW,
		AnnualSPF: profile.PerformanceData.AnnualSPF,
	}
}
