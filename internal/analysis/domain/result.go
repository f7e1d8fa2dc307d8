package analysis

// AnalysisResult aggregates one complete scenario analysis. Created
// fresh per orchestrator call, immutable, never persisted.
type AnalysisResult struct {
	ScenarioName string                `json:"scenario_name"`
	Pattern      PatternClassification `json:"pattern_detection"`
	Explanation  string                `json:"explanation"`
	WordCount    int                   `json:"word_count"`
	Guidance     GuidanceRecord        `json:"actionable_guidance"`
	Benefit      BenefitEstimate       `json:"benefits"`
	Transparency TransparencyReport    `json:"transparency_data"`
}
