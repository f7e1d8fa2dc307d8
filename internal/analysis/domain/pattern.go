package analysis

// PatternType is the closed set of classification outcomes.
type PatternType string

const (
	PatternEfficiencyAnomaly    PatternType = "efficiency_anomaly"
	PatternTemperatureDeficit   PatternType = "temperature_deficit"
	PatternHighPowerConsumption PatternType = "high_power_consumption"
	PatternTariffOptimization   PatternType = "tariff_optimization"
	PatternVPPCurtailment       PatternType = "vpp_curtailment"
	PatternPredictiveHeating    PatternType = "predictive_heating"
	PatternColdWeatherOperation PatternType = "cold_weather_operation"
	PatternNormalOperation      PatternType = "normal_operation"
)

// AllPatterns lists every pattern type a classification can produce.
var AllPatterns = []PatternType{
	PatternEfficiencyAnomaly,
	PatternTemperatureDeficit,
	PatternHighPowerConsumption,
	PatternTariffOptimization,
	PatternVPPCurtailment,
	PatternPredictiveHeating,
	PatternColdWeatherOperation,
	PatternNormalOperation,
}

// Valid returns true when the pattern is a known outcome.
func (p PatternType) Valid() bool {
	for _, known := range AllPatterns {
		if p == known {
			return true
		}
	}
	return false
}

// Severity levels for a classified pattern.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Confidence levels for a classified pattern.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Pattern categories.
const (
	CategoryPotentialFault    = "potential_fault"
	CategoryPerformanceIssue  = "performance_issue"
	CategoryEfficiencyConcern = "efficiency_concern"
	CategorySmartBehavior     = "smart_behavior"
	CategoryNormalOperation   = "normal_operation"
)

// PatternClassification is the outcome of classifying one snapshot.
type PatternClassification struct {
	PatternType PatternType `json:"pattern_type"`
	Severity    Severity    `json:"severity"`
	Confidence  Confidence  `json:"confidence"`
	Trigger     string      `json:"trigger"`
	IsAnomaly   bool        `json:"is_anomaly"`
	Category    string      `json:"category"`
}
