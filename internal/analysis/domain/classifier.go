package analysis

import "fmt"

// Classification thresholds. Fixed rather than scaled from the property
// profile's nameplate size or annual SPF.
const (
	faultCOPThreshold   = 1.8
	deficitMargin       = 2.0
	baselinePowerKW     = 3.0
	highPowerFactor     = 1.5
	cheapRateLastHour   = 5
	cheapPriceThreshold = 0.12
	coldSnapMargin      = 5.0
	coldWeatherCOPFloor = 2.0
	coldWeatherCOPCeil  = 2.8
)

// rule pairs a predicate with the classification it produces. Rules are
// evaluated in declaration order and the first match wins: anomalies
// before smart behaviours before the default.
type rule struct {
	matches func(TelemetrySnapshot) bool
	build   func(TelemetrySnapshot) PatternClassification
}

var rules = []rule{
	{
		matches: func(s TelemetrySnapshot) bool {
			return s.Efficiency() < faultCOPThreshold && s.Outdoor() > 0
		},
		build: func(s TelemetrySnapshot) PatternClassification {
			return PatternClassification{
				PatternType: PatternEfficiencyAnomaly,
				Severity:    SeverityHigh,
				Confidence:  ConfidenceHigh,
				Trigger:     fmt.Sprintf("COP of %.1f is unusually low for %.1f°C", s.Efficiency(), s.Outdoor()),
				IsAnomaly:   true,
				Category:    CategoryPotentialFault,
			}
		},
	},
	{
		matches: func(s TelemetrySnapshot) bool {
			return s.Indoor() < s.Target()-deficitMargin && s.HeatPumpStatus == StatusHeating
		},
		build: func(s TelemetrySnapshot) PatternClassification {
			return PatternClassification{
				PatternType: PatternTemperatureDeficit,
				Severity:    SeverityMedium,
				Confidence:  ConfidenceHigh,
				Trigger:     fmt.Sprintf("Indoor temp %.1f°C is %.1f°C below target", s.Indoor(), s.Target()-s.Indoor()),
				IsAnomaly:   true,
				Category:    CategoryPerformanceIssue,
			}
		},
	},
	{
		matches: func(s TelemetrySnapshot) bool {
			return s.PowerKW() > baselinePowerKW*highPowerFactor
		},
		build: func(s TelemetrySnapshot) PatternClassification {
			return PatternClassification{
				PatternType: PatternHighPowerConsumption,
				Severity:    SeverityMedium,
				Confidence:  ConfidenceMedium,
				Trigger:     fmt.Sprintf("Power usage %.1fkW exceeds typical range", s.PowerKW()),
				IsAnomaly:   true,
				Category:    CategoryEfficiencyConcern,
			}
		},
	},
	{
		matches: func(s TelemetrySnapshot) bool {
			hour := s.Hour()
			return hour >= 0 && hour <= cheapRateLastHour && s.CurrentPrice() < cheapPriceThreshold
		},
		build: func(s TelemetrySnapshot) PatternClassification {
			return PatternClassification{
				PatternType: PatternTariffOptimization,
				Severity:    SeverityNone,
				Confidence:  ConfidenceHigh,
				Trigger:     fmt.Sprintf("Operating during cheap-rate hours at £%.2f/kWh", s.CurrentPrice()),
				IsAnomaly:   false,
				Category:    CategorySmartBehavior,
			}
		},
	},
	{
		matches: func(s TelemetrySnapshot) bool {
			return s.VPPSignal != "" && s.Indoor() < s.Target()
		},
		build: func(s TelemetrySnapshot) PatternClassification {
			return PatternClassification{
				PatternType: PatternVPPCurtailment,
				Severity:    SeverityNone,
				Confidence:  ConfidenceHigh,
				Trigger:     fmt.Sprintf("Grid demand response '%s' active at %.1f°C indoors", s.VPPSignal, s.Indoor()),
				IsAnomaly:   false,
				Category:    CategorySmartBehavior,
			}
		},
	},
	{
		matches: func(s TelemetrySnapshot) bool {
			return s.WeatherForecastTemp != nil && *s.WeatherForecastTemp < s.Outdoor()-coldSnapMargin
		},
		build: func(s TelemetrySnapshot) PatternClassification {
			return PatternClassification{
				PatternType: PatternPredictiveHeating,
				Severity:    SeverityNone,
				Confidence:  ConfidenceHigh,
				Trigger:     fmt.Sprintf("Pre-heating before forecast drop to %.1f°C", *s.WeatherForecastTemp),
				IsAnomaly:   false,
				Category:    CategorySmartBehavior,
			}
		},
	},
	{
		matches: func(s TelemetrySnapshot) bool {
			return s.Outdoor() < 0 && s.Efficiency() >= coldWeatherCOPFloor && s.Efficiency() < coldWeatherCOPCeil
		},
		build: func(s TelemetrySnapshot) PatternClassification {
			return PatternClassification{
				PatternType: PatternColdWeatherOperation,
				Severity:    SeverityNone,
				Confidence:  ConfidenceHigh,
				Trigger:     fmt.Sprintf("Normal efficiency for %.1f°C weather", s.Outdoor()),
				IsAnomaly:   false,
				Category:    CategoryNormalOperation,
			}
		},
	},
}

// Classify maps a validated snapshot to exactly one pattern. Pure and
// total: every snapshot that passes Validate classifies, falling back
// to normal operation when no rule matches.
func Classify(s TelemetrySnapshot) PatternClassification {
	for _, r := range rules {
		if r.matches(s) {
			return r.build(s)
		}
	}
	return PatternClassification{
		PatternType: PatternNormalOperation,
		Severity:    SeverityNone,
		Confidence:  ConfidenceMedium,
		Trigger:     "Standard heating operation",
		IsAnomaly:   false,
		Category:    CategoryNormalOperation,
	}
}
