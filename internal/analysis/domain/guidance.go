package analysis

import "fmt"

// Tier is the three-level guidance severity.
type Tier string

const (
	TierNormal Tier = "normal"
	TierCheck  Tier = "check"
	TierFault  Tier = "fault"
)

// GuidanceRecord is the tiered recommendation for a classified pattern.
type GuidanceRecord struct {
	Tier            Tier   `json:"tier"`
	Status          string `json:"status"`
	Action          string `json:"action"`
	Detail          string `json:"detail"`
	ConfidenceLabel string `json:"confidence"`
}

// guidanceEntry is a static table row; detail interpolates live
// snapshot values at resolution time.
type guidanceEntry struct {
	tier       Tier
	status     string
	action     string
	confidence string
	detail     func(TelemetrySnapshot) string
}

const (
	statusNormal = "This is normal winter behaviour"
	statusCheck  = "Consider checking your insulation"
	statusFault  = "This might indicate a fault"
)

var guidanceTable = map[PatternType]guidanceEntry{
	PatternTariffOptimization: {
		tier:       TierNormal,
		status:     statusNormal,
		action:     "No action needed",
		confidence: "Definitely normal",
		detail: func(TelemetrySnapshot) string {
			return "Your smart tariff is working as designed to minimize costs."
		},
	},
	PatternVPPCurtailment: {
		tier:       TierNormal,
		status:     statusNormal,
		action:     "No action needed",
		confidence: "Definitely normal",
		detail: func(TelemetrySnapshot) string {
			return "Your system is helping balance the grid during peak demand. Temperature will recover automatically."
		},
	},
	PatternPredictiveHeating: {
		tier:       TierNormal,
		status:     statusNormal,
		action:     "No action needed",
		confidence: "Definitely normal",
		detail: func(TelemetrySnapshot) string {
			return "Your system is optimizing for upcoming weather. This is more efficient than reactive heating."
		},
	},
	PatternColdWeatherOperation: {
		tier:       TierNormal,
		status:     statusNormal,
		action:     "No action needed",
		confidence: "Definitely normal",
		detail: func(s TelemetrySnapshot) string {
			return fmt.Sprintf("Heat pumps use more electricity in very cold weather (%.1f°C), but remain cost-effective.", s.Outdoor())
		},
	},
	PatternTemperatureDeficit: {
		tier:       TierCheck,
		status:     statusCheck,
		action:     "Check for drafts or poor insulation",
		confidence: "This might need attention",
		detail: func(TelemetrySnapshot) string {
			return "Your home is struggling to maintain temperature. Improving insulation could help your heat pump work more efficiently."
		},
	},
	PatternHighPowerConsumption: {
		tier:       TierCheck,
		status:     statusCheck,
		action:     "Review insulation and radiator sizing",
		confidence: "This might need attention",
		detail: func(s TelemetrySnapshot) string {
			return fmt.Sprintf("Power usage (%.1fkW) is higher than typical. Better insulation could reduce this.", s.PowerKW())
		},
	},
	PatternEfficiencyAnomaly: {
		tier:       TierFault,
		status:     statusFault,
		action:     "Book a service check with your installer",
		confidence: "This might indicate a fault",
		detail: func(s TelemetrySnapshot) string {
			return fmt.Sprintf("Efficiency (%.1f) is lower than expected for %.1f°C. Could indicate refrigerant levels, sensor issues, or airflow problems.", s.Efficiency(), s.Outdoor())
		},
	},
}

// defaultGuidance covers pattern types outside the table, including
// normal operation.
var defaultGuidance = guidanceEntry{
	tier:       TierNormal,
	status:     statusNormal,
	action:     "No action needed",
	confidence: "Probably normal",
	detail: func(TelemetrySnapshot) string {
		return "Your heat pump is operating within expected parameters."
	},
}

// ResolveGuidance maps a classification to its tiered recommendation.
// Tier is a strict function of pattern type.
func ResolveGuidance(c PatternClassification, s TelemetrySnapshot) GuidanceRecord {
	entry, ok := guidanceTable[c.PatternType]
	if !ok {
		entry = defaultGuidance
	}
	return GuidanceRecord{
		Tier:            entry.tier,
		Status:          entry.status,
		Action:          entry.action,
		Detail:          entry.detail(s),
		ConfidenceLabel: entry.confidence,
	}
}
