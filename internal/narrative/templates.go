package narrative

import (
	"fmt"

	analysis "heatpump-insight/internal/analysis/domain"
)

// fallbackDefault covers pattern types without a dedicated template.
const fallbackDefault = "Your heat pump is operating normally."

// fallbackTemplates is the per-pattern explanation table used verbatim
// whenever the collaborator is unavailable.
var fallbackTemplates = map[analysis.PatternType]func(analysis.TelemetrySnapshot, analysis.BenefitEstimate) string{
	analysis.PatternTariffOptimization: func(s analysis.TelemetrySnapshot, b analysis.BenefitEstimate) string {
		return fmt.Sprintf("Your smart tariff shifted heating to cheap-rate hours, saving you £%.2f today. The system ran efficiently despite %.1f°C outside.",
			b.CostSavings, s.Outdoor())
	},
	analysis.PatternVPPCurtailment: func(s analysis.TelemetrySnapshot, b analysis.BenefitEstimate) string {
		return fmt.Sprintf("The grid asked your heat pump to reduce during peak demand. Your house will reach %.1f°C by morning as usual. This helps prevent blackouts.",
			s.Target())
	},
	analysis.PatternPredictiveHeating: func(s analysis.TelemetrySnapshot, b analysis.BenefitEstimate) string {
		forecast := -8.0
		if s.WeatherForecastTemp != nil {
			forecast = *s.WeatherForecastTemp
		}
		return fmt.Sprintf("Your system is pre-heating before tonight's cold snap (%.1f°C forecast). This uses less energy than playing catch-up later.",
			forecast)
	},
	analysis.PatternColdWeatherOperation: func(s analysis.TelemetrySnapshot, b analysis.BenefitEstimate) string {
		return fmt.Sprintf("Your heat pump is using more electricity because outdoor temperature dropped to %.1f°C. This is normal winter behaviour - still cheaper than gas.",
			s.Outdoor())
	},
	analysis.PatternEfficiencyAnomaly: func(s analysis.TelemetrySnapshot, b analysis.BenefitEstimate) string {
		return fmt.Sprintf("Your system's efficiency (%.1f) is lower than expected for %.1f°C weather. Consider checking your insulation or booking a service check.",
			s.Efficiency(), s.Outdoor())
	},
}

func fallbackText(pattern analysis.PatternType, s analysis.TelemetrySnapshot, b analysis.BenefitEstimate) string {
	if build, ok := fallbackTemplates[pattern]; ok {
		return build(s, b)
	}
	return fallbackDefault
}
