package analysis

import (
	"fmt"
	"strings"
)

// Property baseline defaults used when no profile is supplied.
const (
	DefaultHeatPumpSizeKW = 7.0
	DefaultAnnualSPF      = 2.8
)

// PropertyBaseline carries the profile fields the transparency report
// presents. A nil baseline falls back to the defaults above.
type PropertyBaseline struct {
	HouseType string
	Brand     string
	Model     string
	SizeKW    float64
	AnnualSPF float64
}

// DetectionDetails restates the classification outcome.
type DetectionDetails struct {
	PatternDetected     string `json:"pattern_detected"`
	DetectionConfidence string `json:"detection_confidence"`
	IsAnomaly           string `json:"is_anomaly"`
	Trigger             string `json:"trigger"`
}

// Measurements restates the snapshot readings.
type Measurements struct {
	IndoorTemperature  string `json:"indoor_temperature"`
	TargetTemperature  string `json:"target_temperature"`
	TemperatureGap     string `json:"temperature_gap"`
	OutdoorTemperature string `json:"outdoor_temperature"`
	SystemEfficiency   string `json:"system_efficiency_cop"`
	COPInterpretation  string `json:"cop_interpretation"`
	PowerConsumption   string `json:"power_consumption"`
	FlowTemperature    string `json:"flow_temperature"`
}

// Context restates pricing, grid and weather inputs.
type Context struct {
	Timestamp        string `json:"timestamp"`
	ElectricityPrice string `json:"electricity_price"`
	PeakPrice        string `json:"peak_price"`
	GridSignal       string `json:"grid_signal"`
	WeatherForecast  string `json:"weather_forecast"`
}

// PropertySection restates the installation baseline.
type PropertySection struct {
	PropertyType            string `json:"property_type"`
	HeatPump                string `json:"heat_pump"`
	HeatPumpSize            string `json:"heat_pump_size"`
	TypicalAnnualEfficiency string `json:"typical_annual_efficiency"`
}

// CalculatedBenefits restates the benefit estimate.
type CalculatedBenefits struct {
	CostSavingsToday string `json:"cost_savings_today"`
	CarbonAvoided    string `json:"carbon_avoided"`
	EquivalentTo     string `json:"equivalent_to"`
}

// TransparencyReport shows all the data that led to a conclusion. It is
// a re-presentation of values computed elsewhere in the same analysis,
// never a recomputation.
type TransparencyReport struct {
	DetectionDetails   DetectionDetails   `json:"detection_details"`
	Measurements       Measurements       `json:"measurements"`
	Context            Context            `json:"context"`
	PropertyDetails    PropertySection    `json:"property_details"`
	CalculatedBenefits CalculatedBenefits `json:"calculated_benefits"`
	WhyThisConclusion  string             `json:"why_this_conclusion"`
}

// AssembleTransparency builds the report from already-computed values.
func AssembleTransparency(s TelemetrySnapshot, c PatternClassification, b BenefitEstimate, baseline *PropertyBaseline) TransparencyReport {
	isAnomaly := "No"
	if c.IsAnomaly {
		isAnomaly = "Yes"
	}

	peakPrice := "N/A"
	if s.PricePeak != nil {
		peakPrice = fmt.Sprintf("£%.2f/kWh", *s.PricePeak)
	}
	gridSignal := "None"
	if s.VPPSignal != "" {
		gridSignal = s.VPPSignal
	}
	forecast := "N/A"
	if s.WeatherForecastTemp != nil {
		forecast = fmt.Sprintf("%.1f°C", *s.WeatherForecastTemp)
	}
	timestamp := s.Timestamp
	if timestamp == "" {
		timestamp = "Unknown"
	}

	houseType := "Unknown"
	heatPump := "Unknown"
	sizeKW := DefaultHeatPumpSizeKW
	annualSPF := DefaultAnnualSPF
	if baseline != nil {
		if baseline.HouseType != "" {
			houseType = baseline.HouseType
		}
		if baseline.Brand != "" {
			heatPump = strings.TrimSpace(baseline.Brand + " " + baseline.Model)
		}
		if baseline.SizeKW > 0 {
			sizeKW = baseline.SizeKW
		}
		if baseline.AnnualSPF > 0 {
			annualSPF = baseline.AnnualSPF
		}
	}

	equivalent := "N/A"
	if b.CarbonKg > 0 {
		equivalent = fmt.Sprintf("%.1f trees planted", b.CarbonKg/25)
	}

	return TransparencyReport{
		DetectionDetails: DetectionDetails{
			PatternDetected:     patternLabel(c.PatternType),
			DetectionConfidence: titleWord(string(c.Confidence)),
			IsAnomaly:           isAnomaly,
			Trigger:             c.Trigger,
		},
		Measurements: Measurements{
			IndoorTemperature:  fmt.Sprintf("%.1f°C", s.Indoor()),
			TargetTemperature:  fmt.Sprintf("%.1f°C", s.Target()),
			TemperatureGap:     fmt.Sprintf("%.1f°C", s.Target()-s.Indoor()),
			OutdoorTemperature: fmt.Sprintf("%.1f°C", s.Outdoor()),
			SystemEfficiency:   fmt.Sprintf("%.1f", s.Efficiency()),
			COPInterpretation:  InterpretCOP(s.Efficiency()),
			PowerConsumption:   fmt.Sprintf("%.1f kW", s.PowerKW()),
			FlowTemperature:    fmt.Sprintf("%.1f°C", s.Flow()),
		},
		Context: Context{
			Timestamp:        timestamp,
			ElectricityPrice: fmt.Sprintf("£%.2f/kWh", s.CurrentPrice()),
			PeakPrice:        peakPrice,
			GridSignal:       gridSignal,
			WeatherForecast:  forecast,
		},
		PropertyDetails: PropertySection{
			PropertyType:            houseType,
			HeatPump:                heatPump,
			HeatPumpSize:            fmt.Sprintf("%.1f kW", sizeKW),
			TypicalAnnualEfficiency: fmt.Sprintf("%.2f", annualSPF),
		},
		CalculatedBenefits: CalculatedBenefits{
			CostSavingsToday: fmt.Sprintf("£%.2f", b.CostSavings),
			CarbonAvoided:    fmt.Sprintf("%.1f kg CO2", b.CarbonKg),
			EquivalentTo:     equivalent,
		},
		WhyThisConclusion: conclusionFor(c.PatternType, s),
	}
}

// InterpretCOP classifies efficiency into a human-readable band using
// half-open thresholds.
func InterpretCOP(cop float64) string {
	switch {
	case cop >= 3.5:
		return "Excellent efficiency"
	case cop >= 3.0:
		return "Good efficiency"
	case cop >= 2.5:
		return "Moderate efficiency"
	case cop >= 2.0:
		return "Acceptable for cold weather"
	default:
		return "Lower than expected - may need attention"
	}
}

// conclusionTable explains how each conclusion was reached, with a
// default for patterns outside the table.
var conclusionTable = map[PatternType]func(TelemetrySnapshot) string{
	PatternTariffOptimization: func(s TelemetrySnapshot) string {
		return fmt.Sprintf("Detected heating during off-peak hours (cheap electricity at £%.2f/kWh vs peak £%.2f/kWh)",
			deref(s.PriceCurrent, tariffDefaultCurrent), deref(s.PricePeak, DefaultPeakPrice))
	},
	PatternVPPCurtailment: func(s TelemetrySnapshot) string {
		return fmt.Sprintf("Grid signal '%s' active with temperature %.1f°C below target", s.VPPSignal, s.Indoor())
	},
	PatternPredictiveHeating: func(s TelemetrySnapshot) string {
		return fmt.Sprintf("Forecast shows temperature drop to %.1f°C, system pre-heating while current outdoor temp is %.1f°C",
			deref(s.WeatherForecastTemp, 0), s.Outdoor())
	},
	PatternColdWeatherOperation: func(s TelemetrySnapshot) string {
		return fmt.Sprintf("Outdoor temperature %.1f°C with COP %.1f is within normal range for winter", s.Outdoor(), s.Efficiency())
	},
	PatternEfficiencyAnomaly: func(s TelemetrySnapshot) string {
		return fmt.Sprintf("COP %.1f is below expected range (2.5-3.5) for outdoor temperature %.1f°C", s.Efficiency(), s.Outdoor())
	},
}

func conclusionFor(pattern PatternType, s TelemetrySnapshot) string {
	if build, ok := conclusionTable[pattern]; ok {
		return build(s)
	}
	return "Analysis of operational parameters suggests normal behaviour"
}

func patternLabel(pattern PatternType) string {
	parts := strings.Split(string(pattern), "_")
	for i, part := range parts {
		parts[i] = titleWord(part)
	}
	return strings.Join(parts, " ")
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
