package analysis

import (
	"fmt"
	"time"
)

// Defaults applied when optional snapshot fields are absent.
const (
	DefaultTargetTemp   = 20.0
	DefaultFlowTemp     = 40.0
	DefaultCurrentPrice = 0.15
	DefaultPeakPrice    = 0.28
)

// StatusHeating is the heat pump status that qualifies for the
// temperature deficit rule.
const StatusHeating = "heating"

// TelemetrySnapshot is one point-in-time reading from a heat pump.
// Optional fields are pointers so absence is distinguishable from zero;
// indoor_temp, outdoor_temp, cop and power_consumption_kw are required
// and validated before analysis.
type TelemetrySnapshot struct {
	IndoorTemp          *float64 `json:"indoor_temp"`
	TargetTemp          *float64 `json:"target_temp,omitempty"`
	OutdoorTemp         *float64 `json:"outdoor_temp"`
	HeatPumpStatus      string   `json:"heat_pump_status,omitempty"`
	PowerConsumptionKW  *float64 `json:"power_consumption_kw"`
	COP                 *float64 `json:"cop"`
	FlowTemp            *float64 `json:"flow_temp,omitempty"`
	PriceCurrent        *float64 `json:"electricity_price_current,omitempty"`
	PricePeak           *float64 `json:"electricity_price_peak,omitempty"`
	GridCarbonIntensity *float64 `json:"grid_carbon_intensity,omitempty"`
	VPPSignal           string   `json:"vpp_signal,omitempty"`
	WeatherForecastTemp *float64 `json:"weather_forecast_temp,omitempty"`
	Timestamp           string   `json:"timestamp,omitempty"`
}

// MissingFieldError reports a required snapshot field that is absent.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("snapshot: missing required field %s", e.Field)
}

// Validate checks that the four required fields are present.
func (s TelemetrySnapshot) Validate() error {
	if s.IndoorTemp == nil {
		return MissingFieldError{Field: "indoor_temp"}
	}
	if s.OutdoorTemp == nil {
		return MissingFieldError{Field: "outdoor_temp"}
	}
	if s.COP == nil {
		return MissingFieldError{Field: "cop"}
	}
	if s.PowerConsumptionKW == nil {
		return MissingFieldError{Field: "power_consumption_kw"}
	}
	return nil
}

// Indoor returns the indoor temperature, zero when absent.
func (s TelemetrySnapshot) Indoor() float64 { return deref(s.IndoorTemp, 0) }

// Outdoor returns the outdoor temperature, zero when absent.
func (s TelemetrySnapshot) Outdoor() float64 { return deref(s.OutdoorTemp, 0) }

// Efficiency returns the coefficient of performance, zero when absent.
func (s TelemetrySnapshot) Efficiency() float64 { return deref(s.COP, 0) }

// PowerKW returns the power consumption, zero when absent.
func (s TelemetrySnapshot) PowerKW() float64 { return deref(s.PowerConsumptionKW, 0) }

// Target returns the target temperature or its default.
func (s TelemetrySnapshot) Target() float64 { return deref(s.TargetTemp, DefaultTargetTemp) }

// Flow returns the flow temperature or its default.
func (s TelemetrySnapshot) Flow() float64 { return deref(s.FlowTemp, DefaultFlowTemp) }

// CurrentPrice returns the current electricity price or its default.
func (s TelemetrySnapshot) CurrentPrice() float64 { return deref(s.PriceCurrent, DefaultCurrentPrice) }

// Hour extracts the hour of day from the snapshot timestamp. An absent
// or unparseable timestamp resolves to midday, which no time-of-day
// rule matches.
func (s TelemetrySnapshot) Hour() int {
	if s.Timestamp == "" {
		return 12
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s.Timestamp); err == nil {
			return ts.Hour()
		}
	}
	return 12
}

func deref(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
