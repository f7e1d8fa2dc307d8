package catalog

// PropertyDetails describes the building a heat pump is installed in.
type PropertyDetails struct {
	HouseType    string `json:"house_type"`
	HouseAge     string `json:"house_age"`
	PostcodeArea string `json:"postcode_area,omitempty"`
}

// HeatPumpSpecs describes the installed unit.
type HeatPumpSpecs struct {
	Type        string  `json:"type,omitempty"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	SizeKW      float64 `json:"size_kw"`
	Refrigerant string  `json:"refrigerant,omitempty"`
}

// PerformanceData carries the installation's seasonal baselines.
type PerformanceData struct {
	AnnualSPF             float64   `json:"annual_spf"`
	TypicalCOPRange       []float64 `json:"typical_cop_range,omitempty"`
	MeanFlowTemp          float64   `json:"mean_flow_temp,omitempty"`
	WinterFlowTemp        float64   `json:"winter_flow_temp,omitempty"`
	ColdestDayCOP         float64   `json:"coldest_day_cop,omitempty"`
	ColdestDayOutdoorTemp float64   `json:"coldest_day_outdoor_temp,omitempty"`
}

// EnergyConsumption carries annual energy figures.
type EnergyConsumption struct {
	AnnualSystemKWh     float64 `json:"annual_system_kwh,omitempty"`
	AnnualHeatOutputKWh float64 `json:"annual_heat_output_kwh,omitempty"`
}

// PropertyProfile is static reference data for one installation.
// Profiles are loaded once at startup and shared read-only across
// concurrent analyses.
type PropertyProfile struct {
	ProfileName       string            `json:"profile_name,omitempty"`
	PropertyID        string            `json:"property_id"`
	PropertyDetails   PropertyDetails   `json:"property_details"`
	HeatPumpSpecs     HeatPumpSpecs     `json:"heat_pump_specs"`
	PerformanceData   PerformanceData   `json:"performance_data"`
	EnergyConsumption EnergyConsumption `json:"energy_consumption,omitempty"`
}
