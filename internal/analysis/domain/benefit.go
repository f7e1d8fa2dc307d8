package analysis

import "math"

// Benefit constants per pattern. Cheap-rate windows typically run for
// three hours; the fixed figures come from grid-level estimates.
const (
	cheapWindowHours      = 3.0
	tariffDefaultCurrent  = 0.08
	vppCompensation       = 0.15
	vppCarbonKg           = 1.2
	tariffCarbonKg        = 0.8
	predictiveCostSavings = 0.85
	predictiveCarbonKg    = 0.5
)

// BenefitEstimate quantifies cost and carbon impact of a pattern.
// Cost is rounded to 2 decimals, carbon to 1; both are never negative.
type BenefitEstimate struct {
	CostSavings float64 `json:"cost_savings"`
	CarbonKg    float64 `json:"carbon_kg"`
}

// EstimateBenefit computes the closed-form benefit for a classified
// snapshot, keyed only by pattern type.
func EstimateBenefit(s TelemetrySnapshot, c PatternClassification) BenefitEstimate {
	var cost, carbon float64

	switch c.PatternType {
	case PatternTariffOptimization:
		peak := deref(s.PricePeak, DefaultPeakPrice)
		current := deref(s.PriceCurrent, tariffDefaultCurrent)
		cost = (peak - current) * s.PowerKW() * cheapWindowHours
		carbon = tariffCarbonKg
	case PatternVPPCurtailment:
		cost = vppCompensation
		carbon = vppCarbonKg
	case PatternPredictiveHeating:
		cost = predictiveCostSavings
		carbon = predictiveCarbonKg
	}

	return BenefitEstimate{
		CostSavings: clampRound(cost, 2),
		CarbonKg:    clampRound(carbon, 1),
	}
}

func clampRound(value float64, decimals int) float64 {
	if value < 0 {
		return 0.0
	}
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
