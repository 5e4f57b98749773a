package calc

import "github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"

// DefaultDailyHours is the filtration runtime per day
const DefaultDailyHours = 8.0

// OperatingCost projects the energy bill of the pool circuit
type OperatingCost struct {
	DailyKwh    float64 `json:"dailyKwh"`
	DailyCost   float64 `json:"dailyCost"`
	MonthlyCost float64 `json:"monthlyCost"`
	AnnualCost  float64 `json:"annualCost"`
	Tariff      float64 `json:"electricityCostPerKwh"`
	DailyHours  float64 `json:"dailyHours"`
}

// ProjectCost applies a flat tariff to the daily energy of the loads. Pumps
// run the full daily hours; other loads run hours scaled by their demand
// factor.
func ProjectCost(loads []ElectricalLoad, dailyHours, tariff float64) (OperatingCost, error) {
	if err := requireFinite("electricityCostPerKwh", tariff); err != nil {
		return OperatingCost{}, err
	}
	if tariff < 0 {
		return OperatingCost{}, domain.NewValidationError("electricityCostPerKwh", "must not be negative")
	}
	if err := requireFinite("dailyHours", dailyHours); err != nil {
		return OperatingCost{}, err
	}
	if dailyHours < 0 || dailyHours > 24 {
		return OperatingCost{}, domain.NewValidationError("dailyHours", "must be between 0 and 24, got %g", dailyHours)
	}

	var kwh float64
	for _, l := range loads {
		hours := dailyHours
		if l.Type != LoadPump {
			hours *= l.DemandFactor
		}
		kwh += l.TotalPower() / 1000 * hours
	}
	daily := kwh * tariff
	return OperatingCost{
		DailyKwh:    kwh,
		DailyCost:   daily,
		MonthlyCost: daily * 30,
		AnnualCost:  daily * 365,
		Tariff:      tariff,
		DailyHours:  dailyHours,
	}, nil
}
