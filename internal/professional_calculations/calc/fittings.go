package calc

import (
	"math"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

const (
	gravity = 9.81

	// EquipmentHeadAllowance covers filter, heater and valve manifold losses
	EquipmentHeadAllowance = 10.0
	// HeadSafetyFactor is applied to the summed head
	HeadSafetyFactor = 1.15
)

// Resistance coefficients K for singular losses
const (
	KElbow90    = 0.9
	KElbow45    = 0.4
	KTee        = 1.8
	KValve      = 0.2
	KCheckValve = 2.5
	KFilter     = 5.0
)

// Fittings counts the singular loss elements of a circuit
type Fittings struct {
	Elbows90    int `json:"elbows90"`
	Elbows45    int `json:"elbows45"`
	Tees        int `json:"tees"`
	Valves      int `json:"valves"`
	CheckValves int `json:"checkValves"`
	Filters     int `json:"filters"`
}

// SumK returns the total resistance coefficient of the set
func (f Fittings) SumK() float64 {
	return float64(f.Elbows90)*KElbow90 +
		float64(f.Elbows45)*KElbow45 +
		float64(f.Tees)*KTee +
		float64(f.Valves)*KValve +
		float64(f.CheckValves)*KCheckValve +
		float64(f.Filters)*KFilter
}

// SingularLoss returns ΣK·v²/2g in metres.
func SingularLoss(velocity float64, f Fittings) (float64, error) {
	if err := requireFinite("velocity", velocity); err != nil {
		return 0, err
	}
	if velocity < 0 {
		return 0, domain.NewValidationError("velocity", "must not be negative")
	}
	return f.SumK() * velocity * velocity / (2 * gravity), nil
}

// EstimateFittings derives a typical fitting set from the number of pool
// accessories and the distance to the equipment room. Each accessory brings
// four 90° elbows, one more per three metres of run; accessories are joined by
// tees, and the equipment side always has one valve, one check valve and the
// filter.
func EstimateFittings(distance float64, accessories int) (Fittings, error) {
	if accessories < 0 {
		return Fittings{}, domain.NewValidationError("accessories", "must not be negative")
	}
	if err := requireFinite("distance", distance); err != nil {
		return Fittings{}, err
	}
	if distance < 0 {
		return Fittings{}, domain.NewValidationError("distance", "must not be negative")
	}
	tees := accessories - 1
	if tees < 0 {
		tees = 0
	}
	return Fittings{
		Elbows90:    accessories*4 + int(math.Ceil(distance/3)),
		Tees:        tees,
		Valves:      1,
		CheckValves: 1,
		Filters:     1,
	}, nil
}

// TotalDynamicHead sums static lift, friction and singular losses, adds the
// equipment allowance and applies the safety factor.
func TotalDynamicHead(staticLift, friction, singular float64) (float64, error) {
	fields := []string{"staticLift", "frictionLoss", "singularLoss"}
	for i, v := range []float64{staticLift, friction, singular} {
		if err := requireFinite(fields[i], v); err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, domain.NewValidationError(fields[i], "must not be negative")
		}
	}
	return (staticLift + friction + singular + EquipmentHeadAllowance) * HeadSafetyFactor, nil
}
