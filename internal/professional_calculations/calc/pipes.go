// Package calc holds the hydraulic and electrical sizing formulas. Every
// function is a pure transform of its inputs; nothing here touches storage.
package calc

import (
	"math"
	"regexp"
	"strconv"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// Pipe materials with a Hazen-Williams coefficient
const (
	MaterialPVC    = "PVC"
	MaterialPP     = "PP"
	MaterialCopper = "COPPER"
)

// Velocity band for pool circulation lines (m/s)
const (
	MinVelocity     = 1.0
	MaxVelocity     = 2.5
	OptimalVelocity = 2.0
)

var hazenWilliamsC = map[string]float64{
	MaterialPVC:    150,
	MaterialPP:     140,
	MaterialCopper: 130,
}

// StandardPipeSizes lists nominal PVC pressure pipe diameters in mm
var StandardPipeSizes = []float64{32, 40, 50, 63, 75, 90, 110}

// VelocityCheck is the outcome of checking one line against the velocity band
type VelocityCheck struct {
	Section           string  `json:"section"`
	Velocity          float64 `json:"velocity"`
	Diameter          float64 `json:"diameter"`
	FlowRate          float64 `json:"flowRate"`
	IsValid           bool    `json:"isValid"`
	Recommendation    string  `json:"recommendation"`
	SuggestedDiameter float64 `json:"suggestedDiameter,omitempty"`
}

func requirePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NewValidationError(field, "must be a finite number")
	}
	if v <= 0 {
		return domain.NewValidationError(field, "must be greater than zero, got %g", v)
	}
	return nil
}

func requireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NewValidationError(field, "must be a finite number")
	}
	return nil
}

// CrossSectionArea returns the internal area in m² of a pipe of diameter mm
func CrossSectionArea(diameter float64) float64 {
	d := diameter / 1000
	return math.Pi * d * d / 4
}

// FlowVelocity returns the mean water velocity in m/s for flow m³/h through a
// pipe of diameter mm.
func FlowVelocity(flowRate, diameter float64) (float64, error) {
	if err := requirePositive("flowRate", flowRate); err != nil {
		return 0, err
	}
	if err := requirePositive("diameter", diameter); err != nil {
		return 0, err
	}
	return (flowRate / 3600) / CrossSectionArea(diameter), nil
}

// FrictionLoss returns the Hazen-Williams head loss in metres of water column:
// hf = 10.67 * Q^1.852 * L / (C^1.852 * D^4.87)
func FrictionLoss(flowRate, length, diameter float64, material string) (float64, error) {
	if err := requirePositive("flowRate", flowRate); err != nil {
		return 0, err
	}
	if err := requirePositive("length", length); err != nil {
		return 0, err
	}
	if err := requirePositive("diameter", diameter); err != nil {
		return 0, err
	}
	c, ok := hazenWilliamsC[material]
	if !ok {
		return 0, domain.NewValidationError("material", "unknown pipe material %q", material)
	}

	q := flowRate / 3600
	d := diameter / 1000
	return 10.67 * math.Pow(q, 1.852) * length / (math.Pow(c, 1.852) * math.Pow(d, 4.87)), nil
}

// CheckVelocity validates the velocity of a line against the recommended band
// and suggests a standard diameter when it falls outside.
func CheckVelocity(section string, flowRate, diameter float64) (VelocityCheck, error) {
	v, err := FlowVelocity(flowRate, diameter)
	if err != nil {
		return VelocityCheck{}, err
	}

	check := VelocityCheck{
		Section:        section,
		Velocity:       v,
		Diameter:       diameter,
		FlowRate:       flowRate,
		IsValid:        true,
		Recommendation: "Optimal velocity",
	}

	switch {
	case v < MinVelocity:
		check.IsValid = false
		check.SuggestedDiameter = diameterForVelocity(flowRate, OptimalVelocity, false)
		check.Recommendation = "Velocity too low (" + fmt2(v) + " m/s), sediment may settle. Reduce the diameter or raise the flow."
	case v > MaxVelocity:
		check.IsValid = false
		check.SuggestedDiameter = diameterForVelocity(flowRate, OptimalVelocity, true)
		check.Recommendation = "Velocity too high (" + fmt2(v) + " m/s), expect noise, erosion and cavitation. Increase the diameter or reduce the flow."
	case math.Abs(v-OptimalVelocity) > 0.3:
		check.Recommendation = "Acceptable velocity (" + fmt2(v) + " m/s), optimal is " + fmt2(OptimalVelocity) + " m/s"
	}
	return check, nil
}

// diameterForVelocity picks the standard size closest to the target velocity
// that does not exceed MaxVelocity (up) or fall under MinVelocity (down).
func diameterForVelocity(flowRate, target float64, up bool) float64 {
	ideal := 1000 * math.Sqrt(4*(flowRate/3600)/(math.Pi*target))
	if up {
		for _, d := range StandardPipeSizes {
			if d >= ideal {
				return d
			}
		}
		return StandardPipeSizes[len(StandardPipeSizes)-1]
	}
	for i := len(StandardPipeSizes) - 1; i >= 0; i-- {
		if StandardPipeSizes[i] <= ideal {
			return StandardPipeSizes[i]
		}
	}
	return StandardPipeSizes[0]
}

var (
	mmPattern       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*mm`)
	fractionPattern = regexp.MustCompile(`(\d+)\s+(\d+)/(\d+)\s*"`)
	inchPattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*"`)
)

// ParseDiameter converts labels such as "50mm", `2"`, `1 1/2"` or
// `63mm (2.5")` to millimetres. Unknown formats return 0.
func ParseDiameter(label string) float64 {
	if m := mmPattern.FindStringSubmatch(label); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}
	if m := fractionPattern.FindStringSubmatch(label); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return 0
		}
		return (whole + num/den) * 25.4
	}
	if m := inchPattern.FindStringSubmatch(label); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v * 25.4
	}
	return 0
}

// SnapToStandard returns the nearest standard nominal size
func SnapToStandard(diameter float64) float64 {
	best := StandardPipeSizes[0]
	for _, d := range StandardPipeSizes[1:] {
		if math.Abs(d-diameter) < math.Abs(best-diameter) {
			best = d
		}
	}
	return best
}

func fmt2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
