package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// Voltage drop limits in percent of the supply voltage
const (
	MaxVoltageDropPercent  = 3.0
	NearVoltageDropPercent = 2.5
)

const (
	copperResistivity20 = 0.01724 // Ω·mm²/m at 20 °C
	copperTempCoeff     = 0.00393 // 1/°C
)

// Installation types
const (
	InstallConduit = "CONDUIT"
	InstallTray    = "TRAY"
	InstallAerial  = "AERIAL"
	InstallBuried  = "BURIED"
)

// CableSize is one row of the copper conductor table
type CableSize struct {
	Section  float64 // mm²
	Ampacity float64 // A at 30 °C reference, free air
}

// CableTable is the single conductor table used for every sizing: copper,
// PVC insulation, two loaded conductors.
var CableTable = []CableSize{
	{1.5, 15},
	{2.5, 21},
	{4, 28},
	{6, 36},
	{10, 50},
	{16, 68},
	{25, 89},
	{35, 110},
	{50, 134},
	{70, 171},
	{95, 207},
	{120, 239},
	{150, 262},
	{185, 296},
	{240, 346},
}

var installationFactors = map[string]float64{
	InstallConduit: 0.80,
	InstallTray:    0.90,
	InstallAerial:  1.00,
	"AIR":          1.00,
	InstallBuried:  0.70,
	"DIRECT":       0.70,
}

var temperatureFactors = map[int]float64{
	20: 1.00,
	25: 0.97,
	30: 0.93,
	35: 0.90,
	40: 0.87,
	45: 0.83,
	50: 0.80,
}

// CableCalculation is the chosen conductor and its voltage drop
type CableCalculation struct {
	Section            float64 `json:"section"`
	SectionLabel       string  `json:"sectionLabel"`
	Current            float64 `json:"current"`
	Ampacity           float64 `json:"ampacity"`
	VoltageDrop        float64 `json:"voltageDrop"`
	VoltageDropPercent float64 `json:"voltageDropPercent"`
	Acceptable         bool    `json:"acceptable"`
	Recommendation     string  `json:"recommendation,omitempty"`
}

// InstallationFactor returns the ampacity derating of an installation type
func InstallationFactor(installationType string) (float64, error) {
	f, ok := installationFactors[strings.ToUpper(strings.TrimSpace(installationType))]
	if !ok {
		return 0, domain.NewValidationError("installationType", "unknown installation type %q", installationType)
	}
	return f, nil
}

// TemperatureFactor returns the ampacity derating for an ambient temperature
// rounded to the nearest 5 °C and clamped to the 20–50 °C table.
func TemperatureFactor(ambient float64) float64 {
	t := int(math.Round(ambient/5) * 5)
	if t < 20 {
		t = 20
	}
	if t > 50 {
		t = 50
	}
	return temperatureFactors[t]
}

// CopperResistivity returns ρ(T) in Ω·mm²/m
func CopperResistivity(temp float64) float64 {
	return copperResistivity20 * (1 + copperTempCoeff*(temp-20))
}

// VoltageDrop returns the drop in volts and in percent for a single-phase run
// of distance metres: ΔV = 2·L·I·ρ / S.
func VoltageDrop(current, distance, section, voltage, ambient float64) (float64, float64, error) {
	if err := requireFinite("current", current); err != nil {
		return 0, 0, err
	}
	if current < 0 {
		return 0, 0, domain.NewValidationError("current", "must not be negative")
	}
	if err := requirePositive("distanceToPanel", distance); err != nil {
		return 0, 0, err
	}
	if err := requirePositive("section", section); err != nil {
		return 0, 0, err
	}
	if err := requirePositive("voltage", voltage); err != nil {
		return 0, 0, err
	}
	drop := 2 * distance * current * CopperResistivity(ambient) / section
	return drop, drop / voltage * 100, nil
}

// SelectCable returns the smallest section whose derated ampacity carries the
// current and whose voltage drop stays within MaxVoltageDropPercent. When no
// section qualifies the largest one is returned with Acceptable false.
func SelectCable(current, distance, voltage float64, installationType string, ambient float64) (CableCalculation, error) {
	install, err := InstallationFactor(installationType)
	if err != nil {
		return CableCalculation{}, err
	}
	if err := requireFinite("ambientTemp", ambient); err != nil {
		return CableCalculation{}, err
	}
	derate := install * TemperatureFactor(ambient)

	build := func(c CableSize) (CableCalculation, error) {
		drop, pct, err := VoltageDrop(current, distance, c.Section, voltage, ambient)
		if err != nil {
			return CableCalculation{}, err
		}
		amp := c.Ampacity * derate
		return CableCalculation{
			Section:            c.Section,
			SectionLabel:       strconv.FormatFloat(c.Section, 'f', -1, 64) + "mm²",
			Current:            current,
			Ampacity:           amp,
			VoltageDrop:        drop,
			VoltageDropPercent: pct,
			Acceptable:         pct <= MaxVoltageDropPercent && amp >= current,
		}, nil
	}

	for _, c := range CableTable {
		calc, err := build(c)
		if err != nil {
			return CableCalculation{}, err
		}
		if calc.Acceptable {
			if calc.VoltageDropPercent > NearVoltageDropPercent {
				calc.Recommendation = "voltage drop close to the limit; a larger section improves efficiency"
			}
			return calc, nil
		}
	}

	calc, err := build(CableTable[len(CableTable)-1])
	if err != nil {
		return CableCalculation{}, err
	}
	calc.Acceptable = false
	calc.Recommendation = "excessive voltage drop or current for the largest section; shorten the run or move to 380V three-phase"
	return calc, nil
}
