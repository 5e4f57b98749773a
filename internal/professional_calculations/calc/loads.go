package calc

import (
	"math"
	"strings"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// Electrical load categories
const (
	LoadPump        = "PUMP"
	LoadLighting    = "LIGHTING"
	LoadHeating     = "HEATING"
	LoadAutomation  = "AUTOMATION"
	LoadTransformer = "TRANSFORMER"
	LoadOther       = "OTHER"
)

const (
	wattsPerLight       = 50.0
	lightingVoltage     = 12.0
	transformerMargin   = 1.2
	wattsPerHorsepower  = 745.7
	pumpHPPer20Cubic    = 0.5
	defaultLoadQuantity = 1
)

type loadFactors struct {
	powerFactor float64
	demand      float64
}

// power factor (cos φ) and demand (simultaneity) per load category
var factorsByType = map[string]loadFactors{
	LoadPump:        {0.85, 1.0},
	LoadLighting:    {0.95, 0.5},
	LoadHeating:     {0.98, 0.7},
	LoadAutomation:  {0.90, 1.0},
	LoadTransformer: {0.85, 1.0},
	LoadOther:       {0.90, 0.8},
}

// ElectricalLoad is one consumer on the pool circuit
type ElectricalLoad struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Power        float64 `json:"power"` // W per unit
	Voltage      float64 `json:"voltage"`
	Quantity     int     `json:"quantity"`
	PowerFactor  float64 `json:"powerFactor"`
	DemandFactor float64 `json:"simultaneity"`
}

// NewLoad builds a load with the factors of its category
func NewLoad(name, loadType string, power, voltage float64, quantity int) ElectricalLoad {
	f, ok := factorsByType[loadType]
	if !ok {
		loadType = LoadOther
		f = factorsByType[LoadOther]
	}
	if voltage <= 0 {
		voltage = DefaultVoltage
	}
	if quantity <= 0 {
		quantity = defaultLoadQuantity
	}
	return ElectricalLoad{
		Name:         name,
		Type:         loadType,
		Power:        power,
		Voltage:      voltage,
		Quantity:     quantity,
		PowerFactor:  f.powerFactor,
		DemandFactor: f.demand,
	}
}

// TotalPower is the installed power of the load in W
func (l ElectricalLoad) TotalPower() float64 {
	return l.Power * float64(l.Quantity)
}

// DemandPower is the installed power scaled by the demand factor
func (l ElectricalLoad) DemandPower() float64 {
	return l.TotalPower() * l.DemandFactor
}

// LoadType maps an equipment type to its load category. HEAT is checked
// before PUMP so HEAT_PUMP lands in HEATING.
func LoadType(equipmentType string) string {
	t := strings.ToUpper(equipmentType)
	switch {
	case strings.Contains(t, "HEAT"):
		return LoadHeating
	case strings.Contains(t, "PUMP"):
		return LoadPump
	case strings.Contains(t, "LIGHT"):
		return LoadLighting
	case strings.Contains(t, "AUTO"):
		return LoadAutomation
	case strings.Contains(t, "TRANSFORMER"):
		return LoadTransformer
	default:
		return LoadOther
	}
}

// EstimatePumpPower returns the filtration pump power in W from the rule of
// thumb of half a horsepower per started 20 m³.
func EstimatePumpPower(volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	return math.Ceil(volume/20) * pumpHPPer20Cubic * wattsPerHorsepower
}

// pumpWatts returns the electrical draw of a pump row in W
func pumpWatts(p *domain.EquipmentPreset) float64 {
	if p == nil {
		return 0
	}
	if p.Consumption > 0 {
		return p.Consumption
	}
	return p.Power * wattsPerHorsepower
}

// ExtractLoads lists the electrical consumers of a project: pool lighting and
// its transformer, the filtration pump, additionals with a rated consumption
// and the items typed on the electrical configuration. pump is the pump chosen
// by the hydraulic analysis and may be nil; without a rated draw the pump
// power is estimated from the pool volume. A pump among the additionals already counts
// as the filtration pump.
func ExtractLoads(p *domain.Project, pump *domain.EquipmentPreset) []ElectricalLoad {
	var loads []ElectricalLoad

	if preset := p.PoolPreset; preset != nil && preset.HasLighting && preset.LightingCount > 0 {
		kind := preset.LightingType
		if kind == "" {
			kind = "RGB"
		}
		loads = append(loads,
			NewLoad("LED lights "+kind, LoadLighting, wattsPerLight, lightingVoltage, preset.LightingCount),
			NewLoad("Transformer 220V to 12V", LoadTransformer,
				float64(preset.LightingCount)*wattsPerLight*transformerMargin, DefaultVoltage, 1),
		)
	}

	pumpInAdditionals := false
	var extras []ElectricalLoad
	for _, a := range p.Additionals {
		eq := a.Equipment
		if eq == nil || eq.Consumption <= 0 {
			continue
		}
		lt := LoadType(eq.Type)
		if lt == LoadPump {
			pumpInAdditionals = true
		}
		extras = append(extras, NewLoad(eq.Name, lt, eq.Consumption, eq.Voltage, a.Quantity))
	}

	if !pumpInAdditionals {
		name, watts, voltage := "Filtration pump", EstimatePumpPower(p.Volume), DefaultVoltage
		if pump != nil {
			name = pump.Name
			if w := pumpWatts(pump); w > 0 {
				watts = w
			}
			if pump.Voltage > 0 {
				voltage = pump.Voltage
			}
		}
		if watts > 0 {
			loads = append(loads, NewLoad(name, LoadPump, watts, voltage, 1))
		}
	}
	loads = append(loads, extras...)

	if p.ElectricalConfig != nil {
		for _, item := range p.ElectricalConfig.Items {
			if item.Watts <= 0 {
				continue
			}
			t := strings.ToUpper(item.Type)
			if _, ok := factorsByType[t]; !ok {
				t = LoadType(t)
			}
			loads = append(loads, NewLoad(item.Name, t, item.Watts, item.Voltage, item.Quantity))
		}
	}
	return loads
}

// LoadTotals aggregates a load list
type LoadTotals struct {
	InstalledPower float64 `json:"totalPowerInstalled"` // W
	DemandPower    float64 `json:"totalPowerDemand"`    // W
	DesignCurrent  float64 `json:"totalCurrent"`        // A
}

// AggregateLoads sums installed and demand power and derives the design
// current I = Σ Pdemand / (V · cos φ) at the supply voltage.
func AggregateLoads(loads []ElectricalLoad, voltage float64) (LoadTotals, error) {
	if err := requirePositive("voltage", voltage); err != nil {
		return LoadTotals{}, err
	}
	var t LoadTotals
	for _, l := range loads {
		if err := requireFinite("power", l.Power); err != nil {
			return LoadTotals{}, err
		}
		if l.Power < 0 {
			return LoadTotals{}, domain.NewValidationError("power", "load %q has negative power", l.Name)
		}
		t.InstalledPower += l.TotalPower()
		t.DemandPower += l.DemandPower()
		if l.PowerFactor > 0 {
			t.DesignCurrent += l.DemandPower() / (voltage * l.PowerFactor)
		}
	}
	return t, nil
}
