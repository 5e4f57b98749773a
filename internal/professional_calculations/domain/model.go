package domain

import "time"

// Equipment types used by the catalog
const (
	TypePump         = "PUMP"
	TypeFilter       = "FILTER"
	TypeHeater       = "HEATER"
	TypeHeatPump     = "HEAT_PUMP"
	TypeLighting     = "LIGHTING"
	TypeTransformer  = "TRANSFORMER"
	TypeSkimmer      = "SKIMMER"
	TypeReturn       = "RETURN"
	TypeVacuumIntake = "VACUUM_INTAKE"
	TypeAutomation   = "AUTOMATION"
)

// PoolPreset is a reusable pool model referenced by many projects
type PoolPreset struct {
	ID                string  `json:"id" yaml:"id"`
	Name              string  `json:"name" yaml:"name"`
	Shape             string  `json:"shape" yaml:"shape"`
	Length            float64 `json:"length" yaml:"length"` // m
	Width             float64 `json:"width" yaml:"width"`   // m
	Depth             float64 `json:"depth" yaml:"depth"`   // m
	HasSkimmer        bool    `json:"hasSkimmer" yaml:"hasSkimmer"`
	SkimmerCount      int     `json:"skimmerCount" yaml:"skimmerCount"`
	ReturnsCount      int     `json:"returnsCount" yaml:"returnsCount"`
	HasHydroJets      bool    `json:"hasHydroJets" yaml:"hasHydroJets"`
	HydroJetsCount    int     `json:"hydroJetsCount" yaml:"hydroJetsCount"`
	HasBottomDrain    bool    `json:"hasBottomDrain" yaml:"hasBottomDrain"`
	HasVacuumIntake   bool    `json:"hasVacuumIntake" yaml:"hasVacuumIntake"`
	VacuumIntakeCount int     `json:"vacuumIntakeCount" yaml:"vacuumIntakeCount"`
	HasLighting       bool    `json:"hasLighting" yaml:"hasLighting"`
	LightingCount     int     `json:"lightingCount" yaml:"lightingCount"`
	LightingType      string  `json:"lightingType,omitempty" yaml:"lightingType"`
}

// EquipmentPreset is a catalog row. Zero values mean "not specified" for the
// technical attributes.
type EquipmentPreset struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Type           string  `json:"type" yaml:"type"`
	Category       string  `json:"category,omitempty" yaml:"category"`
	Brand          string  `json:"brand,omitempty" yaml:"brand"`
	Model          string  `json:"model,omitempty" yaml:"model"`
	Power          float64 `json:"power,omitempty" yaml:"power"` // HP for pumps, kW for heat pumps
	Voltage        float64 `json:"voltage,omitempty" yaml:"voltage"`
	PricePerUnit   float64 `json:"pricePerUnit" yaml:"pricePerUnit"`
	FlowRate       float64 `json:"flowRate,omitempty" yaml:"flowRate"`       // m³/h
	MaxHead        float64 `json:"maxHead,omitempty" yaml:"maxHead"`         // m
	Consumption    float64 `json:"consumption,omitempty" yaml:"consumption"` // W
	ConnectionSize string  `json:"connectionSize,omitempty" yaml:"connectionSize"`
	FilterArea     float64 `json:"filterArea,omitempty" yaml:"filterArea"`         // m²
	FilterDiameter float64 `json:"filterDiameter,omitempty" yaml:"filterDiameter"` // mm
	SandRequired   float64 `json:"sandRequired,omitempty" yaml:"sandRequired"`     // kg
	MinPoolVolume  float64 `json:"minPoolVolume,omitempty" yaml:"minPoolVolume"`   // litres
	MaxPoolVolume  float64 `json:"maxPoolVolume,omitempty" yaml:"maxPoolVolume"`   // litres
	Description    string  `json:"description,omitempty" yaml:"description"`
	IsActive       bool    `json:"isActive" yaml:"isActive"`
}

// ProjectAdditional is an extra catalog item attached to a project
type ProjectAdditional struct {
	ID        string           `json:"id" yaml:"id"`
	Quantity  int              `json:"quantity" yaml:"quantity"`
	Equipment *EquipmentPreset `json:"equipment,omitempty" yaml:"equipment"`
}

// PlumbingItem is one selected line of the project's plumbing configuration
type PlumbingItem struct {
	ItemName string  `json:"itemName" yaml:"itemName"`
	Category string  `json:"category" yaml:"category"`
	Diameter string  `json:"diameter" yaml:"diameter"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// PlumbingConfig is the plumbing blob stored on the project
type PlumbingConfig struct {
	SelectedItems []PlumbingItem `json:"selectedItems" yaml:"selectedItems"`
}

// ElectricalItem is an ad-hoc load entered on the project
type ElectricalItem struct {
	Name     string  `json:"name" yaml:"name"`
	Type     string  `json:"type" yaml:"type"`
	Watts    float64 `json:"watts" yaml:"watts"`
	Voltage  float64 `json:"voltage" yaml:"voltage"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// ConfiguredPump is a pump typed in manually on the electrical configuration
type ConfiguredPump struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	HP       float64 `json:"hp" yaml:"hp"`
	Power    float64 `json:"power" yaml:"power"` // W
	FlowRate float64 `json:"flowRate" yaml:"flowRate"`
	Voltage  float64 `json:"voltage" yaml:"voltage"`
}

// ElectricalConfig is the electrical blob stored on the project
type ElectricalConfig struct {
	Items []ElectricalItem `json:"items" yaml:"items"`
	Pumps []ConfiguredPump `json:"pumps" yaml:"pumps"`
}

// Project is one client engagement with its geometry snapshot
type Project struct {
	ID               string              `json:"id" yaml:"id"`
	Name             string              `json:"name" yaml:"name"`
	ClientName       string              `json:"clientName,omitempty" yaml:"clientName"`
	PoolPresetID     string              `json:"poolPresetId" yaml:"poolPresetId"`
	Volume           float64             `json:"volume" yaml:"volume"` // m³
	Perimeter        float64             `json:"perimeter" yaml:"perimeter"`
	ExcavationLength float64             `json:"excavationLength" yaml:"excavationLength"`
	ExcavationWidth  float64             `json:"excavationWidth" yaml:"excavationWidth"`
	ExcavationDepth  float64             `json:"excavationDepth" yaml:"excavationDepth"`
	PlumbingConfig   *PlumbingConfig     `json:"plumbingConfig,omitempty" yaml:"plumbingConfig"`
	ElectricalConfig *ElectricalConfig   `json:"electricalConfig,omitempty" yaml:"electricalConfig"`
	PoolPreset       *PoolPreset         `json:"poolPreset,omitempty" yaml:"poolPreset"`
	Additionals      []ProjectAdditional `json:"additionals,omitempty" yaml:"additionals"`
	CreatedAt        time.Time           `json:"createdAt" yaml:"-"`
	UpdatedAt        time.Time           `json:"updatedAt" yaml:"-"`
}
