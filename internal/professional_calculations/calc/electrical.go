package calc

import (
	"strings"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// Default electrical request parameters
const (
	DefaultVoltage          = 220.0
	DefaultDistanceToPanel  = 10.0
	DefaultInstallationType = InstallConduit
	DefaultAmbientTemp      = 25.0

	longRunDistance   = 50.0
	highPowerWatts    = 10000.0
	hotAmbientCelsius = 35.0
)

// ElectricalParams are the request parameters of an electrical analysis
type ElectricalParams struct {
	Voltage               float64 `json:"voltage"`
	DistanceToPanel       float64 `json:"distanceToPanel"`
	InstallationType      string  `json:"installationType"`
	AmbientTemp           float64 `json:"ambientTemp"`
	ElectricityCostPerKwh float64 `json:"electricityCostPerKwh"`
	DailyHours            float64 `json:"dailyHours"`
}

// DefaultElectricalParams returns the parameters used when a request omits
// them, with the given tariff.
func DefaultElectricalParams(tariff float64) ElectricalParams {
	return ElectricalParams{
		Voltage:               DefaultVoltage,
		DistanceToPanel:       DefaultDistanceToPanel,
		InstallationType:      DefaultInstallationType,
		AmbientTemp:           DefaultAmbientTemp,
		ElectricityCostPerKwh: tariff,
		DailyHours:            DefaultDailyHours,
	}
}

// Validate checks the parameters without computing anything
func (p ElectricalParams) Validate() error {
	if err := requirePositive("voltage", p.Voltage); err != nil {
		return err
	}
	if err := requirePositive("distanceToPanel", p.DistanceToPanel); err != nil {
		return err
	}
	if _, err := InstallationFactor(p.InstallationType); err != nil {
		return err
	}
	if err := requireFinite("ambientTemp", p.AmbientTemp); err != nil {
		return err
	}
	if err := requireFinite("electricityCostPerKwh", p.ElectricityCostPerKwh); err != nil {
		return err
	}
	if p.ElectricityCostPerKwh < 0 {
		return domain.NewValidationError("electricityCostPerKwh", "must not be negative")
	}
	return nil
}

// ElectricalAnalysis is the derived electrical sizing of a project
type ElectricalAnalysis struct {
	ProjectID        string           `json:"projectId"`
	Voltage          float64          `json:"voltage"`
	DistanceToPanel  float64          `json:"distanceToPanel"`
	InstallationType string           `json:"installationType"`
	AmbientTemp      float64          `json:"ambientTemp"`
	Loads            []ElectricalLoad `json:"loads"`
	LoadTotals
	Cable         CableCalculation `json:"cable"`
	Protection    Protection       `json:"protection"`
	OperatingCost OperatingCost    `json:"operatingCost"`
	Warnings      []string         `json:"warnings"`
	Errors        []string         `json:"errors"`
	IsValid       bool             `json:"isValid"`
}

// AnalyzeElectrical aggregates the project loads and sizes conductor and
// protection for the panel run. pump is the pump picked by the hydraulic
// analysis, or nil.
func AnalyzeElectrical(p *domain.Project, params ElectricalParams, pump *domain.EquipmentPreset) (*ElectricalAnalysis, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.DailyHours == 0 {
		params.DailyHours = DefaultDailyHours
	}

	res := &ElectricalAnalysis{
		ProjectID:        p.ID,
		Voltage:          params.Voltage,
		DistanceToPanel:  params.DistanceToPanel,
		InstallationType: strings.ToUpper(params.InstallationType),
		AmbientTemp:      params.AmbientTemp,
		Loads:            ExtractLoads(p, pump),
		Warnings:         []string{},
		Errors:           []string{},
	}
	if len(res.Loads) == 0 {
		res.Errors = append(res.Errors, "project has no electrical loads")
	}

	totals, err := AggregateLoads(res.Loads, params.Voltage)
	if err != nil {
		return nil, err
	}
	res.LoadTotals = totals

	res.Cable, err = SelectCable(totals.DesignCurrent, params.DistanceToPanel, params.Voltage, params.InstallationType, params.AmbientTemp)
	if err != nil {
		return nil, err
	}
	switch {
	case !res.Cable.Acceptable:
		res.Errors = append(res.Errors, res.Cable.Recommendation)
	case res.Cable.Recommendation != "":
		res.Warnings = append(res.Warnings, res.Cable.Recommendation)
	}

	res.Protection, err = SelectProtection(totals.DesignCurrent)
	if err != nil {
		return nil, err
	}
	if res.Protection.Oversized {
		res.Warnings = append(res.Warnings, "design current "+fmt2(totals.DesignCurrent)+
			" A exceeds the largest standard breaker; split the installation into several circuits")
	}

	if params.DistanceToPanel > longRunDistance {
		res.Warnings = append(res.Warnings, "long run to the panel ("+fmt2(params.DistanceToPanel)+" m); consider 380V three-phase supply")
	}
	if totals.InstalledPower > highPowerWatts {
		res.Warnings = append(res.Warnings, "high installed power; check that the service entrance supports the load")
	}
	if params.AmbientTemp > hotAmbientCelsius {
		res.Warnings = append(res.Warnings, "high ambient temperature ("+fmt2(params.AmbientTemp)+" °C); cable ampacity derated")
	}

	res.OperatingCost, err = ProjectCost(res.Loads, params.DailyHours, params.ElectricityCostPerKwh)
	if err != nil {
		return nil, err
	}

	res.IsValid = len(res.Errors) == 0
	return res, nil
}
