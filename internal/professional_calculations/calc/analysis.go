package calc

import "github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"

// Summary condenses a full analysis for list views
type Summary struct {
	RequiredFlowRate float64 `json:"requiredFlowRate"`
	TotalDynamicHead float64 `json:"totalDynamicHead"`
	PumpName         string  `json:"pumpName,omitempty"`
	FilterName       string  `json:"filterName,omitempty"`
	CableSection     string  `json:"cableSection"`
	Breaker          int     `json:"breaker"`
	RCD              int     `json:"rcd"`
	MonthlyCost      float64 `json:"monthlyCost"`
	WarningCount     int     `json:"warningCount"`
	IsValid          bool    `json:"isValid"`
}

// FullAnalysis combines the hydraulic and electrical sizing of a project
type FullAnalysis struct {
	ProjectID  string              `json:"projectId"`
	Hydraulic  *HydraulicAnalysis  `json:"hydraulic"`
	Electrical *ElectricalAnalysis `json:"electrical"`
	Filter     FilterSelection     `json:"filter"`
	Summary    Summary             `json:"summary"`
}

// AnalyzeProject runs the hydraulic analysis, feeds its pump into the
// electrical one and picks a filter for the same flow.
func AnalyzeProject(p *domain.Project, hp HydraulicParams, ep ElectricalParams, catalog []domain.EquipmentPreset) (*FullAnalysis, error) {
	hyd, err := AnalyzeHydraulics(p, hp, catalog)
	if err != nil {
		return nil, err
	}
	elec, err := AnalyzeElectrical(p, ep, hyd.RecommendedPump)
	if err != nil {
		return nil, err
	}
	filter, err := SelectFilter(hyd.RequiredFlowRate, p.Volume, catalog)
	if err != nil {
		return nil, err
	}

	out := &FullAnalysis{
		ProjectID:  p.ID,
		Hydraulic:  hyd,
		Electrical: elec,
		Filter:     filter,
		Summary: Summary{
			RequiredFlowRate: hyd.RequiredFlowRate,
			TotalDynamicHead: hyd.TotalDynamicHead,
			CableSection:     elec.Cable.SectionLabel,
			Breaker:          elec.Protection.Breaker,
			RCD:              elec.Protection.RCD,
			MonthlyCost:      elec.OperatingCost.MonthlyCost,
			WarningCount:     len(hyd.Warnings) + len(elec.Warnings),
			IsValid:          hyd.IsValid && elec.IsValid && filter.Found,
		},
	}
	if hyd.RecommendedPump != nil {
		out.Summary.PumpName = hyd.RecommendedPump.Name
	}
	if filter.Filter != nil {
		out.Summary.FilterName = filter.Filter.Name
	}
	return out, nil
}

// CompatibilityResult reports whether a pump and filter work together on the
// project circuit.
type CompatibilityResult struct {
	Compatible       bool     `json:"compatible"`
	PumpFlowRate     float64  `json:"pumpFlowRate"`
	FilterFlowRate   float64  `json:"filterFlowRate"`
	PumpMaxHead      float64  `json:"pumpMaxHead"`
	TotalDynamicHead float64  `json:"totalDynamicHead"`
	Issues           []string `json:"issues"`
	Warnings         []string `json:"warnings"`
}

const (
	filterFlowTolerance = 1.1
	headProximity       = 0.9
)

// CheckCompatibility fails when the pump pushes more than 110 % of the
// filter's rated flow or cannot reach the circuit head, and warns when the
// head is within 10 % of the pump's limit.
func CheckCompatibility(pump, filter *domain.EquipmentPreset, tdh float64) (CompatibilityResult, error) {
	if pump == nil || filter == nil {
		return CompatibilityResult{}, domain.ErrEquipmentNotFound
	}
	if pump.Type != domain.TypePump {
		return CompatibilityResult{}, domain.NewValidationError("pumpId", "equipment %q is not a pump", pump.Name)
	}
	if filter.Type != domain.TypeFilter {
		return CompatibilityResult{}, domain.NewValidationError("filterId", "equipment %q is not a filter", filter.Name)
	}
	if err := requireFinite("totalDynamicHead", tdh); err != nil {
		return CompatibilityResult{}, err
	}

	res := CompatibilityResult{
		Compatible:       true,
		PumpFlowRate:     pump.FlowRate,
		FilterFlowRate:   filter.FlowRate,
		PumpMaxHead:      pump.MaxHead,
		TotalDynamicHead: tdh,
		Issues:           []string{},
		Warnings:         []string{},
	}

	if filter.FlowRate > 0 && pump.FlowRate > filter.FlowRate*filterFlowTolerance {
		res.Compatible = false
		res.Issues = append(res.Issues, "pump flow "+fmt2(pump.FlowRate)+" m³/h exceeds filter capacity "+fmt2(filter.FlowRate)+" m³/h")
	}
	switch {
	case pump.MaxHead <= 0:
		res.Warnings = append(res.Warnings, "pump has no rated head; head could not be checked")
	case tdh > pump.MaxHead:
		res.Compatible = false
		res.Issues = append(res.Issues, "circuit head "+fmt2(tdh)+" m exceeds pump maximum "+fmt2(pump.MaxHead)+" m")
	case tdh > pump.MaxHead*headProximity:
		res.Warnings = append(res.Warnings, "circuit head is within 10% of the pump maximum; efficiency will suffer")
	}
	return res, nil
}
