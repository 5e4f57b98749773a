package calc

import (
	"strings"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// Default hydraulic request parameters
const (
	DefaultDistanceToEquipment = 5.0
	DefaultStaticLift          = 1.5

	// CavitationLiftLimit is the static suction lift above which the pump
	// risks cavitation.
	CavitationLiftLimit = 3.0

	defaultSuctionDiameter  = 50.0
	defaultReturnDiameter   = 40.0
	hydroJetDiameter        = 40.0
	hydroJetFlowShare       = 0.5
	headPerHorsepower       = 10.0
	wattsPerHorsepowerInput = 746.0
)

// Pipe section names
const (
	SectionSuction  = "suction"
	SectionReturn   = "return"
	SectionHydroJet = "hydrojet"
)

// HydraulicParams are the request parameters of a hydraulic analysis
type HydraulicParams struct {
	DistanceToEquipment float64 `json:"distanceToEquipment"` // m
	StaticLift          float64 `json:"staticLift"`          // m
	TurnoverHours       float64 `json:"turnoverHours"`
	Material            string  `json:"material"`
}

// DefaultHydraulicParams returns the parameters used when a request omits them
func DefaultHydraulicParams() HydraulicParams {
	return HydraulicParams{
		DistanceToEquipment: DefaultDistanceToEquipment,
		StaticLift:          DefaultStaticLift,
		TurnoverHours:       DefaultTurnoverHours,
		Material:            MaterialPVC,
	}
}

// Validate rejects non-positive run lengths and turnover times
func (p HydraulicParams) Validate() error {
	if err := requirePositive("distanceToEquipment", p.DistanceToEquipment); err != nil {
		return err
	}
	if err := requireFinite("staticLift", p.StaticLift); err != nil {
		return err
	}
	if p.StaticLift < 0 {
		return domain.NewValidationError("staticLift", "must not be negative")
	}
	if err := requirePositive("turnoverHours", p.TurnoverHours); err != nil {
		return err
	}
	if _, ok := hazenWilliamsC[p.Material]; !ok {
		return domain.NewValidationError("material", "unknown pipe material %q", p.Material)
	}
	return nil
}

// PipeSection is one circulation line with its losses
type PipeSection struct {
	Name         string   `json:"name"`
	Diameter     float64  `json:"diameter"`
	Length       float64  `json:"length"`
	FlowRate     float64  `json:"flowRate"`
	Velocity     float64  `json:"velocity"`
	Accessories  int      `json:"accessories"`
	Fittings     Fittings `json:"fittings"`
	FrictionLoss float64  `json:"frictionLoss"`
	SingularLoss float64  `json:"singularLoss"`
}

// LossBreakdown splits a head loss by circulation line
type LossBreakdown struct {
	Suction  float64 `json:"suction"`
	Return   float64 `json:"return"`
	HydroJet float64 `json:"hydrojet,omitempty"`
	Total    float64 `json:"total"`
}

// HydraulicAnalysis is the derived hydraulic sizing of a project
type HydraulicAnalysis struct {
	ProjectID           string                  `json:"projectId"`
	Volume              float64                 `json:"volume"`
	TurnoverHours       float64                 `json:"turnoverHours"`
	RequiredFlowRate    float64                 `json:"requiredFlowRate"`
	DistanceToEquipment float64                 `json:"distanceToEquipment"`
	StaticLift          float64                 `json:"staticLift"`
	Sections            []PipeSection           `json:"sections"`
	FrictionLoss        LossBreakdown           `json:"frictionLoss"`
	SingularLoss        LossBreakdown           `json:"singularLoss"`
	TotalDynamicHead    float64                 `json:"totalDynamicHead"`
	VelocityChecks      []VelocityCheck         `json:"velocityChecks"`
	PumpSelection       PumpSelection           `json:"pumpSelection"`
	RecommendedPump     *domain.EquipmentPreset `json:"recommendedPump"`
	NoRecommendation    bool                    `json:"noRecommendation"`
	Warnings            []string                `json:"warnings"`
	IsValid             bool                    `json:"isValid"`
}

type projectPiping struct {
	skimmers, drains, returns, hydroJets int
	pipes                                []float64
}

func extractPiping(p *domain.Project) projectPiping {
	var out projectPiping
	if preset := p.PoolPreset; preset != nil {
		if preset.HasSkimmer && preset.SkimmerCount > 0 {
			out.skimmers = preset.SkimmerCount
		}
		if preset.ReturnsCount > 0 {
			out.returns = preset.ReturnsCount
		}
		if preset.HasHydroJets && preset.HydroJetsCount > 0 {
			out.hydroJets = preset.HydroJetsCount
		}
		if preset.HasBottomDrain {
			out.drains = 1
		}
	}
	if p.PlumbingConfig != nil {
		for _, item := range p.PlumbingConfig.SelectedItems {
			if !strings.EqualFold(item.Category, "PIPE") {
				continue
			}
			if d := ParseDiameter(item.Diameter); d > 0 {
				out.pipes = append(out.pipes, d)
			}
		}
	}
	return out
}

func (pp projectPiping) suctionDiameter() float64 {
	for _, d := range pp.pipes {
		if d >= 50 {
			return d
		}
	}
	return defaultSuctionDiameter
}

func (pp projectPiping) returnDiameter() float64 {
	for _, d := range pp.pipes {
		if d >= 40 && d < 50 {
			return d
		}
	}
	return defaultReturnDiameter
}

// ConfiguredPump returns the pump the project already chose: a PUMP among the
// additionals first, then the first pump of the electrical configuration.
// Max head is estimated at 10 m per HP when the row has none. The second
// return value carries a warning when a pump exists but lacks the data to
// be checked.
func ConfiguredPump(p *domain.Project) (pump *domain.EquipmentPreset, source string, note string) {
	for _, a := range p.Additionals {
		if a.Equipment == nil || a.Equipment.Type != domain.TypePump {
			continue
		}
		eq := *a.Equipment
		if eq.MaxHead <= 0 && eq.Power > 0 {
			eq.MaxHead = eq.Power * headPerHorsepower
		}
		if eq.FlowRate <= 0 || eq.MaxHead <= 0 {
			return nil, "", "selected pump " + eq.Name + " has no flow or head data; using the catalog recommendation"
		}
		return &eq, SourceAdditional, ""
	}

	if p.ElectricalConfig == nil || len(p.ElectricalConfig.Pumps) == 0 {
		return nil, "", ""
	}
	cp := p.ElectricalConfig.Pumps[0]
	hp := cp.HP
	if hp <= 0 {
		hp = cp.Power / wattsPerHorsepowerInput
	}
	if cp.FlowRate <= 0 || hp <= 0 {
		return nil, "", ""
	}
	id, name, voltage := cp.ID, cp.Name, cp.Voltage
	if id == "" {
		id = "configured-pump"
	}
	if name == "" {
		name = "Configured pump"
	}
	if voltage <= 0 {
		voltage = DefaultVoltage
	}
	return &domain.EquipmentPreset{
		ID:          id,
		Name:        name,
		Type:        domain.TypePump,
		Brand:       "Configured on project",
		Power:       hp,
		Voltage:     voltage,
		FlowRate:    cp.FlowRate,
		MaxHead:     hp * headPerHorsepower,
		Consumption: cp.Power,
		IsActive:    true,
	}, SourceConfigured, ""
}

func analyzeSection(name string, flow, length, diameter float64, accessories int, material string) (PipeSection, VelocityCheck, error) {
	fittings, err := EstimateFittings(length, accessories)
	if err != nil {
		return PipeSection{}, VelocityCheck{}, err
	}
	check, err := CheckVelocity(name, flow, diameter)
	if err != nil {
		return PipeSection{}, VelocityCheck{}, err
	}
	friction, err := FrictionLoss(flow, length, diameter, material)
	if err != nil {
		return PipeSection{}, VelocityCheck{}, err
	}
	singular, err := SingularLoss(check.Velocity, fittings)
	if err != nil {
		return PipeSection{}, VelocityCheck{}, err
	}
	return PipeSection{
		Name:         name,
		Diameter:     diameter,
		Length:       length,
		FlowRate:     flow,
		Velocity:     check.Velocity,
		Accessories:  accessories,
		Fittings:     fittings,
		FrictionLoss: friction,
		SingularLoss: singular,
	}, check, nil
}

// AnalyzeHydraulics sizes the circulation of a project: line velocities and
// losses, total dynamic head and the pump, preferring the one already
// configured on the project when it is adequate.
func AnalyzeHydraulics(p *domain.Project, params HydraulicParams, catalog []domain.EquipmentPreset) (*HydraulicAnalysis, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	flow, err := RequiredFlowRate(p.Volume, params.TurnoverHours)
	if err != nil {
		return nil, err
	}

	piping := extractPiping(p)
	res := &HydraulicAnalysis{
		ProjectID:           p.ID,
		Volume:              p.Volume,
		TurnoverHours:       params.TurnoverHours,
		RequiredFlowRate:    flow,
		DistanceToEquipment: params.DistanceToEquipment,
		StaticLift:          params.StaticLift,
		Warnings:            []string{},
	}

	type line struct {
		name        string
		flow        float64
		diameter    float64
		accessories int
	}
	lines := []line{
		{SectionSuction, flow, piping.suctionDiameter(), piping.skimmers + piping.drains},
		{SectionReturn, flow, piping.returnDiameter(), piping.returns},
	}
	if piping.hydroJets > 0 {
		lines = append(lines, line{SectionHydroJet, flow * hydroJetFlowShare, hydroJetDiameter, piping.hydroJets})
	}

	for _, l := range lines {
		sec, check, err := analyzeSection(l.name, l.flow, params.DistanceToEquipment, l.diameter, l.accessories, params.Material)
		if err != nil {
			return nil, err
		}
		res.Sections = append(res.Sections, sec)
		res.VelocityChecks = append(res.VelocityChecks, check)
		if !check.IsValid {
			res.Warnings = append(res.Warnings, l.name+" line: "+check.Recommendation)
		}
		switch l.name {
		case SectionSuction:
			res.FrictionLoss.Suction, res.SingularLoss.Suction = sec.FrictionLoss, sec.SingularLoss
		case SectionReturn:
			res.FrictionLoss.Return, res.SingularLoss.Return = sec.FrictionLoss, sec.SingularLoss
		case SectionHydroJet:
			res.FrictionLoss.HydroJet, res.SingularLoss.HydroJet = sec.FrictionLoss, sec.SingularLoss
		}
		res.FrictionLoss.Total += sec.FrictionLoss
		res.SingularLoss.Total += sec.SingularLoss
	}

	res.TotalDynamicHead, err = TotalDynamicHead(params.StaticLift, res.FrictionLoss.Total, res.SingularLoss.Total)
	if err != nil {
		return nil, err
	}

	configured, source, note := ConfiguredPump(p)
	if note != "" {
		res.Warnings = append(res.Warnings, note)
	}

	switch {
	case configured != nil && PumpMeets(configured, flow, res.TotalDynamicHead):
		res.PumpSelection = PumpSelection{
			Found:        true,
			Pump:         configured,
			RequiredFlow: flow,
			RequiredHead: res.TotalDynamicHead,
			Source:       source,
		}
	default:
		if configured != nil {
			if configured.FlowRate < flow {
				res.Warnings = append(res.Warnings, "selected pump "+configured.Name+" has insufficient flow: "+
					fmt2(configured.FlowRate)+" m³/h vs "+fmt2(flow)+" m³/h required")
			}
			if configured.MaxHead < res.TotalDynamicHead {
				res.Warnings = append(res.Warnings, "selected pump "+configured.Name+" has insufficient head: "+
					fmt2(configured.MaxHead)+" m vs "+fmt2(res.TotalDynamicHead)+" m required")
			}
		}
		sel, err := SelectPump(flow, res.TotalDynamicHead, catalog)
		if err != nil {
			return nil, err
		}
		res.PumpSelection = sel
		if configured != nil && sel.Found {
			res.Warnings = append(res.Warnings, "consider switching to "+sel.Pump.Name+", which meets the project requirements")
		}
	}

	if res.PumpSelection.Found {
		res.RecommendedPump = res.PumpSelection.Pump
	} else {
		res.NoRecommendation = true
		res.Warnings = append(res.Warnings, "no adequate pump: "+res.PumpSelection.Reason)
	}

	if params.StaticLift > CavitationLiftLimit {
		res.Warnings = append(res.Warnings, "high suction lift ("+fmt2(params.StaticLift)+" m), risk of cavitation; place the pump closer to the pool")
	}

	res.IsValid = !res.NoRecommendation
	return res, nil
}
