package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/calc"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// ProjectReader loads a project snapshot with its preset and additionals
type ProjectReader interface {
	GetProject(ctx context.Context, id string) (*domain.Project, error)
}

// CatalogReader reads the equipment catalog
type CatalogReader interface {
	ListActive(ctx context.Context) ([]domain.EquipmentPreset, error)
	GetEquipment(ctx context.Context, id string) (*domain.EquipmentPreset, error)
}

// CalculationService runs the sizing calculations for stored projects.
// Nothing it computes is persisted.
type CalculationService struct {
	projects ProjectReader
	catalog  CatalogReader
	log      *zap.Logger
}

// NewCalculationService creates a new CalculationService
func NewCalculationService(projects ProjectReader, catalog CatalogReader, log *zap.Logger) *CalculationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CalculationService{projects: projects, catalog: catalog, log: log}
}

func (s *CalculationService) load(ctx context.Context, projectID string) (*domain.Project, []domain.EquipmentPreset, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if project.PoolPreset == nil {
		return nil, nil, fmt.Errorf("project %s: %w", projectID, domain.ErrPoolPresetMissing)
	}
	catalog, err := s.catalog.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return project, catalog, nil
}

// HydraulicAnalysis sizes the circulation of a project
func (s *CalculationService) HydraulicAnalysis(ctx context.Context, projectID string, params calc.HydraulicParams) (*calc.HydraulicAnalysis, error) {
	start := time.Now()
	project, catalog, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	res, err := calc.AnalyzeHydraulics(project, params, catalog)
	if err != nil {
		return nil, err
	}

	s.log.Info("hydraulic analysis",
		zap.String("project_id", projectID),
		zap.Float64("required_flow", res.RequiredFlowRate),
		zap.Float64("tdh", res.TotalDynamicHead),
		zap.Bool("no_recommendation", res.NoRecommendation),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// ElectricalAnalysis sizes the electrical installation of a project. The
// filtration pump load comes from the hydraulic recommendation made with
// default hydraulic parameters.
func (s *CalculationService) ElectricalAnalysis(ctx context.Context, projectID string, params calc.ElectricalParams) (*calc.ElectricalAnalysis, error) {
	start := time.Now()
	project, catalog, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	pump := s.recommendedPump(project, catalog)
	res, err := calc.AnalyzeElectrical(project, params, pump)
	if err != nil {
		return nil, err
	}

	s.log.Info("electrical analysis",
		zap.String("project_id", projectID),
		zap.Float64("installed_w", res.InstalledPower),
		zap.Float64("current_a", res.DesignCurrent),
		zap.Float64("section_mm2", res.Cable.Section),
		zap.Bool("valid", res.IsValid),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// ElectricalReport renders the electrical analysis as plain text
func (s *CalculationService) ElectricalReport(ctx context.Context, projectID string, params calc.ElectricalParams) (string, error) {
	res, err := s.ElectricalAnalysis(ctx, projectID, params)
	if err != nil {
		return "", err
	}
	return calc.ElectricalReport(res), nil
}

// FullAnalysis runs both analyses and the filter selection
func (s *CalculationService) FullAnalysis(ctx context.Context, projectID string, hp calc.HydraulicParams, ep calc.ElectricalParams) (*calc.FullAnalysis, error) {
	project, catalog, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	res, err := calc.AnalyzeProject(project, hp, ep, catalog)
	if err != nil {
		return nil, err
	}

	s.log.Info("full analysis",
		zap.String("project_id", projectID),
		zap.String("pump", res.Summary.PumpName),
		zap.String("filter", res.Summary.FilterName),
		zap.Bool("valid", res.Summary.IsValid),
	)
	return res, nil
}

// ValidateCompatibility checks a pump and filter pair against the head of the
// project circuit.
func (s *CalculationService) ValidateCompatibility(ctx context.Context, projectID, pumpID, filterID string, params calc.HydraulicParams) (*calc.CompatibilityResult, error) {
	project, catalog, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	pump, err := s.catalog.GetEquipment(ctx, pumpID)
	if err != nil {
		return nil, err
	}
	filter, err := s.catalog.GetEquipment(ctx, filterID)
	if err != nil {
		return nil, err
	}

	hyd, err := calc.AnalyzeHydraulics(project, params, catalog)
	if err != nil {
		return nil, err
	}
	res, err := calc.CheckCompatibility(pump, filter, hyd.TotalDynamicHead)
	if err != nil {
		return nil, err
	}
	if pump.FlowRate > 0 && pump.FlowRate < hyd.RequiredFlowRate {
		res.Warnings = append(res.Warnings, fmt.Sprintf("pump flow %.2f m³/h is below the %.2f m³/h needed for turnover", pump.FlowRate, hyd.RequiredFlowRate))
	}

	s.log.Info("compatibility check",
		zap.String("project_id", projectID),
		zap.String("pump_id", pumpID),
		zap.String("filter_id", filterID),
		zap.Bool("compatible", res.Compatible),
	)
	return &res, nil
}

func (s *CalculationService) recommendedPump(project *domain.Project, catalog []domain.EquipmentPreset) *domain.EquipmentPreset {
	hyd, err := calc.AnalyzeHydraulics(project, calc.DefaultHydraulicParams(), catalog)
	if err != nil {
		s.log.Debug("no hydraulic pump for electrical loads", zap.String("project_id", project.ID), zap.Error(err))
		return nil
	}
	return hyd.RecommendedPump
}
