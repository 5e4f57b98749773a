package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/calc"
)

// Calculator is the service surface the handlers call
type Calculator interface {
	HydraulicAnalysis(ctx context.Context, projectID string, params calc.HydraulicParams) (*calc.HydraulicAnalysis, error)
	ElectricalAnalysis(ctx context.Context, projectID string, params calc.ElectricalParams) (*calc.ElectricalAnalysis, error)
	ElectricalReport(ctx context.Context, projectID string, params calc.ElectricalParams) (string, error)
	FullAnalysis(ctx context.Context, projectID string, hp calc.HydraulicParams, ep calc.ElectricalParams) (*calc.FullAnalysis, error)
	ValidateCompatibility(ctx context.Context, projectID, pumpID, filterID string, params calc.HydraulicParams) (*calc.CompatibilityResult, error)
}

// Defaults are the configured values for parameters a request omits
type Defaults struct {
	ElectricityCostPerKwh float64
	DailyHours            float64
	TurnoverHours         float64
}

// Handler handles HTTP requests for project calculations
type Handler struct {
	calc     Calculator
	defaults Defaults
	log      *zap.Logger
}

// New creates a new Handler
func New(c Calculator, defaults Defaults, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if defaults.DailyHours <= 0 {
		defaults.DailyHours = calc.DefaultDailyHours
	}
	if defaults.TurnoverHours <= 0 {
		defaults.TurnoverHours = calc.DefaultTurnoverHours
	}
	return &Handler{calc: c, defaults: defaults, log: log}
}

// validateRequest is the body of POST /:projectId/validate
type validateRequest struct {
	PumpID              string   `json:"pumpId" binding:"required"`
	FilterID            string   `json:"filterId" binding:"required"`
	DistanceToEquipment *float64 `json:"distanceToEquipment"`
	StaticLift          *float64 `json:"staticLift"`
}
