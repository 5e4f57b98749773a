package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/calc"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// GetHydraulicAnalysis returns the hydraulic sizing of a project
func (h *Handler) GetHydraulicAnalysis(c *gin.Context) {
	params, err := h.hydraulicParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.calc.HydraulicAnalysis(c.Request.Context(), c.Param("projectId"), params)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hydraulic":        res,
		"noRecommendation": res.NoRecommendation,
		"warnings":         res.Warnings,
	})
}

// GetElectricalAnalysis returns the electrical sizing of a project
func (h *Handler) GetElectricalAnalysis(c *gin.Context) {
	params, err := h.electricalParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.calc.ElectricalAnalysis(c.Request.Context(), c.Param("projectId"), params)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"electrical": res,
		"warnings":   res.Warnings,
	})
}

// GetElectricalReport returns the electrical analysis as plain text
func (h *Handler) GetElectricalReport(c *gin.Context) {
	params, err := h.electricalParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	report, err := h.calc.ElectricalReport(c.Request.Context(), c.Param("projectId"), params)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.String(http.StatusOK, report)
}

// GetFullAnalysis returns hydraulic, electrical and filter results together
func (h *Handler) GetFullAnalysis(c *gin.Context) {
	hp, err := h.hydraulicParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ep, err := h.electricalParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.calc.FullAnalysis(c.Request.Context(), c.Param("projectId"), hp, ep)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":         res,
		"noRecommendation": res.Hydraulic.NoRecommendation,
	})
}

// ValidateCompatibility checks a pump and filter pair for the project
func (h *Handler) ValidateCompatibility(c *gin.Context) {
	var body validateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	params := calc.DefaultHydraulicParams()
	params.TurnoverHours = h.defaults.TurnoverHours
	if body.DistanceToEquipment != nil {
		params.DistanceToEquipment = *body.DistanceToEquipment
	}
	if body.StaticLift != nil {
		params.StaticLift = *body.StaticLift
	}

	res, err := h.calc.ValidateCompatibility(c.Request.Context(), c.Param("projectId"), body.PumpID, body.FilterID, params)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"compatibility": res})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters", "details": ve.Error()})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, domain.ErrEquipmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
	case errors.Is(err, domain.ErrPoolPresetMissing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "project pool preset not found"})
	default:
		h.log.Error("calculation failed",
			zap.String("path", c.FullPath()),
			zap.String("project_id", c.Param("projectId")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analysis"})
	}
}
