package http

import "github.com/gin-gonic/gin"

// Register registers the calculation routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:projectId", h.GetFullAnalysis)
	rg.GET("/:projectId/hydraulic", h.GetHydraulicAnalysis)
	rg.GET("/:projectId/electrical", h.GetElectricalAnalysis)
	rg.GET("/:projectId/electrical-report", h.GetElectricalReport)
	rg.POST("/:projectId/validate", h.ValidateCompatibility)
}
