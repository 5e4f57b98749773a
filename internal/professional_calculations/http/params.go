package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/calc"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// queryFloat returns the numeric query value, or def when absent
func queryFloat(c *gin.Context, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, domain.NewValidationError(key, "%q is not a number", raw)
	}
	return v, nil
}

func (h *Handler) hydraulicParams(c *gin.Context) (calc.HydraulicParams, error) {
	p := calc.DefaultHydraulicParams()
	p.TurnoverHours = h.defaults.TurnoverHours

	var err error
	if p.DistanceToEquipment, err = queryFloat(c, "distanceToEquipment", p.DistanceToEquipment); err != nil {
		return p, err
	}
	if p.StaticLift, err = queryFloat(c, "staticLift", p.StaticLift); err != nil {
		return p, err
	}
	if p.TurnoverHours, err = queryFloat(c, "turnoverHours", p.TurnoverHours); err != nil {
		return p, err
	}
	if m := c.Query("material"); m != "" {
		p.Material = strings.ToUpper(m)
	}
	return p, nil
}

func (h *Handler) electricalParams(c *gin.Context) (calc.ElectricalParams, error) {
	p := calc.DefaultElectricalParams(h.defaults.ElectricityCostPerKwh)
	p.DailyHours = h.defaults.DailyHours

	var err error
	if p.Voltage, err = queryFloat(c, "voltage", p.Voltage); err != nil {
		return p, err
	}
	if p.DistanceToPanel, err = queryFloat(c, "distanceToPanel", p.DistanceToPanel); err != nil {
		return p, err
	}
	if t := c.Query("installationType"); t != "" {
		p.InstallationType = strings.ToUpper(t)
	}
	if p.AmbientTemp, err = queryFloat(c, "ambientTemp", p.AmbientTemp); err != nil {
		return p, err
	}
	if p.ElectricityCostPerKwh, err = queryFloat(c, "electricityCostPerKwh", p.ElectricityCostPerKwh); err != nil {
		return p, err
	}
	if p.DailyHours, err = queryFloat(c, "dailyHours", p.DailyHours); err != nil {
		return p, err
	}
	return p, nil
}
