package calc

import (
	"math"
	"strings"
	"testing"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadType(t *testing.T) {
	cases := map[string]string{
		"PUMP":          LoadPump,
		"HEAT_PUMP":     LoadHeating,
		"HEATER":        LoadHeating,
		"LIGHTING":      LoadLighting,
		"automation":    LoadAutomation,
		"TRANSFORMER":   LoadTransformer,
		"SKIMMER":       LoadOther,
		"VACUUM_INTAKE": LoadOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, LoadType(in), in)
	}
}

func TestExtractLoads(t *testing.T) {
	t.Run("lighting, transformer and estimated pump", func(t *testing.T) {
		loads := ExtractLoads(testProject(), nil)
		require.Len(t, loads, 3)

		assert.Equal(t, LoadLighting, loads[0].Type)
		assert.Equal(t, 2, loads[0].Quantity)
		assert.Equal(t, 12.0, loads[0].Voltage)
		assert.Equal(t, LoadTransformer, loads[1].Type)
		assert.InDelta(t, 120, loads[1].Power, 1e-9)
		assert.Equal(t, LoadPump, loads[2].Type)
		assert.InDelta(t, 1118.55, loads[2].Power, 1e-6)
	})

	t.Run("selected pump replaces the estimate", func(t *testing.T) {
		p := pump("sel", 6, 20, 200)
		p.Consumption = 750
		loads := ExtractLoads(testProject(), &p)
		assert.Equal(t, "Pump sel", loads[2].Name)
		assert.Equal(t, 750.0, loads[2].Power)
	})

	t.Run("additionals and configured items", func(t *testing.T) {
		proj := testProject()
		heater := domain.EquipmentPreset{Name: "Heat pump", Type: domain.TypeHeatPump, Consumption: 3000}
		skimmer := domain.EquipmentPreset{Name: "Skimmer", Type: domain.TypeSkimmer}
		own := pump("own", 10, 25, 100)
		own.Consumption = 1100
		proj.Additionals = []domain.ProjectAdditional{
			{Quantity: 1, Equipment: &heater},
			{Quantity: 2, Equipment: &skimmer},
			{Quantity: 1, Equipment: &own},
		}
		proj.ElectricalConfig = &domain.ElectricalConfig{Items: []domain.ElectricalItem{
			{Name: "Chlorinator", Type: "automation", Watts: 150, Quantity: 0},
		}}

		loads := ExtractLoads(proj, nil)
		names := make([]string, 0, len(loads))
		for _, l := range loads {
			names = append(names, l.Name)
		}
		assert.NotContains(t, names, "Filtration pump")
		assert.NotContains(t, names, "Skimmer")
		assert.Contains(t, names, "Pump own")

		last := loads[len(loads)-1]
		assert.Equal(t, LoadAutomation, last.Type)
		assert.Equal(t, 1, last.Quantity)
		assert.Equal(t, DefaultVoltage, last.Voltage)
	})
}

func TestAggregateLoads(t *testing.T) {
	loads := ExtractLoads(testProject(), nil)
	totals, err := AggregateLoads(loads, 220)
	require.NoError(t, err)

	var sum float64
	for _, l := range loads {
		sum += l.Power * float64(l.Quantity)
	}
	assert.InDelta(t, sum, totals.InstalledPower, 1e-9)
	assert.InDelta(t, 1338.55, totals.InstalledPower, 1e-6)
	assert.InDelta(t, 1288.55, totals.DemandPower, 1e-6)
	assert.InDelta(t, 6.8625, totals.DesignCurrent, 1e-3)

	_, err = AggregateLoads(loads, 0)
	assert.True(t, domain.IsValidationError(err))
}

func TestTemperatureFactor(t *testing.T) {
	assert.Equal(t, 0.97, TemperatureFactor(27))
	assert.Equal(t, 0.90, TemperatureFactor(33))
	assert.Equal(t, 1.00, TemperatureFactor(5))
	assert.Equal(t, 0.80, TemperatureFactor(65))
}

func TestCopperResistivity(t *testing.T) {
	assert.InDelta(t, 0.01724, CopperResistivity(20), 1e-12)
	assert.Greater(t, CopperResistivity(40), CopperResistivity(20))
}

func TestSelectCable(t *testing.T) {
	t.Run("short run picks the smallest section", func(t *testing.T) {
		c, err := SelectCable(6.8625, 10, 220, InstallConduit, 25)
		require.NoError(t, err)
		assert.Equal(t, 1.5, c.Section)
		assert.Equal(t, "1.5mm²", c.SectionLabel)
		assert.True(t, c.Acceptable)
		assert.InDelta(t, 0.731, c.VoltageDropPercent, 0.001)
		assert.Empty(t, c.Recommendation)
	})

	t.Run("ampacity drives the section on short heavy runs", func(t *testing.T) {
		c, err := SelectCable(40, 5, 220, "conduit", 25)
		require.NoError(t, err)
		assert.Equal(t, 16.0, c.Section)
		assert.GreaterOrEqual(t, c.Ampacity, 40.0)
	})

	t.Run("voltage drop drives the section on long runs", func(t *testing.T) {
		c, err := SelectCable(30, 90, 220, InstallConduit, 25)
		require.NoError(t, err)
		assert.Equal(t, 16.0, c.Section)
		assert.LessOrEqual(t, c.VoltageDropPercent, MaxVoltageDropPercent)
		assert.Greater(t, c.VoltageDropPercent, NearVoltageDropPercent)
		assert.NotEmpty(t, c.Recommendation)
	})

	t.Run("nothing fits", func(t *testing.T) {
		c, err := SelectCable(300, 200, 220, InstallBuried, 25)
		require.NoError(t, err)
		assert.False(t, c.Acceptable)
		assert.Equal(t, 240.0, c.Section)
	})

	t.Run("aliases and unknown installation types", func(t *testing.T) {
		_, err := SelectCable(10, 10, 220, "AIR", 25)
		assert.NoError(t, err)
		_, err = SelectCable(10, 10, 220, "DIRECT", 25)
		assert.NoError(t, err)
		_, err = SelectCable(10, 10, 220, "UNDERWATER", 25)
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestSelectProtection(t *testing.T) {
	cases := []struct {
		current   float64
		breaker   int
		curve     string
		rcd       int
		oversized bool
	}{
		{6.86, 10, "C", 16, false},
		{40, 50, "C", 63, false},
		{60, 80, "D", 80, false},
		{120, 125, "D", 100, true},
	}
	for _, c := range cases {
		p, err := SelectProtection(c.current)
		require.NoError(t, err)
		assert.Equal(t, c.breaker, p.Breaker, "current %v", c.current)
		assert.Equal(t, c.curve, p.BreakerType)
		assert.Equal(t, c.rcd, p.RCD)
		assert.Equal(t, c.oversized, p.Oversized)
		assert.Equal(t, 30, p.RCDSensitivity)
		if !c.oversized {
			assert.GreaterOrEqual(t, float64(p.Breaker), c.current*1.25)
		}
	}
}

func TestProjectCost(t *testing.T) {
	loads := ExtractLoads(testProject(), nil)

	t.Run("daily, monthly and annual", func(t *testing.T) {
		cost, err := ProjectCost(loads, 8, 50)
		require.NoError(t, err)
		assert.InDelta(t, 10.3084, cost.DailyKwh, 1e-6)
		assert.InDelta(t, 515.42, cost.DailyCost, 1e-6)
		assert.InDelta(t, cost.DailyCost*30, cost.MonthlyCost, 1e-9)
		assert.InDelta(t, cost.DailyCost*365, cost.AnnualCost, 1e-9)
	})

	t.Run("free energy costs nothing", func(t *testing.T) {
		cost, err := ProjectCost(loads, 8, 0)
		require.NoError(t, err)
		assert.Zero(t, cost.AnnualCost)
	})

	t.Run("bad tariff", func(t *testing.T) {
		for _, tariff := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := ProjectCost(loads, 8, tariff)
			assert.True(t, domain.IsValidationError(err))
		}
	})
}

func TestAnalyzeElectrical(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		res, err := AnalyzeElectrical(testProject(), DefaultElectricalParams(50), nil)
		require.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Equal(t, 1.5, res.Cable.Section)
		assert.Equal(t, 10, res.Protection.Breaker)
		assert.Equal(t, 16, res.Protection.RCD)
		assert.Empty(t, res.Warnings)
		assert.InDelta(t, 515.42, res.OperatingCost.DailyCost, 1e-6)
	})

	t.Run("warnings for long runs, heat and power", func(t *testing.T) {
		p := testProject()
		p.ElectricalConfig = &domain.ElectricalConfig{Items: []domain.ElectricalItem{
			{Name: "Heater", Type: "HEATING", Watts: 12000, Quantity: 1},
		}}
		params := DefaultElectricalParams(50)
		params.DistanceToPanel = 60
		params.AmbientTemp = 40
		res, err := AnalyzeElectrical(p, params, nil)
		require.NoError(t, err)

		joined := strings.Join(res.Warnings, "\n")
		assert.Contains(t, joined, "380V")
		assert.Contains(t, joined, "high installed power")
		assert.Contains(t, joined, "ambient temperature")
	})

	t.Run("invalid parameters", func(t *testing.T) {
		params := DefaultElectricalParams(50)
		params.InstallationType = "WALL"
		_, err := AnalyzeElectrical(testProject(), params, nil)
		assert.True(t, domain.IsValidationError(err))

		params = DefaultElectricalParams(50)
		params.Voltage = -220
		_, err = AnalyzeElectrical(testProject(), params, nil)
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestElectricalReport(t *testing.T) {
	res, err := AnalyzeElectrical(testProject(), DefaultElectricalParams(50), nil)
	require.NoError(t, err)

	report := ElectricalReport(res)
	assert.True(t, strings.HasPrefix(report, "=== ELECTRICAL REPORT ==="))
	assert.Contains(t, report, "1.5mm²")
	assert.Contains(t, report, "breaker: 10A curve C")
	assert.Contains(t, report, "RCD: 16A / 30mA")
	assert.NotContains(t, report, "WARNINGS")
}
