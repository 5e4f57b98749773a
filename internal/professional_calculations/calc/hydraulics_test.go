package calc

import (
	"strings"
	"testing"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject() *domain.Project {
	return &domain.Project{
		ID:     "p1",
		Name:   "Backyard",
		Volume: 45,
		PoolPreset: &domain.PoolPreset{
			ID:            "preset-8x4",
			HasSkimmer:    true,
			SkimmerCount:  2,
			ReturnsCount:  3,
			HasLighting:   true,
			LightingCount: 2,
		},
	}
}

func TestAnalyzeHydraulics(t *testing.T) {
	t.Run("default parameters", func(t *testing.T) {
		res, err := AnalyzeHydraulics(testProject(), DefaultHydraulicParams(), testCatalog())
		require.NoError(t, err)

		assert.InDelta(t, 5.625, res.RequiredFlowRate, 1e-9)
		require.Len(t, res.Sections, 2)
		assert.Equal(t, 50.0, res.Sections[0].Diameter)
		assert.Equal(t, 40.0, res.Sections[1].Diameter)
		assert.Equal(t, 10, res.Sections[0].Fittings.Elbows90)
		assert.Equal(t, 14, res.Sections[1].Fittings.Elbows90)

		want := (res.StaticLift + res.FrictionLoss.Total + res.SingularLoss.Total + EquipmentHeadAllowance) * HeadSafetyFactor
		assert.InDelta(t, want, res.TotalDynamicHead, 1e-9)
		assert.InDelta(t, 16.39, res.TotalDynamicHead, 0.01)

		require.NotNil(t, res.RecommendedPump)
		assert.Equal(t, "mid", res.RecommendedPump.ID)
		assert.False(t, res.NoRecommendation)
		assert.True(t, res.IsValid)

		// 50 mm suction runs slower than 1 m/s at this flow
		assert.False(t, res.VelocityChecks[0].IsValid)
		assert.NotEmpty(t, res.Warnings)
	})

	t.Run("plumbing diameters and hydrojets", func(t *testing.T) {
		p := testProject()
		p.PoolPreset.HasHydroJets = true
		p.PoolPreset.HydroJetsCount = 2
		p.PlumbingConfig = &domain.PlumbingConfig{SelectedItems: []domain.PlumbingItem{
			{ItemName: "PVC pipe", Category: "PIPE", Diameter: `2"`, Quantity: 6},
			{ItemName: "PVC pipe", Category: "PIPE", Diameter: "45mm", Quantity: 6},
			{ItemName: "Elbow", Category: "FITTING", Diameter: "63mm", Quantity: 4},
		}}
		res, err := AnalyzeHydraulics(p, DefaultHydraulicParams(), testCatalog())
		require.NoError(t, err)

		require.Len(t, res.Sections, 3)
		assert.InDelta(t, 50.8, res.Sections[0].Diameter, 1e-9)
		assert.Equal(t, 45.0, res.Sections[1].Diameter)
		assert.Equal(t, SectionHydroJet, res.Sections[2].Name)
		assert.InDelta(t, res.RequiredFlowRate/2, res.Sections[2].FlowRate, 1e-9)
		assert.Greater(t, res.FrictionLoss.HydroJet, 0.0)
	})

	t.Run("adequate additional pump wins over catalog", func(t *testing.T) {
		p := testProject()
		chosen := pump("chosen", 10, 30, 999)
		p.Additionals = []domain.ProjectAdditional{{ID: "a1", Quantity: 1, Equipment: &chosen}}

		res, err := AnalyzeHydraulics(p, DefaultHydraulicParams(), testCatalog())
		require.NoError(t, err)
		assert.Equal(t, "chosen", res.RecommendedPump.ID)
		assert.Equal(t, SourceAdditional, res.PumpSelection.Source)
	})

	t.Run("inadequate additional pump falls back with warnings", func(t *testing.T) {
		p := testProject()
		weak := pump("weak", 2, 30, 50)
		p.Additionals = []domain.ProjectAdditional{{ID: "a1", Quantity: 1, Equipment: &weak}}

		res, err := AnalyzeHydraulics(p, DefaultHydraulicParams(), testCatalog())
		require.NoError(t, err)
		assert.Equal(t, "mid", res.RecommendedPump.ID)
		found := false
		for _, w := range res.Warnings {
			if strings.HasPrefix(w, "selected pump Pump weak has insufficient flow") {
				found = true
			}
		}
		assert.True(t, found, "warnings: %v", res.Warnings)
	})

	t.Run("pump from the electrical configuration", func(t *testing.T) {
		p := testProject()
		p.ElectricalConfig = &domain.ElectricalConfig{Pumps: []domain.ConfiguredPump{
			{Name: "Site pump", HP: 2, FlowRate: 8},
		}}
		res, err := AnalyzeHydraulics(p, DefaultHydraulicParams(), testCatalog())
		require.NoError(t, err)
		assert.Equal(t, SourceConfigured, res.PumpSelection.Source)
		assert.Equal(t, 20.0, res.RecommendedPump.MaxHead)
	})

	t.Run("no adequate pump is flagged, not an error", func(t *testing.T) {
		p := testProject()
		p.Volume = 400
		res, err := AnalyzeHydraulics(p, DefaultHydraulicParams(), testCatalog())
		require.NoError(t, err)
		assert.True(t, res.NoRecommendation)
		assert.Nil(t, res.RecommendedPump)
		assert.False(t, res.IsValid)
	})

	t.Run("high suction lift warns about cavitation", func(t *testing.T) {
		params := DefaultHydraulicParams()
		params.StaticLift = 3.5
		res, err := AnalyzeHydraulics(testProject(), params, testCatalog())
		require.NoError(t, err)
		assert.Contains(t, res.Warnings[len(res.Warnings)-1], "cavitation")
	})

	t.Run("rejects invalid geometry", func(t *testing.T) {
		params := DefaultHydraulicParams()
		params.DistanceToEquipment = 0
		_, err := AnalyzeHydraulics(testProject(), params, testCatalog())
		assert.True(t, domain.IsValidationError(err))

		p := testProject()
		p.Volume = 0
		_, err = AnalyzeHydraulics(p, DefaultHydraulicParams(), testCatalog())
		assert.True(t, domain.IsValidationError(err))
	})
}
