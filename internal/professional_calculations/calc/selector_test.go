package calc

import (
	"testing"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pump(id string, flow, head, price float64) domain.EquipmentPreset {
	return domain.EquipmentPreset{
		ID: id, Name: "Pump " + id, Type: domain.TypePump,
		FlowRate: flow, MaxHead: head, PricePerUnit: price, IsActive: true,
	}
}

func filter(id string, flow, price float64) domain.EquipmentPreset {
	return domain.EquipmentPreset{
		ID: id, Name: "Filter " + id, Type: domain.TypeFilter,
		FlowRate: flow, PricePerUnit: price, IsActive: true,
	}
}

func testCatalog() []domain.EquipmentPreset {
	inactive := pump("inactive", 20, 40, 10)
	inactive.IsActive = false
	return []domain.EquipmentPreset{
		pump("small", 5, 15, 100),
		pump("mid", 6, 20, 200),
		pump("big", 8, 25, 300),
		pump("weak-head", 12, 8, 150),
		inactive,
		filter("f6", 6, 400),
		filter("f10", 10, 350),
	}
}

func TestRequiredFlowRate(t *testing.T) {
	flow, err := RequiredFlowRate(45, DefaultTurnoverHours)
	require.NoError(t, err)
	assert.InDelta(t, 5.6, flow, 0.05)

	_, err = RequiredFlowRate(0, 8)
	assert.True(t, domain.IsValidationError(err))
	_, err = RequiredFlowRate(45, 0)
	assert.True(t, domain.IsValidationError(err))
}

func TestSelectPump(t *testing.T) {
	t.Run("cheapest adequate pump for a 45 m3 pool", func(t *testing.T) {
		flow, err := RequiredFlowRate(45, 8)
		require.NoError(t, err)

		sel, err := SelectPump(flow, 16, testCatalog())
		require.NoError(t, err)
		require.True(t, sel.Found)
		assert.Equal(t, "mid", sel.Pump.ID)
		assert.Equal(t, SourceCatalog, sel.Source)
	})

	t.Run("equal price goes to the least oversized", func(t *testing.T) {
		catalog := []domain.EquipmentPreset{
			pump("oversized", 20, 40, 100),
			pump("snug", 7, 18, 100),
		}
		sel, err := SelectPump(6, 16, catalog)
		require.NoError(t, err)
		require.True(t, sel.Found)
		assert.Equal(t, "snug", sel.Pump.ID)
	})

	t.Run("never returns an inadequate pump", func(t *testing.T) {
		catalog := testCatalog()
		for _, flow := range []float64{1, 4, 5.625, 6, 7.5, 9, 13} {
			for _, head := range []float64{5, 10, 16, 21, 26} {
				sel, err := SelectPump(flow, head, catalog)
				require.NoError(t, err)
				if sel.Found {
					assert.GreaterOrEqual(t, sel.Pump.FlowRate, flow)
					assert.GreaterOrEqual(t, sel.Pump.MaxHead, head)
					assert.True(t, sel.Pump.IsActive)
				} else {
					assert.Nil(t, sel.Pump)
					assert.NotEmpty(t, sel.Reason)
				}
			}
		}
	})

	t.Run("no match is not an error", func(t *testing.T) {
		sel, err := SelectPump(50, 16, testCatalog())
		require.NoError(t, err)
		assert.False(t, sel.Found)
		assert.Contains(t, sel.Reason, "no catalog pump")

		sel, err = SelectPump(5, 16, nil)
		require.NoError(t, err)
		assert.False(t, sel.Found)
		assert.Contains(t, sel.Reason, "no active pumps")
	})

	t.Run("invalid requirement", func(t *testing.T) {
		_, err := SelectPump(0, 16, testCatalog())
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestSelectFilter(t *testing.T) {
	t.Run("cheapest filter with enough flow", func(t *testing.T) {
		sel, err := SelectFilter(5.625, 45, testCatalog())
		require.NoError(t, err)
		require.True(t, sel.Found)
		assert.Equal(t, "f10", sel.Filter.ID)
		assert.False(t, sel.Fallback)
	})

	t.Run("volume range for filters without flow", func(t *testing.T) {
		ranged := domain.EquipmentPreset{
			ID: "r", Type: domain.TypeFilter, IsActive: true, PricePerUnit: 90,
			MinPoolVolume: 30000, MaxPoolVolume: 60000,
		}
		sel, err := SelectFilter(5.625, 45, []domain.EquipmentPreset{ranged})
		require.NoError(t, err)
		require.True(t, sel.Found)
		assert.Equal(t, "r", sel.Filter.ID)
	})

	t.Run("falls back to the smallest range above the pool", func(t *testing.T) {
		catalog := []domain.EquipmentPreset{
			{ID: "xl", Type: domain.TypeFilter, IsActive: true, MinPoolVolume: 120000, MaxPoolVolume: 200000},
			{ID: "l", Type: domain.TypeFilter, IsActive: true, MinPoolVolume: 60000, MaxPoolVolume: 100000},
		}
		sel, err := SelectFilter(5.625, 45, catalog)
		require.NoError(t, err)
		require.True(t, sel.Found)
		assert.True(t, sel.Fallback)
		assert.Equal(t, "l", sel.Filter.ID)
	})

	t.Run("never falls back to a filter below the required flow", func(t *testing.T) {
		small := filter("f3", 3, 50)
		small.MinPoolVolume = 60000
		small.MaxPoolVolume = 100000

		sel, err := SelectFilter(5.625, 45, []domain.EquipmentPreset{small})
		require.NoError(t, err)
		assert.False(t, sel.Found)
		assert.False(t, sel.Fallback)
		assert.Nil(t, sel.Filter)
		assert.Contains(t, sel.Reason, "no catalog filter handles")
	})

	t.Run("no filters", func(t *testing.T) {
		sel, err := SelectFilter(5.625, 45, nil)
		require.NoError(t, err)
		assert.False(t, sel.Found)
		assert.NotEmpty(t, sel.Reason)
	})
}
